package gesture

// This file holds the five relationship tables: in-relationship-with,
// cancel-on-recognizing, inhibit-until-cancelled-of, may-not-cancel and
// recognize-independently-from. Each is a set of peer pointers; gesture
// identity is pointer identity, so maps keyed by *Gesture are enough —
// there is no need for the peers to be comparable by value.

// Relate links self and peer the first time they are found sharing a
// point. Unless either exempts the other via RecognizeIndependentlyFrom,
// both also gain a default cancel-on-recognizing membership on the
// other.
func (g *Gesture) Relate(peer *Gesture) {
	g.addRelationship(peer)
	peer.addRelationship(g)
	if !g.RecognizesIndependentlyFrom(peer) && !peer.RecognizesIndependentlyFrom(g) {
		g.AddCancelOnRecognizing(peer)
		peer.AddCancelOnRecognizing(g)
	}
}

// InRelationshipWith returns the peers self currently shares at least
// one point with.
func (g *Gesture) InRelationshipWith() []*Gesture {
	return keysOf(g.inRelationshipWith)
}

// addRelationship adds peer to self's in-relationship-with set only;
// Relate calls it in both directions. Idempotent.
func (g *Gesture) addRelationship(peer *Gesture) {
	if g.inRelationshipWith == nil {
		g.inRelationshipWith = make(map[*Gesture]struct{})
	}
	g.inRelationshipWith[peer] = struct{}{}
}

// removeRelationship unlinks peer from self only; callers unlink both
// directions.
func (g *Gesture) removeRelationship(peer *Gesture) {
	delete(g.inRelationshipWith, peer)
}

// CancelOnRecognizing lists the peers self will cancel when self
// reaches RECOGNIZING, unless the peer is in may-not-cancel(self) or
// the arbitration polarity resolves the other way.
func (g *Gesture) CancelOnRecognizing() []*Gesture {
	return keysOf(g.cancelOnRecognizing)
}

// AddCancelOnRecognizing adds peer to self's cancel-on-recognizing set.
func (g *Gesture) AddCancelOnRecognizing(peer *Gesture) {
	if g.cancelOnRecognizing == nil {
		g.cancelOnRecognizing = make(map[*Gesture]struct{})
	}
	g.cancelOnRecognizing[peer] = struct{}{}
}

// snapshotAndClearCancelOnRecognizing takes the cascade list and clears
// the live set first, so a handler cancelling a peer mid-cascade can't
// reenter the same list. Relationship pairing can still repopulate the
// set afterward for a future recognition.
func (g *Gesture) snapshotAndClearCancelOnRecognizing() []*Gesture {
	out := keysOf(g.cancelOnRecognizing)
	g.cancelOnRecognizing = nil
	return out
}

// InhibitUntilCancelledOf lists the peers that must all cancel before
// self may promote out of RECOGNIZE_PENDING.
func (g *Gesture) InhibitUntilCancelledOf() []*Gesture {
	return keysOf(g.inhibitUntilCancelledOf)
}

// RequireFailureOf declares that self must wait for peer to cancel
// before self can recognize.
func (g *Gesture) RequireFailureOf(peer *Gesture) {
	if g.inhibitUntilCancelledOf == nil {
		g.inhibitUntilCancelledOf = make(map[*Gesture]struct{})
	}
	g.inhibitUntilCancelledOf[peer] = struct{}{}
}

// CanNotCancel declares that peer may never be cancelled by self's
// cascade, overriding an entry in self's cancel-on-recognizing set.
func (g *Gesture) CanNotCancel(peer *Gesture) {
	if g.mayNotCancel == nil {
		g.mayNotCancel = make(map[*Gesture]struct{})
	}
	g.mayNotCancel[peer] = struct{}{}
}

// MayNotCancel reports whether self is forbidden from cancelling peer.
func (g *Gesture) MayNotCancel(peer *Gesture) bool {
	_, ok := g.mayNotCancel[peer]
	return ok
}

// RecognizeIndependentlyFrom exempts peer from the default global
// mutual-exclusion rule: self and peer may both be RECOGNIZING at once.
func (g *Gesture) RecognizeIndependentlyFrom(peer *Gesture) {
	if g.recognizeIndependentlyFrom == nil {
		g.recognizeIndependentlyFrom = make(map[*Gesture]struct{})
	}
	g.recognizeIndependentlyFrom[peer] = struct{}{}
}

// RecognizesIndependentlyFrom reports whether self is exempted from
// mutual exclusion against peer.
func (g *Gesture) RecognizesIndependentlyFrom(peer *Gesture) bool {
	_, ok := g.recognizeIndependentlyFrom[peer]
	return ok
}

// RelationshipsChanged invalidates any cached pairwise decision
// involving self. Call after mutating any relationship table outside
// of construction time.
func (g *Gesture) RelationshipsChanged() {
	if g.arbiter != nil {
		g.arbiter.Invalidate(g)
	}
}

func keysOf(m map[*Gesture]struct{}) []*Gesture {
	out := make([]*Gesture, 0, len(m))
	for g := range m {
		out = append(out, g)
	}
	return out
}
