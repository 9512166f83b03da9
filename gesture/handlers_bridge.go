package gesture

// These thin exported wrappers let package arbitration consult a
// gesture's Handlers without either package needing to reach into the
// other's unexported fields.

func (g *Gesture) HandlerShouldStartWhile(peer *Gesture) bool {
	return g.handlers.ShouldStartWhile(peer)
}

func (g *Gesture) HandlerOtherGestureMayStart(starter *Gesture) bool {
	return g.handlers.OtherGestureMayStart(starter)
}

func (g *Gesture) HandlerShouldInfluence(peer *Gesture) (cancelPeer, ok bool) {
	return g.handlers.ShouldInfluence(peer)
}

func (g *Gesture) HandlerShouldBeInfluencedBy(peer *Gesture) (cancelSelf, ok bool) {
	return g.handlers.ShouldBeInfluencedBy(peer)
}

// CancelOnRecognizingSnapshot is the exported form of
// snapshotAndClearCancelOnRecognizing, used by the arbitration cascade.
func (g *Gesture) CancelOnRecognizingSnapshot() []*Gesture {
	return g.snapshotAndClearCancelOnRecognizing()
}
