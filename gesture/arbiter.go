package gesture

// Arbiter is the global-registry half of arbitration, consumed here as
// an interface so package gesture never imports package arbitration:
// arbitration.Engine implements Arbiter and is injected into each
// Gesture at construction. This mirrors how the original
// clutter-gesture.c keeps the global active-gesture bookkeeping
// alongside the per-gesture state machine in one translation unit,
// split here along a consumed interface to keep the two concerns in
// separate packages.
type Arbiter interface {
	// StartEligible runs the global mutual-exclusion and per-peer
	// should_start_while/other_gesture_may_start checks for g, just
	// before it is allowed to leave POSSIBLE for RECOGNIZING.
	StartEligible(g *Gesture) bool

	// BeginPendingWatch registers g's interest in its
	// inhibit-until-cancelled-of peers and reports whether at least
	// one of them is still undecided (POSSIBLE, RECOGNIZE_PENDING or
	// RECOGNIZING), meaning g must wait in
	// RECOGNIZE_PENDING rather than proceed straight to RECOGNIZING.
	BeginPendingWatch(g *Gesture, targetComplete bool) bool

	// Pair establishes, or returns the cached, delivery-ordering hint
	// for the pairwise relationship between a and b the first time
	// they are found sharing a point. The hint is -1, 0 or +1.
	Pair(a, b *Gesture) int

	// Invalidate drops every cached pairwise decision involving g.
	// Called by RelationshipsChanged after a relationship table is
	// mutated outside of construction time.
	Invalidate(g *Gesture)

	// Notify is called after every committed state transition of a
	// registered gesture. The engine uses it to maintain the active
	// registry, run the cancellation cascade on entry to RECOGNIZING,
	// and resolve any gesture pending on g's outcome.
	Notify(g *Gesture, old, new State)
}
