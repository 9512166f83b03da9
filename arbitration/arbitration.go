// Package arbitration implements the global arbitration engine: the
// active-gesture registry, start-eligibility checks, the cancellation
// cascade, relationship pairing and failure-dependency resolution. It
// is the gesture.Arbiter implementation every Gesture is constructed
// with.
//
// This mirrors the original clutter-gesture.c, which keeps both the
// per-gesture state machine and the stage-wide active-gesture registry
// in one file; here the two concerns are split across packages
// connected by the gesture.Arbiter interface so neither package needs
// to import the other in both directions.
package arbitration

import (
	"context"
	"sync"

	"github.com/esimov/gesturecore/gesture"
)

type pairKey struct {
	a, b *gesture.Gesture
}

func newPairKey(a, b *gesture.Gesture) pairKey {
	// Canonicalize so (a,b) and (b,a) hash the same.
	if a.ID() > b.ID() {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Engine is the process-wide arbitration engine. One Engine typically
// serves one stage/window; every Gesture attached to that stage shares
// it.
type Engine struct {
	mu sync.Mutex

	// active holds every gesture whose state is not WAITING.
	active map[*gesture.Gesture]struct{}

	// pairs memoizes the delivery-ordering hint for every pair of
	// gestures found sharing a point, invalidated by Invalidate.
	pairs map[pairKey]int

	// watchers maps a peer to the set of gestures in RECOGNIZE_PENDING
	// waiting on that peer's outcome (CANCELLED, RECOGNIZING or
	// COMPLETED).
	watchers map[*gesture.Gesture]map[*gesture.Gesture]struct{}

	ctx context.Context
}

// New returns an empty arbitration engine. ctx is used for the
// internally-driven fsm events it fires on gestures (promotion,
// cascade cancellation); pass context.Background() unless the
// embedder has a request-scoped context to thread through.
func New(ctx context.Context) *Engine {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Engine{
		active:   make(map[*gesture.Gesture]struct{}),
		pairs:    make(map[pairKey]int),
		watchers: make(map[*gesture.Gesture]map[*gesture.Gesture]struct{}),
		ctx:      ctx,
	}
}

// mayStartDespite reports whether starter may start (or keep recognizing
// toward) POSSIBLE/RECOGNIZING status despite active already being
// RECOGNIZING. Only a single gesture may recognize globally at a time;
// this is the sole way past that: active's own opinion on the starter
// takes precedence, falling back to the starter's opinion on active.
func mayStartDespite(starter, active *gesture.Gesture) bool {
	return active.HandlerOtherGestureMayStart(starter) || starter.HandlerShouldStartWhile(active)
}

// StartEligible implements gesture.Arbiter.
func (e *Engine) StartEligible(g *gesture.Gesture) bool {
	e.mu.Lock()
	peers := e.activeExcept(g)
	e.mu.Unlock()

	for _, peer := range peers {
		if peer.State() != gesture.Recognizing {
			continue
		}
		if g.RecognizesIndependentlyFrom(peer) || peer.RecognizesIndependentlyFrom(g) {
			continue
		}
		if !mayStartDespite(g, peer) {
			return false
		}
	}
	return true
}

// BeginPendingWatch implements gesture.Arbiter.
func (e *Engine) BeginPendingWatch(g *gesture.Gesture, targetComplete bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	var stillActive []*gesture.Gesture
	for _, peer := range g.InhibitUntilCancelledOf() {
		switch peer.State() {
		case gesture.Possible, gesture.RecognizePending, gesture.Recognizing:
			stillActive = append(stillActive, peer)
		}
	}
	if len(stillActive) == 0 {
		return false
	}
	for _, peer := range stillActive {
		if e.watchers[peer] == nil {
			e.watchers[peer] = make(map[*gesture.Gesture]struct{})
		}
		e.watchers[peer][g] = struct{}{}
	}
	g.SetPendingWaitSet(stillActive)
	return true
}

// Pair implements gesture.Arbiter. The hint is derived from the two
// gestures' identifiers, not from which of them cancels the other: it
// is -1 when a's ID sorts before b's and +1 otherwise, computed on the
// first call for the pair and returned unchanged by later calls in
// either argument order. It is never 0.
func (e *Engine) Pair(a, b *gesture.Gesture) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := newPairKey(a, b)
	if hint, ok := e.pairs[key]; ok {
		return hint
	}

	a.Relate(b)

	hint := -1
	if a.ID() > b.ID() {
		hint = 1
	}
	e.pairs[key] = hint
	return hint
}

// Invalidate implements gesture.Arbiter.
func (e *Engine) Invalidate(g *gesture.Gesture) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key := range e.pairs {
		if key.a == g || key.b == g {
			delete(e.pairs, key)
		}
	}
}

// Notify implements gesture.Arbiter.
func (e *Engine) Notify(g *gesture.Gesture, old, new gesture.State) {
	e.mu.Lock()
	if old == gesture.Waiting {
		e.active[g] = struct{}{}
	}
	if new == gesture.Waiting {
		delete(e.active, g)
	}
	e.mu.Unlock()

	switch new {
	case gesture.Recognizing:
		e.cascade(g)
		e.resolveWatchers(g, new)
	case gesture.Completed:
		e.resolveWatchers(g, new)
	case gesture.Cancelled:
		e.resolveWatchers(g, new)
	}
}

// cascade runs once g reaches RECOGNIZING: its own cancel-on-recognizing
// list is snapshot, cleared, and walked, honoring may-not-cancel and the
// should_influence / should_be_influenced_by polarity; then every other
// active POSSIBLE gesture not in relationship with g is re-checked for
// start eligibility and cancelled if it no longer qualifies.
func (e *Engine) cascade(g *gesture.Gesture) {
	for _, peer := range g.CancelOnRecognizingSnapshot() {
		if g.MayNotCancel(peer) {
			continue
		}
		if cancel, ok := g.HandlerShouldInfluence(peer); ok && !cancel {
			continue
		}
		if cancel, ok := peer.HandlerShouldBeInfluencedBy(g); ok && !cancel {
			continue
		}
		peer.ForceCancel(e.ctx)
	}

	e.mu.Lock()
	peers := e.activeExcept(g)
	e.mu.Unlock()

	related := make(map[*gesture.Gesture]struct{})
	for _, r := range g.InRelationshipWith() {
		related[r] = struct{}{}
	}

	for _, peer := range peers {
		if peer.State() != gesture.Possible {
			continue
		}
		if _, ok := related[peer]; ok {
			continue
		}
		if g.RecognizesIndependentlyFrom(peer) || peer.RecognizesIndependentlyFrom(g) {
			continue
		}
		if !mayStartDespite(peer, g) {
			peer.ForceCancel(e.ctx)
		}
	}
}

// resolveWatchers wakes up every RECOGNIZE_PENDING gesture waiting on
// peer, per the outcome peer just reached.
func (e *Engine) resolveWatchers(peer *gesture.Gesture, outcome gesture.State) {
	e.mu.Lock()
	waiters := e.watchers[peer]
	delete(e.watchers, peer)
	e.mu.Unlock()

	for g := range waiters {
		switch outcome {
		case gesture.Cancelled:
			g.MarkPeerCancelled(peer)
			if g.PendingWaitDone() {
				g.ResolvePendingPromote(e.ctx)
			}
		case gesture.Recognizing, gesture.Completed:
			g.ResolvePendingFail(e.ctx)
		}
	}
}

// activeExcept returns the active registry contents other than self.
// Caller must hold e.mu.
func (e *Engine) activeExcept(self *gesture.Gesture) []*gesture.Gesture {
	out := make([]*gesture.Gesture, 0, len(e.active))
	for g := range e.active {
		if g != self {
			out = append(out, g)
		}
	}
	return out
}
