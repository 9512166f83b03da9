// Package gesture implements the per-gesture recognition state
// machine: the six-state lifecycle, its legal transition table, and
// the five relationship tables arbitration consults. It knows nothing
// about any other gesture directly — it only calls out through the
// Arbiter interface, which package arbitration implements.
package gesture

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"

	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/utils"
)

// ErrArbitrationDenied is returned internally when arbitration refuses
// a gesture permission to start or to recognize. It never escapes to a
// caller of BeginEpisode, RequestRecognizing or RequestCompleted; it
// only shapes which transition is actually taken.
var ErrArbitrationDenied = errors.New("gesture: denied by arbitration")

const (
	evBegin   = "begin"
	evAccept  = "accept"
	evPend    = "pend"
	evPromote = "promote"
	evCancel  = "cancel"
	evComplete = "complete"
	evWake    = "wake"
)

// Gesture is one instance of a recognizer attached to an actor: the
// state machine, its live point registry and its relationship tables.
// Concrete recognizers (package recognizers) embed *Gesture and a
// BaseHandlers, overriding the hooks they need.
type Gesture struct {
	id   uuid.UUID
	name string

	handlers Handlers
	arbiter  Arbiter

	actor scene.Actor
	stage scene.Stage

	allowed point.DeviceType

	points *point.Registry
	fsm    *fsm.FSM

	inRelationshipWith         map[*Gesture]struct{}
	cancelOnRecognizing        map[*Gesture]struct{}
	inhibitUntilCancelledOf    map[*Gesture]struct{}
	mayNotCancel               map[*Gesture]struct{}
	recognizeIndependentlyFrom map[*Gesture]struct{}

	// pendingWait tracks, while in RECOGNIZE_PENDING, which required
	// peers have not yet cancelled.
	pendingWait         map[*Gesture]struct{}
	pendingTargetComplete bool

	notifications int
}

// New constructs a Gesture attached to actor on stage, owned by
// handlers and arbitrated by arbiter. name is a short debug label
// used by String() in log output.
func New(name string, actor scene.Actor, stage scene.Stage, handlers Handlers, arbiter Arbiter) *Gesture {
	g := &Gesture{
		id:       uuid.New(),
		name:     name,
		handlers: handlers,
		arbiter:  arbiter,
		actor:    actor,
		stage:    stage,
		allowed:  point.AllDeviceTypes,
		points:   point.NewRegistry(),
	}
	g.fsm = fsm.NewFSM(
		string(Waiting),
		fsm.Events{
			{Name: evBegin, Src: []string{string(Waiting)}, Dst: string(Possible)},
			{Name: evPend, Src: []string{string(Possible)}, Dst: string(RecognizePending)},
			{Name: evAccept, Src: []string{string(Possible)}, Dst: string(Recognizing)},
			{Name: evPromote, Src: []string{string(RecognizePending)}, Dst: string(Recognizing)},
			{Name: evCancel, Src: []string{string(Possible), string(RecognizePending), string(Recognizing)}, Dst: string(Cancelled)},
			{Name: evComplete, Src: []string{string(Recognizing)}, Dst: string(Completed)},
			{Name: evWake, Src: []string{string(Completed), string(Cancelled)}, Dst: string(Waiting)},
		},
		fsm.Callbacks{
			"before_" + evBegin: func(_ context.Context, e *fsm.Event) {
				if !g.arbiter.StartEligible(g) {
					e.Cancel(ErrArbitrationDenied)
				}
			},
			"before_" + evAccept: func(_ context.Context, e *fsm.Event) {
				if !g.arbiter.StartEligible(g) || !g.handlers.MayRecognize() {
					e.Cancel(ErrArbitrationDenied)
				}
			},
			"enter_" + string(Recognizing): func(_ context.Context, e *fsm.Event) {
				g.claimPoints()
			},
			"leave_" + string(Recognizing): func(_ context.Context, e *fsm.Event) {
				g.releasePoints()
			},
			"enter_" + string(Waiting): func(_ context.Context, e *fsm.Event) {
				g.points.Clear()
				g.pendingWait = nil
				g.arbiter.Notify(g, State(e.Src), State(e.Dst))
				g.teardownRelationships()
			},
			"after_event": func(_ context.Context, e *fsm.Event) {
				old, new := State(e.Src), State(e.Dst)
				g.notifications++
				g.handlers.StateChanged(old, new)
				if new != Waiting {
					g.arbiter.Notify(g, old, new)
				}
			},
		},
	)
	return g
}

func (g *Gesture) ID() string   { return g.id.String() }
func (g *Gesture) Name() string { return g.name }

// String renders a short diagnostic label for log messages.
func (g *Gesture) String() string {
	if g.name != "" {
		return fmt.Sprintf("%s(%s)", g.name, g.id.String()[:8])
	}
	return g.id.String()[:8]
}

// State reports the current lifecycle state.
func (g *Gesture) State() State { return State(g.fsm.Current()) }

// Actor returns the scene actor this gesture is attached to.
func (g *Gesture) Actor() scene.Actor { return g.actor }

// Points returns the public point projection, empty unless the
// current state permits public visibility.
func (g *Gesture) Points() []point.Public {
	if !g.State().hasPublicPoints() {
		return nil
	}
	return g.points.All()
}

// Registry exposes the underlying point registry to the dispatcher,
// which owns point lifecycle (begin/update/end) independently of
// whether those points are currently publicly visible.
func (g *Gesture) Registry() *point.Registry { return g.points }

// AllowedDeviceTypes reports the device-type mask this gesture accepts.
func (g *Gesture) AllowedDeviceTypes() point.DeviceType { return g.allowed }

// SetAllowedDeviceTypes restricts which device types may feed this
// gesture.
func (g *Gesture) SetAllowedDeviceTypes(mask point.DeviceType) { g.allowed = mask }

// Notifications returns the number of state_changed deliveries
// observed so far; used by tests asserting exactly-once notification
// per real transition.
func (g *Gesture) Notifications() int { return g.notifications }

// BeginEpisode is called by the dispatcher when the first point of a
// new episode arrives. It attempts WAITING->POSSIBLE; if arbitration
// denies it, the gesture remains in WAITING and the caller must not
// register the triggering point.
func (g *Gesture) BeginEpisode(ctx context.Context) bool {
	if g.State() != Waiting {
		return true
	}
	err := g.fsm.Event(ctx, evBegin)
	return err == nil
}

// RequestRecognizing is the recognizer-facing set_state(RECOGNIZING)
// call. Re-entrant while already RECOGNIZING: it performs only the
// point re-claim pass, with no new state_changed delivery.
func (g *Gesture) RequestRecognizing(ctx context.Context) {
	g.requestRecognizing(ctx, false)
}

// RequestCompleted is set_state(COMPLETED): reaches RECOGNIZING first
// if necessary, then completes. If the RECOGNIZING transition is
// refused, the gesture is routed to CANCELLED instead.
func (g *Gesture) RequestCompleted(ctx context.Context) {
	g.requestRecognizing(ctx, true)
}

func (g *Gesture) requestRecognizing(ctx context.Context, viaComplete bool) {
	switch g.State() {
	case Recognizing:
		g.claimPoints()
		if viaComplete {
			_ = g.fsm.Event(ctx, evComplete)
		}
		return
	case RecognizePending:
		// Already waiting on a failure dependency; only remember the
		// eventual target, the watch resolves it later.
		g.pendingTargetComplete = g.pendingTargetComplete || viaComplete
		return
	case Possible:
		// fall through
	default:
		g.illegal("RECOGNIZING")
		return
	}

	if g.arbiter.BeginPendingWatch(g, viaComplete) {
		g.pendingTargetComplete = viaComplete
		_ = g.fsm.Event(ctx, evPend)
		return
	}

	if err := g.fsm.Event(ctx, evAccept); err != nil {
		_ = g.fsm.Event(ctx, evCancel)
		return
	}
	if viaComplete {
		_ = g.fsm.Event(ctx, evComplete)
	}
}

// RequestCancel is the recognizer-facing set_state(CANCELLED) call. A
// redundant request while already CANCELLED is a silent no-op; a
// request from WAITING or COMPLETED has no legal edge and is logged
// and dropped.
func (g *Gesture) RequestCancel(ctx context.Context) {
	switch g.State() {
	case Cancelled:
		return
	case Possible, RecognizePending, Recognizing:
		_ = g.fsm.Event(ctx, evCancel)
	default:
		g.illegal("CANCELLED")
	}
}

// ForceCancel is the arbitration/external-absorption cancel path:
// always permissible, a no-op from any state with nothing to cancel.
// Unlike RequestCancel it is never "illegal" to call.
func (g *Gesture) ForceCancel(ctx context.Context) {
	switch g.State() {
	case Possible, RecognizePending, Recognizing:
		_ = g.fsm.Event(ctx, evCancel)
	}
}

// ResolvePendingPromote is called by the arbiter once every peer g was
// waiting on has cancelled while g sits in RECOGNIZE_PENDING.
func (g *Gesture) ResolvePendingPromote(ctx context.Context) {
	if g.State() != RecognizePending {
		return
	}
	if err := g.fsm.Event(ctx, evPromote); err != nil {
		return
	}
	if g.pendingTargetComplete {
		_ = g.fsm.Event(ctx, evComplete)
	}
}

// ResolvePendingFail is called by the arbiter when a peer g was
// waiting on instead reaches RECOGNIZING or COMPLETED first.
func (g *Gesture) ResolvePendingFail(ctx context.Context) {
	if g.State() != RecognizePending {
		return
	}
	_ = g.fsm.Event(ctx, evCancel)
}

// MarkPeerCancelled records that peer, one of g's
// inhibit-until-cancelled-of dependencies, has cancelled.
func (g *Gesture) MarkPeerCancelled(peer *Gesture) {
	delete(g.pendingWait, peer)
}

// PendingWaitDone reports whether every peer g is waiting on in
// RECOGNIZE_PENDING has now cancelled.
func (g *Gesture) PendingWaitDone() bool { return len(g.pendingWait) == 0 }

// setPendingWaitSet records the peers still undecided at the moment g
// entered RECOGNIZE_PENDING.
func (g *Gesture) setPendingWaitSet(peers []*Gesture) {
	if g.pendingWait == nil {
		g.pendingWait = make(map[*Gesture]struct{}, len(peers))
	}
	for _, p := range peers {
		g.pendingWait[p] = struct{}{}
	}
}

// SetPendingWaitSet is the exported form arbitration.Engine uses; kept
// separate from setPendingWaitSet so BeginPendingWatch implementations
// outside the package can populate it after computing the still-undecided
// subset of InhibitUntilCancelledOf().
func (g *Gesture) SetPendingWaitSet(peers []*Gesture) { g.setPendingWaitSet(peers) }

// HandlePointsBegan/Moved/Ended/Cancelled forward to the owning
// recognizer's Handlers, but only while the gesture's state permits
// public visibility; a gesture in COMPLETED/CANCELLED silently absorbs
// further point events for the sequence's tail.
func (g *Gesture) HandlePointsBegan(pts []point.Public) {
	if g.State().hasPublicPoints() {
		g.handlers.PointsBegan(pts)
	}
}

func (g *Gesture) HandlePointsMoved(pts []point.Public) {
	if g.State().hasPublicPoints() {
		g.handlers.PointsMoved(pts)
	}
}

func (g *Gesture) HandlePointsEnded(pts []point.Public) {
	if g.State().hasPublicPoints() {
		g.handlers.PointsEnded(pts)
	}
}

func (g *Gesture) HandlePointsCancelled(pts []point.Public) {
	if g.State().hasPublicPoints() {
		g.handlers.PointsCancelled(pts)
	}
}

// HandleCrossingEvent forwards a crossing event while a public point
// exists for it.
func (g *Gesture) HandleCrossingEvent(c scene.Crossing) {
	if g.State().hasPublicPoints() {
		g.handlers.CrossingEvent(c)
	}
}

// MaybeReturnToWaiting is called by the dispatcher after removing the
// last live point from a COMPLETED or CANCELLED gesture.
func (g *Gesture) MaybeReturnToWaiting(ctx context.Context) {
	if g.points.Len() > 0 {
		return
	}
	switch g.State() {
	case Completed, Cancelled:
		_ = g.fsm.Event(ctx, evWake)
	}
}

func (g *Gesture) claimPoints() {
	for _, k := range g.points.Keys() {
		g.stage.Claim(k, g)
	}
}

func (g *Gesture) releasePoints() {
	for _, k := range g.points.Keys() {
		g.stage.Release(k, g)
	}
}

func (g *Gesture) teardownRelationships() {
	for peer := range g.inRelationshipWith {
		peer.removeRelationship(g)
	}
	g.inRelationshipWith = nil
	g.cancelOnRecognizing = nil
}

func (g *Gesture) illegal(requested string) {
	log.Println(utils.DecorateText(
		fmt.Sprintf("gesture %s: illegal set_state(%s) from %s, dropped", g, requested, g.State()),
		utils.ErrorMessage,
	))
}
