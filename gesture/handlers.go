package gesture

import (
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
)

// Handlers is the full set of hooks a concrete recognizer (package
// recognizers) can override: the point-delivery family
// (points_began/moved/ended/cancelled, crossing_event, state_changed,
// may_recognize) and the relationship family consulted by arbitration
// (should_influence, should_be_influenced_by, should_start_while,
// other_gesture_may_start).
//
// Recognizers embed BaseHandlers and override only what they need,
// the way gio's gesture.Click/gesture.Drag are small structs rather
// than a deep interface hierarchy.
type Handlers interface {
	PointsBegan(pts []point.Public)
	PointsMoved(pts []point.Public)
	PointsEnded(pts []point.Public)
	PointsCancelled(pts []point.Public)
	CrossingEvent(c scene.Crossing)

	StateChanged(old, new State)

	// MayRecognize is consulted once, immediately before the
	// POSSIBLE->RECOGNIZING transition commits. Returning false cancels
	// self.
	MayRecognize() bool

	// ShouldInfluence is consulted for a peer g already in
	// in-relationship-with self, by the cascade that runs once self has
	// entered RECOGNIZING. ok=false means "no opinion", defer to the other
	// peer's ShouldBeInfluencedBy or the default polarity.
	ShouldInfluence(peer *Gesture) (cancelPeer, ok bool)

	// ShouldBeInfluencedBy is the receiving half of ShouldInfluence,
	// consulted on self when a related peer is entering RECOGNIZING.
	ShouldBeInfluencedBy(peer *Gesture) (cancelSelf, ok bool)

	// ShouldStartWhile grants self's own start eligibility despite an
	// already-RECOGNIZING peer. Only a single gesture can recognize
	// globally at a time unless a hook raises this to true.
	ShouldStartWhile(peer *Gesture) bool

	// OtherGestureMayStart grants a POSSIBLE peer's start eligibility
	// while self is already RECOGNIZING. Only a single gesture can
	// recognize globally at a time unless a hook raises this to true.
	OtherGestureMayStart(starter *Gesture) bool
}

// BaseHandlers supplies no-op defaults for every Handlers method. Embed
// it in a recognizer and override only the hooks that matter to it.
//
// The point-delivery hooks default to doing nothing, and MayRecognize
// defaults to granting. The two mutual-exclusion hooks default to
// false: only a single gesture may recognize globally at a time, and a
// recognizer must explicitly opt in to relax that.
type BaseHandlers struct{}

func (BaseHandlers) PointsBegan(pts []point.Public)     {}
func (BaseHandlers) PointsMoved(pts []point.Public)     {}
func (BaseHandlers) PointsEnded(pts []point.Public)     {}
func (BaseHandlers) PointsCancelled(pts []point.Public) {}
func (BaseHandlers) CrossingEvent(c scene.Crossing)     {}
func (BaseHandlers) StateChanged(old, new State)        {}

func (BaseHandlers) MayRecognize() bool { return true }

func (BaseHandlers) ShouldInfluence(peer *Gesture) (bool, bool)      { return false, false }
func (BaseHandlers) ShouldBeInfluencedBy(peer *Gesture) (bool, bool) { return false, false }
func (BaseHandlers) ShouldStartWhile(peer *Gesture) bool             { return false }
func (BaseHandlers) OtherGestureMayStart(starter *Gesture) bool      { return false }
