// Package grab implements the grab surface: while a gesture is
// recognized it can redirect event delivery for its points to a
// chosen actor sub-tree. Surface mirrors gio's per-family event
// interfaces (gesture.Hover/Click/Drag in the teacher's vendored
// gioui.org/gesture) rather than one fat dispatch method, so a grab
// only needs to override the families it cares about.
package grab

import (
	"gioui.org/io/key"

	"github.com/esimov/gesturecore/scene"
)

// Surface is the grab interface, one method per event family. Default
// implementations are no-ops; ActorGrab overrides Crossing and leaves
// the rest as pass-through stubs for embedders to extend.
type Surface interface {
	Crossing(c scene.Crossing)
	Key(mods key.Modifiers)
	Motion(k scene.SequenceKey)
	Button(k scene.SequenceKey)
	Scroll(k scene.SequenceKey)
	TouchpadGesture(k scene.SequenceKey)
	Touch(k scene.SequenceKey)
	Pad(k scene.SequenceKey)

	// Cancel is asked of the currently installed grab when a
	// superseding grab is about to take over. Returning true releases
	// the grab permanently; false asks the stack to reinstate it once
	// the superseder finishes (see Open Question decision in
	// DESIGN.md: honored only for the currently-installed superseder).
	Cancel() bool
}

// BaseSurface gives every event family a pass-through no-op, so a
// concrete grab only needs to implement Cancel and whichever families
// it actually redirects.
type BaseSurface struct{}

func (BaseSurface) Crossing(c scene.Crossing)          {}
func (BaseSurface) Key(mods key.Modifiers)             {}
func (BaseSurface) Motion(k scene.SequenceKey)         {}
func (BaseSurface) Button(k scene.SequenceKey)         {}
func (BaseSurface) Scroll(k scene.SequenceKey)         {}
func (BaseSurface) TouchpadGesture(k scene.SequenceKey) {}
func (BaseSurface) Touch(k scene.SequenceKey)          {}
func (BaseSurface) Pad(k scene.SequenceKey)            {}

// ActorGrab is the concrete grab that binds delivery to a target
// actor's sub-tree. Only Crossing is implemented, with the
// inside/outside reduction; the other event families are BaseSurface's
// no-ops, so ActorGrab does not forward them anywhere.
type ActorGrab struct {
	BaseSurface
	Target scene.Actor
	Stage  scene.Stage
}

// NewActorGrab returns a grab rooted at target, re-emitting the
// reduced crossing onto stage.
func NewActorGrab(target scene.Actor, stage scene.Stage) *ActorGrab {
	return &ActorGrab{Target: target, Stage: stage}
}

// Crossing implements the inside/outside reduction rule: forward
// unchanged when both endpoints are inside the sub-tree, report a
// one-sided leave/enter when only one is, and drop when neither is.
// When the crossing is grab-induced (mode GRAB/UNGRAB) and the
// corresponding endpoint is inside the sub-tree, the target itself
// becomes the bottommost reference.
func (a *ActorGrab) Crossing(c scene.Crossing) {
	oldIn := c.Old != nil && scene.Contains(a.Target, c.Old)
	newIn := c.New != nil && scene.Contains(a.Target, c.New)

	switch {
	case oldIn && newIn:
		// both inside: forward unchanged
	case oldIn && !newIn:
		c.New = nil
	case !oldIn && newIn:
		c.Old = nil
	default:
		return
	}

	switch c.Mode {
	case scene.CrossingGrab:
		if newIn {
			c.Bottommost = a.Target
		}
	case scene.CrossingUngrab:
		if oldIn {
			c.Bottommost = a.Target
		}
	}

	a.Stage.EmitCrossing(c)
}

// Cancel always releases: actor grabs never ask to be reinstated.
func (a *ActorGrab) Cancel() bool { return true }
