// Package scene defines the narrow interfaces gesturecore consumes from
// the scene-graph actor tree and compositor stage. The actual tree,
// hit-testing and event-routing pipeline live outside this module;
// gesturecore only needs enough of their shape to claim points and
// relay crossing events.
package scene

import "gioui.org/io/key"

// SequenceKey identifies one live input sequence: a held pointer button
// or a touch from begin to end.
type SequenceKey struct {
	Device   uint64
	Sequence uint64
}

// Actor is a node in the external scene-graph tree.
type Actor interface {
	// Parent returns the actor's parent, or nil for the root.
	Parent() Actor
	// Name is a short debug label, used only in diagnostics.
	Name() string
}

// Contains reports whether descendant is ancestor itself or nested
// somewhere below it in the actor tree.
func Contains(ancestor, descendant Actor) bool {
	for a := descendant; a != nil; a = a.Parent() {
		if a == ancestor {
			return true
		}
	}
	return false
}

// Claimer marks (device, sequence) pairs as claimed by a gesture so the
// global event router can suppress non-gesture delivery for that
// sequence. While a gesture is RECOGNIZING, each of its points is
// marked claimed on the owning stage.
type Claimer interface {
	Claim(key SequenceKey, owner any)
	Release(key SequenceKey, owner any)
}

// CrossingMode classifies why a crossing event was generated.
type CrossingMode uint8

const (
	// CrossingNormal is an ordinary pointer enter/leave.
	CrossingNormal CrossingMode = iota
	// CrossingGrab is generated because a grab was installed.
	CrossingGrab
	// CrossingUngrab is generated because a grab was removed.
	CrossingUngrab
)

// Crossing describes a pointer moving between two actors.
type Crossing struct {
	Key       SequenceKey
	Old, New  Actor
	Topmost   Actor
	Bottommost Actor
	Mode      CrossingMode
	Modifiers key.Modifiers
}

// Stage is the compositor surface that emits crossing events for a
// sequence moving between actors.
type Stage interface {
	Claimer
	// EmitCrossing delivers a synthetic crossing event to the actor
	// tree, as computed by a grab surface (see package grab).
	EmitCrossing(c Crossing)
}
