package point

import (
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/gesturecore/scene"
)

func TestRegistryBeginAssignsSequentialIndex(t *testing.T) {
	r := NewRegistry()
	k1 := scene.SequenceKey{Device: 1, Sequence: 1}
	k2 := scene.SequenceKey{Device: 1, Sequence: 2}

	p1 := r.Begin(k1, Pointer, f32.Pt(0, 0), 0, 0)
	p2 := r.Begin(k2, Touchscreen, f32.Pt(5, 5), 10*time.Millisecond, 0)

	assert.Equal(t, 0, p1.Index)
	assert.Equal(t, 1, p2.Index)
	assert.Equal(t, Pointer, p1.Device)
	assert.Equal(t, Touchscreen, p2.Device)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryClearResetsIndexCounter(t *testing.T) {
	r := NewRegistry()
	k := scene.SequenceKey{Device: 1, Sequence: 1}
	r.Begin(k, Pointer, f32.Pt(0, 0), 0, 0)

	r.Clear()
	require.Equal(t, 0, r.Len())

	p := r.Begin(k, Pointer, f32.Pt(1, 1), 0, 0)
	assert.Equal(t, 0, p.Index, "index counter must restart after Clear")
}

func TestRegistryUpdateTracksLastAndMove(t *testing.T) {
	r := NewRegistry()
	k := scene.SequenceKey{Device: 1, Sequence: 1}
	r.Begin(k, Pointer, f32.Pt(0, 0), 0, 0)

	p1 := r.Update(k, f32.Pt(10, 0), 5*time.Millisecond, 0)
	require.NotNil(t, p1)
	assert.Equal(t, f32.Pt(10, 0), p1.Move)
	assert.Equal(t, f32.Pt(0, 0), p1.Last)

	p2 := r.Update(k, f32.Pt(20, 0), 10*time.Millisecond, 0)
	assert.Equal(t, f32.Pt(20, 0), p2.Move)
	assert.Equal(t, f32.Pt(10, 0), p2.Last)
}

func TestRegistryButtonDepthAbsorbsChordedPress(t *testing.T) {
	r := NewRegistry()
	k := scene.SequenceKey{Device: 1, Sequence: 1}
	r.Begin(k, Pointer, f32.Pt(0, 0), 0, 0)

	// Begin already counts as depth 1; a second chorded press increments
	// to depth 2 and must not be forwarded.
	assert.False(t, r.IncDepth(k))
	// Releasing once only brings depth back to 1: still not forwarded.
	assert.False(t, r.DecDepth(k))
	// The final release brings depth to 0: forwarded.
	assert.True(t, r.DecDepth(k))
}

func TestRegistrySameSourceDevice(t *testing.T) {
	r := NewRegistry()
	k1 := scene.SequenceKey{Device: 1, Sequence: 1}
	r.Begin(k1, Touchscreen, f32.Pt(0, 0), 0, 0)

	assert.True(t, r.SameSourceDevice(Touchscreen))
	assert.False(t, r.SameSourceDevice(Pointer))
}

func TestRegistryRemoveAndKeysPreserveOrder(t *testing.T) {
	r := NewRegistry()
	k1 := scene.SequenceKey{Device: 1, Sequence: 1}
	k2 := scene.SequenceKey{Device: 1, Sequence: 2}
	k3 := scene.SequenceKey{Device: 1, Sequence: 3}
	r.Begin(k1, Pointer, f32.Pt(0, 0), 0, 0)
	r.Begin(k2, Pointer, f32.Pt(0, 0), 0, 0)
	r.Begin(k3, Pointer, f32.Pt(0, 0), 0, 0)

	r.Remove(k2)
	assert.Equal(t, []scene.SequenceKey{k1, k3}, r.Keys())
}
