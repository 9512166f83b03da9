package grab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/gesturecore/scene"
)

type fakeActor struct {
	name   string
	parent scene.Actor
}

func (a *fakeActor) Parent() scene.Actor { return a.parent }
func (a *fakeActor) Name() string        { return a.name }

type fakeStage struct {
	emitted []scene.Crossing
}

func (fakeStage) Claim(k scene.SequenceKey, owner any)   {}
func (fakeStage) Release(k scene.SequenceKey, owner any) {}
func (s *fakeStage) EmitCrossing(c scene.Crossing)       { s.emitted = append(s.emitted, c) }

func TestActorGrabCrossingBothInsideForwardsUnchanged(t *testing.T) {
	root := &fakeActor{name: "root"}
	target := &fakeActor{name: "target", parent: root}
	child := &fakeActor{name: "child", parent: target}
	sibling := &fakeActor{name: "sibling", parent: target}

	stage := &fakeStage{}
	grab := NewActorGrab(target, stage)

	grab.Crossing(scene.Crossing{Old: child, New: sibling})

	require.Len(t, stage.emitted, 1)
	assert.Equal(t, child, stage.emitted[0].Old)
	assert.Equal(t, sibling, stage.emitted[0].New)
}

func TestActorGrabCrossingLeavingSubtreeDropsNewEndpoint(t *testing.T) {
	root := &fakeActor{name: "root"}
	target := &fakeActor{name: "target", parent: root}
	child := &fakeActor{name: "child", parent: target}
	outside := &fakeActor{name: "outside", parent: root}

	stage := &fakeStage{}
	grab := NewActorGrab(target, stage)

	grab.Crossing(scene.Crossing{Old: child, New: outside})

	require.Len(t, stage.emitted, 1)
	assert.Equal(t, child, stage.emitted[0].Old)
	assert.Nil(t, stage.emitted[0].New)
}

func TestActorGrabCrossingEntirelyOutsideIsDropped(t *testing.T) {
	root := &fakeActor{name: "root"}
	target := &fakeActor{name: "target", parent: root}
	outside1 := &fakeActor{name: "o1", parent: root}
	outside2 := &fakeActor{name: "o2", parent: root}

	stage := &fakeStage{}
	grab := NewActorGrab(target, stage)

	grab.Crossing(scene.Crossing{Old: outside1, New: outside2})

	assert.Empty(t, stage.emitted)
}

func TestActorGrabCrossingBottommostOnlyWhenEndpointInside(t *testing.T) {
	root := &fakeActor{name: "root"}
	target := &fakeActor{name: "target", parent: root}
	child := &fakeActor{name: "child", parent: target}
	outside := &fakeActor{name: "outside", parent: root}

	stage := &fakeStage{}
	grab := NewActorGrab(target, stage)

	grab.Crossing(scene.Crossing{Old: outside, New: child, Mode: scene.CrossingGrab})

	require.Len(t, stage.emitted, 1)
	assert.Equal(t, target, stage.emitted[0].Bottommost, "grab-induced crossing entering the subtree names the grab target")
}

func TestStackSupersessionSingleNotification(t *testing.T) {
	stack := NewStack()
	key := scene.SequenceKey{Device: 1, Sequence: 1}

	first := &countingGrab{cancelResult: true}
	second := &countingGrab{cancelResult: true}

	stack.Install(key, first)
	stack.Install(key, second)

	assert.Equal(t, 1, first.cancelCalls, "only the directly superseded grab is asked to cancel")
	assert.Equal(t, 0, second.cancelCalls)

	cur, ok := stack.Current(key)
	require.True(t, ok)
	assert.Same(t, second, cur)
}

func TestStackReinstatesOnRefusedCancel(t *testing.T) {
	stack := NewStack()
	key := scene.SequenceKey{Device: 1, Sequence: 1}

	first := &countingGrab{cancelResult: false}
	second := &countingGrab{cancelResult: true}

	stack.Install(key, first)
	stack.Install(key, second)
	stack.Remove(key)

	cur, ok := stack.Current(key)
	require.True(t, ok, "first must be reinstated after second is removed")
	assert.Same(t, first, cur)
}

type countingGrab struct {
	BaseSurface
	cancelResult bool
	cancelCalls  int
}

func (g *countingGrab) Cancel() bool {
	g.cancelCalls++
	return g.cancelResult
}
