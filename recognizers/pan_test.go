package recognizers

import (
	"context"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
)

// TestPanEndVelocityMatchesScenarioSix reproduces a fixed sample trace:
// a begin at t=0, two 10px updates at t=50ms and t=100ms, yielding an
// end velocity of 0.2 px/ms.
func TestPanEndVelocityMatchesScenarioSix(t *testing.T) {
	ctx := context.Background()
	pan := NewPan(ctx, "pan", &fakeActor{}, fakeStage{}, newArbiter())
	pan.BeginThreshold = 0

	var vx, vy float32
	pan.OnEnd = func(x, y float32) { vx, vy = x, y }

	key := scene.SequenceKey{Device: 1, Sequence: 1}
	require.True(t, pan.BeginEpisode(ctx))
	beginPt := pan.Registry().Begin(key, point.Touchscreen, f32.Pt(0, 0), 0, 0)
	pan.HandlePointsBegan([]point.Public{*beginPt})

	movePt := pan.Registry().Update(key, f32.Pt(10, 0), 50*time.Millisecond, 0)
	pan.HandlePointsMoved([]point.Public{*movePt})
	require.Equal(t, gesture.Recognizing, pan.State())

	movePt2 := pan.Registry().Update(key, f32.Pt(20, 0), 100*time.Millisecond, 0)
	pan.HandlePointsMoved([]point.Public{*movePt2})

	endPt := pan.Registry().End(key, f32.Pt(20, 0), 100*time.Millisecond, 0)
	pan.HandlePointsEnded([]point.Public{*endPt})

	assert.Equal(t, gesture.Completed, pan.State())
	assert.InDelta(t, 0.2, vx, 0.001)
	assert.InDelta(t, 0, vy, 0.001)
}

func TestPanDoesNotRecognizeBelowBeginThreshold(t *testing.T) {
	ctx := context.Background()
	pan := NewPan(ctx, "pan", &fakeActor{}, fakeStage{}, newArbiter())
	pan.BeginThreshold = 16

	key := scene.SequenceKey{Device: 1, Sequence: 1}
	require.True(t, pan.BeginEpisode(ctx))
	beginPt := pan.Registry().Begin(key, point.Touchscreen, f32.Pt(0, 0), 0, 0)
	pan.HandlePointsBegan([]point.Public{*beginPt})

	movePt := pan.Registry().Update(key, f32.Pt(5, 0), 10*time.Millisecond, 0)
	pan.HandlePointsMoved([]point.Public{*movePt})

	assert.Equal(t, gesture.Possible, pan.State(), "a small move below threshold must not start recognition")
}

func TestPanAxisXIgnoresVerticalMovement(t *testing.T) {
	ctx := context.Background()
	pan := NewPan(ctx, "pan", &fakeActor{}, fakeStage{}, newArbiter())
	pan.Axis = AxisX
	pan.BeginThreshold = 10

	var total float32
	pan.OnUpdate = func(dx, dy, t float32) { total = t }

	key := scene.SequenceKey{Device: 1, Sequence: 1}
	require.True(t, pan.BeginEpisode(ctx))
	beginPt := pan.Registry().Begin(key, point.Touchscreen, f32.Pt(0, 0), 0, 0)
	pan.HandlePointsBegan([]point.Public{*beginPt})

	movePt := pan.Registry().Update(key, f32.Pt(0, 30), 10*time.Millisecond, 0)
	pan.HandlePointsMoved([]point.Public{*movePt})

	assert.Equal(t, gesture.Possible, pan.State(), "vertical-only movement must not cross an X-axis threshold")
	assert.Equal(t, float32(0), total)
}

func TestPanCancelledWhenExceedingMaxTouchPoints(t *testing.T) {
	ctx := context.Background()
	pan := NewPan(ctx, "pan", &fakeActor{}, fakeStage{}, newArbiter())

	key1 := scene.SequenceKey{Device: 2, Sequence: 1}
	key2 := scene.SequenceKey{Device: 2, Sequence: 2}
	require.True(t, pan.BeginEpisode(ctx))

	p1 := pan.Registry().Begin(key1, point.Touchscreen, f32.Pt(0, 0), 0, 0)
	pan.HandlePointsBegan([]point.Public{*p1})
	require.Equal(t, gesture.Possible, pan.State())

	p2 := pan.Registry().Begin(key2, point.Touchscreen, f32.Pt(0, 0), 0, 0)
	pan.HandlePointsBegan([]point.Public{*p2})

	assert.Equal(t, gesture.Cancelled, pan.State(), "a second point beyond MaxTouchPoints=1 must cancel")
}
