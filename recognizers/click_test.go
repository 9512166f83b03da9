package recognizers

import (
	"context"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
)

func TestClickSinglePressRelease(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	click := NewClick(ctx, "click", &fakeActor{}, fakeStage{}, newArbiter(), clock, newStore())

	var clickedAt f32.Point
	clicked := false
	click.OnClicked = func(at f32.Point) { clicked = true; clickedAt = at }

	require.True(t, click.BeginEpisode(ctx))
	click.HandlePointsBegan([]point.Public{{Index: 0, Device: point.Pointer, Begin: f32.Pt(1, 1)}})
	click.HandlePointsEnded([]point.Public{{Index: 0, Device: point.Pointer, End: f32.Pt(1, 1)}})

	assert.True(t, clicked)
	assert.Equal(t, f32.Pt(1, 1), clickedAt)
	assert.Equal(t, gesture.Completed, click.State())
}

func TestClickDoubleClickRequiresTwoPresses(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	click := NewClick(ctx, "click", &fakeActor{}, fakeStage{}, newArbiter(), clock, newStore())
	click.NPresses = 2

	clicks := 0
	click.OnClicked = func(at f32.Point) { clicks++ }

	require.True(t, click.BeginEpisode(ctx))
	click.HandlePointsBegan([]point.Public{{Index: 0, Device: point.Pointer, Begin: f32.Pt(0, 0)}})
	click.HandlePointsEnded([]point.Public{{Index: 0, Device: point.Pointer, End: f32.Pt(0, 0)}})
	assert.Equal(t, 0, clicks, "one press/release is not enough for a double-click")
	assert.Equal(t, gesture.Possible, click.State())

	click.HandlePointsBegan([]point.Public{{Index: 1, Device: point.Pointer, Begin: f32.Pt(0, 0)}})
	click.HandlePointsEnded([]point.Public{{Index: 1, Device: point.Pointer, End: f32.Pt(0, 0)}})
	assert.Equal(t, 1, clicks)
	assert.Equal(t, gesture.Completed, click.State())
}

func TestClickCancelledByMovementBeyondThreshold(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newStore()
	store.Set("dnd-drag-threshold", 4)
	click := NewClick(ctx, "click", &fakeActor{}, fakeStage{}, newArbiter(), clock, store)

	clicked := false
	click.OnClicked = func(at f32.Point) { clicked = true }

	require.True(t, click.BeginEpisode(ctx))
	click.HandlePointsBegan([]point.Public{{Index: 0, Device: point.Pointer, Begin: f32.Pt(0, 0)}})
	click.HandlePointsMoved([]point.Public{{Index: 0, Device: point.Pointer, Latest: f32.Pt(50, 0)}})

	assert.False(t, clicked)
	assert.Equal(t, gesture.Cancelled, click.State())
}

func TestClickCancelledByForeignDeviceOnSecondPress(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	click := NewClick(ctx, "click", &fakeActor{}, fakeStage{}, newArbiter(), clock, newStore())
	click.NPresses = 2

	require.True(t, click.BeginEpisode(ctx))
	click.HandlePointsBegan([]point.Public{{Index: 0, Device: point.Pointer, Begin: f32.Pt(0, 0)}})
	click.HandlePointsEnded([]point.Public{{Index: 0, Device: point.Pointer, End: f32.Pt(0, 0)}})
	require.Equal(t, gesture.Possible, click.State())

	click.HandlePointsBegan([]point.Public{{Index: 1, Device: point.Touchscreen, Begin: f32.Pt(0, 0)}})
	assert.Equal(t, gesture.Cancelled, click.State(), "a second press from a different device source must cancel")
}

func TestClickExpiresAfterDoubleClickInterval(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	click := NewClick(ctx, "click", &fakeActor{}, fakeStage{}, newArbiter(), clock, newStore())
	click.NPresses = 2

	require.True(t, click.BeginEpisode(ctx))
	click.HandlePointsBegan([]point.Public{{Index: 0, Device: point.Pointer, Begin: f32.Pt(0, 0)}})
	click.HandlePointsEnded([]point.Public{{Index: 0, Device: point.Pointer, End: f32.Pt(0, 0)}})
	require.Equal(t, gesture.Possible, click.State())

	clock.Fire(clock.latest())
	assert.Equal(t, gesture.Cancelled, click.State(), "the rearm timer firing without a second press cancels")
}
