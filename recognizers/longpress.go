package recognizers

import (
	"context"

	"gioui.org/f32"

	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/settings"
	"github.com/esimov/gesturecore/timer"
)

// LongPress recognizes a single point held in place for the configured
// long-press duration without releasing or moving beyond the
// cancel-threshold.
type LongPress struct {
	*gesture.Gesture
	gesture.BaseHandlers

	ctx   context.Context
	clock timer.Service
	store settings.Store

	OnBegin func(at f32.Point)
	OnEnd   func(at f32.Point)

	firstBegin f32.Point
	fired      bool
	token      timer.Token
}

// NewLongPress attaches a LongPress recognizer to actor on stage.
func NewLongPress(ctx context.Context, name string, actor scene.Actor, stage scene.Stage, arbiter gesture.Arbiter, clock timer.Service, store settings.Store) *LongPress {
	l := &LongPress{ctx: ctx, clock: clock, store: store}
	l.Gesture = gesture.New(name, actor, stage, l, arbiter)
	return l
}

func (l *LongPress) PointsBegan(pts []point.Public) {
	l.firstBegin = pts[0].Begin
	l.fired = false
	l.token = l.clock.ScheduleOnce(settings.LongPressDuration(l.store), func() {
		l.fired = true
		l.Gesture.RequestRecognizing(l.ctx)
		if l.OnBegin != nil {
			l.OnBegin(l.firstBegin)
		}
	})
}

func (l *LongPress) PointsMoved(pts []point.Public) {
	if l.fired {
		return
	}
	if dist(pts[0].Latest, l.firstBegin) > float64(threshold(l.store)) {
		l.clock.Cancel(l.token)
		l.Gesture.RequestCancel(l.ctx)
	}
}

func (l *LongPress) PointsEnded(pts []point.Public) {
	if !l.fired {
		l.clock.Cancel(l.token)
		l.Gesture.RequestCancel(l.ctx)
		return
	}
	at := pts[0].End
	l.Gesture.RequestCompleted(l.ctx)
	if l.OnEnd != nil {
		l.OnEnd(at)
	}
}

func (l *LongPress) PointsCancelled(pts []point.Public) {
	l.clock.Cancel(l.token)
	l.Gesture.RequestCancel(l.ctx)
}

func (l *LongPress) StateChanged(old, new gesture.State) {
	if new == gesture.Cancelled || new == gesture.Completed {
		l.clock.Cancel(l.token)
		l.token = 0
	}
}
