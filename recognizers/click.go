package recognizers

import (
	"context"
	"math"

	"gioui.org/f32"

	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/settings"
	"github.com/esimov/gesturecore/timer"
	"github.com/esimov/gesturecore/utils"
)

// Click recognizes N presses and releases of the same device within
// the double-click interval, each within the configured drag threshold
// of the first press.
type Click struct {
	*gesture.Gesture
	gesture.BaseHandlers

	ctx    context.Context
	clock  timer.Service
	store  settings.Store

	// NPresses is the number of press/release cycles required to
	// complete (1 = single click, 2 = double-click, ...). Defaults to 1.
	NPresses int

	// OnClicked is invoked once recognition completes.
	OnClicked func(at f32.Point)

	count      int
	device     point.DeviceType
	firstBegin f32.Point
	expiry     timer.Token
}

// NewClick attaches a Click recognizer to actor on stage.
func NewClick(ctx context.Context, name string, actor scene.Actor, stage scene.Stage, arbiter gesture.Arbiter, clock timer.Service, store settings.Store) *Click {
	c := &Click{ctx: ctx, clock: clock, store: store, NPresses: 1}
	c.Gesture = gesture.New(name, actor, stage, c, arbiter)
	return c
}

func (c *Click) PointsBegan(pts []point.Public) {
	pt := pts[0]
	if c.count == 0 {
		c.device = pt.Device
		c.firstBegin = pt.Begin
	} else if pt.Device != c.device || dist(pt.Begin, c.firstBegin) > float64(threshold(c.store)) {
		c.cancel()
		return
	}
	c.rearm()
}

func (c *Click) PointsMoved(pts []point.Public) {
	for _, pt := range pts {
		if dist(pt.Latest, c.firstBegin) > float64(threshold(c.store)) {
			c.cancel()
			return
		}
	}
}

func (c *Click) PointsEnded(pts []point.Public) {
	c.count++
	if c.count >= c.NPresses {
		c.clock.Cancel(c.expiry)
		at := pts[0].End
		c.Gesture.RequestCompleted(c.ctx)
		if c.OnClicked != nil {
			c.OnClicked(at)
		}
		return
	}
	c.rearm()
}

func (c *Click) PointsCancelled(pts []point.Public) {
	c.cancel()
}

func (c *Click) StateChanged(old, new gesture.State) {
	if new == gesture.Cancelled || new == gesture.Completed {
		c.clock.Cancel(c.expiry)
		c.expiry = 0
		c.count = 0
	}
}

func (c *Click) rearm() {
	c.clock.Cancel(c.expiry)
	c.expiry = c.clock.ScheduleOnce(settings.DoubleClickInterval(c.store), func() {
		c.Gesture.RequestCancel(c.ctx)
	})
}

func (c *Click) cancel() {
	c.clock.Cancel(c.expiry)
	c.expiry = 0
	c.Gesture.RequestCancel(c.ctx)
}

func threshold(s settings.Store) int { return settings.DragThreshold(s) }

func dist(a, b f32.Point) float64 {
	dx, dy := utils.Abs(a.X-b.X), utils.Abs(a.Y-b.Y)
	return math.Hypot(float64(dx), float64(dy))
}
