package recognizers

import (
	"context"
	"math"
	"time"

	"gioui.org/f32"

	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/utils"
)

// Axis constrains which displacement component counts toward the
// begin-threshold and the emitted deltas.
type Axis int

const (
	AxisBoth Axis = iota
	AxisX
	AxisY
)

// Pan.window is a time-bounded log of reduced per-update deltas, trimmed
// from the front by age, used for the end-velocity computation. Shaped after
// gioui.org/internal/fling's Extrapolation sample buffer (trim to a
// window, divide accumulated delta by elapsed time), adapted to a
// plain sum/elapsed formula instead of a least-squares fit.
const (
	panWindowDuration  = 150 * time.Millisecond
	panMinStoreInterval = time.Millisecond
)

type panSample struct {
	t      time.Duration
	dx, dy float32
}

// Pan recognizes a multi-point drag: it accumulates axis-constrained
// displacement until BeginThreshold is crossed, then emits per-update
// deltas and a final end velocity computed from a rolling sample
// window.
type Pan struct {
	*gesture.Gesture
	gesture.BaseHandlers

	ctx context.Context

	Axis            Axis
	MinTouchPoints  int
	MaxTouchPoints  int
	BeginThreshold  float32

	OnUpdate func(dx, dy, totalDistance float32)
	OnEnd    func(vx, vy float32)

	recognizing   bool
	primary       int
	lastPos       map[int]f32.Point
	cumulative    f32.Point
	totalDistance float32
	window        []panSample
}

// NewPan attaches a Pan recognizer to actor on stage. Defaults:
// MinTouchPoints=1, MaxTouchPoints=1, Axis=Both, BeginThreshold=16px.
func NewPan(ctx context.Context, name string, actor scene.Actor, stage scene.Stage, arbiter gesture.Arbiter) *Pan {
	p := &Pan{
		ctx:            ctx,
		MinTouchPoints: 1,
		MaxTouchPoints: 1,
		BeginThreshold: 16,
		primary:        -1,
		lastPos:        make(map[int]f32.Point),
	}
	p.Gesture = gesture.New(name, actor, stage, p, arbiter)
	return p
}

func (p *Pan) PointsBegan(pts []point.Public) {
	for _, pt := range pts {
		p.lastPos[pt.Index] = pt.Begin
		if p.primary == -1 || pt.Index < p.primary {
			p.primary = pt.Index
		}
		if len(p.window) == 0 {
			p.window = append(p.window, panSample{t: pt.EventTime})
		}
	}
	if p.Registry().Len() > p.MaxTouchPoints {
		p.Gesture.RequestCancel(p.ctx)
	}
}

func (p *Pan) PointsMoved(pts []point.Public) {
	dxs := make([]float32, 0, len(pts))
	dys := make([]float32, 0, len(pts))
	var t time.Duration

	for _, pt := range pts {
		last, ok := p.lastPos[pt.Index]
		if !ok {
			last = pt.Latest
		}
		dxs = append(dxs, pt.Latest.X-last.X)
		dys = append(dys, pt.Latest.Y-last.Y)
		p.lastPos[pt.Index] = pt.Latest
		t = pt.EventTime
	}

	dx, dy := reduceAxis(dxs), reduceAxis(dys)
	p.cumulative.X += dx
	p.cumulative.Y += dy

	if !p.recognizing {
		if p.crossedThreshold() && p.inRange() {
			p.recognizing = true
			p.Gesture.RequestRecognizing(p.ctx)
		} else {
			return
		}
	}

	cdx, cdy := p.constrain(dx, dy)
	p.totalDistance += float32(math.Hypot(float64(cdx), float64(cdy)))
	if p.OnUpdate != nil {
		p.OnUpdate(cdx, cdy, p.totalDistance)
	}
	p.appendSample(t, cdx, cdy)
}

func (p *Pan) PointsEnded(pts []point.Public) {
	for _, pt := range pts {
		delete(p.lastPos, pt.Index)
	}
	remaining := p.Registry().Len() - len(pts)

	if remaining < p.MinTouchPoints {
		if p.recognizing {
			vx, vy := p.endVelocity()
			p.Gesture.RequestCompleted(p.ctx)
			if p.OnEnd != nil {
				p.OnEnd(vx, vy)
			}
		}
		return
	}

	endedPrimary := false
	for _, pt := range pts {
		if pt.Index == p.primary {
			endedPrimary = true
		}
	}
	if endedPrimary {
		p.primary = -1
		for idx := range p.lastPos {
			if p.primary == -1 || idx < p.primary {
				p.primary = idx
			}
		}
	}
}

func (p *Pan) PointsCancelled(pts []point.Public) {
	p.Gesture.RequestCancel(p.ctx)
}

func (p *Pan) StateChanged(old, new gesture.State) {
	if new == gesture.Cancelled || new == gesture.Completed {
		p.recognizing = false
		p.primary = -1
		p.lastPos = make(map[int]f32.Point)
		p.cumulative = f32.Point{}
		p.totalDistance = 0
		p.window = nil
	}
}

func (p *Pan) crossedThreshold() bool {
	cx, cy := p.constrain(p.cumulative.X, p.cumulative.Y)
	return math.Hypot(float64(cx), float64(cy)) >= float64(p.BeginThreshold)
}

func (p *Pan) inRange() bool {
	n := p.Registry().Len()
	return n >= p.MinTouchPoints && n <= p.MaxTouchPoints
}

func (p *Pan) constrain(dx, dy float32) (float32, float32) {
	switch p.Axis {
	case AxisX:
		return dx, 0
	case AxisY:
		return 0, dy
	default:
		return dx, dy
	}
}

func (p *Pan) appendSample(t time.Duration, dx, dy float32) {
	if len(p.window) > 0 && t-p.window[len(p.window)-1].t < panMinStoreInterval {
		last := &p.window[len(p.window)-1]
		last.dx += dx
		last.dy += dy
		return
	}
	p.window = append(p.window, panSample{t: t, dx: dx, dy: dy})

	cutoff := t - panWindowDuration
	i := 0
	for i < len(p.window) && p.window[i].t < cutoff {
		i++
	}
	if i > 0 {
		p.window = append(p.window[:0], p.window[i:]...)
	}
}

func (p *Pan) endVelocity() (float32, float32) {
	if len(p.window) < 2 {
		return 0, 0
	}
	first, last := p.window[0], p.window[len(p.window)-1]
	elapsed := last.t - first.t
	if elapsed <= 0 {
		return 0, 0
	}
	var sx, sy float32
	for _, s := range p.window {
		sx += s.dx
		sy += s.dy
	}
	ms := float32(elapsed.Milliseconds())
	if ms == 0 {
		ms = float32(elapsed) / float32(time.Millisecond)
	}
	return sx / ms, sy / ms
}

// reduceAxis sums the most-positive and most-negative per-point delta
// on the axis, so convergent/divergent multi-point gestures don't
// double-count.
func reduceAxis(deltas []float32) float32 {
	var pos, neg float32
	for _, d := range deltas {
		pos = utils.Max(pos, d)
		neg = utils.Min(neg, d)
	}
	return pos + neg
}
