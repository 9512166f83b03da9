// Package dispatch implements the event dispatcher: it turns raw
// per-actor events into the points_* callbacks on every gesture
// attached to the hit actor, in the delivery order the arbitration
// engine's relationship pairing establishes, and exposes the batch
// sequence-cancellation API external sequence owners use.
package dispatch

import (
	"context"
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"

	"github.com/esimov/gesturecore/arbitration"
	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/scene"
)

// EventType classifies a raw event.
type EventType uint8

const (
	Other EventType = iota
	ButtonPress
	Motion
	ButtonRelease
	TouchBegin
	TouchUpdate
	TouchEnd
	TouchCancel
	Enter
	Leave
)

// Event is the dispatcher's input: a single classified device event
// targeting one actor.
type Event struct {
	Type      EventType
	Actor     scene.Actor
	Key       scene.SequenceKey
	Device    point.DeviceType
	Position  f32.Point
	Time      time.Duration
	Modifiers key.Modifiers
	Synthetic bool

	// Crossing carries the old/new actor pair for Enter/Leave events.
	Crossing scene.Crossing
}

// Dispatcher routes classified events to every gesture attached to the
// target actor.
type Dispatcher struct {
	stage   scene.Stage
	arbiter *arbitration.Engine

	byActor map[scene.Actor][]*gesture.Gesture
}

// New returns a Dispatcher delivering onto stage, arbitrated by
// arbiter.
func New(stage scene.Stage, arbiter *arbitration.Engine) *Dispatcher {
	return &Dispatcher{
		stage:   stage,
		arbiter: arbiter,
		byActor: make(map[scene.Actor][]*gesture.Gesture),
	}
}

// Attach registers g as a candidate recognizer for events delivered to
// actor.
func (d *Dispatcher) Attach(actor scene.Actor, g *gesture.Gesture) {
	d.byActor[actor] = append(d.byActor[actor], g)
}

// Detach removes g from actor's candidate list. If g still holds
// public points they are cancelled first.
func (d *Dispatcher) Detach(ctx context.Context, actor scene.Actor, g *gesture.Gesture) {
	if len(g.Points()) > 0 {
		d.cancelGesture(ctx, g)
	}
	list := d.byActor[actor]
	for i, cand := range list {
		if cand == g {
			d.byActor[actor] = append(list[:i], list[i+1:]...)
			break
		}
	}
}

// Dispatch delivers one classified event to every candidate gesture
// attached to ev.Actor, applying the device-type/button-depth filters
// and delivery ordering below.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if ev.Synthetic {
		return
	}

	switch ev.Type {
	case Enter, Leave:
		d.dispatchCrossing(ev)
		return
	case Other:
		return
	}

	candidates := orderGestures(d.arbiter, d.byActor[ev.Actor])

	switch ev.Type {
	case ButtonPress, TouchBegin:
		d.dispatchBegin(ctx, ev, candidates)
	case Motion, TouchUpdate:
		d.dispatchUpdate(ev, candidates)
	case ButtonRelease, TouchEnd:
		d.dispatchEnd(ctx, ev, candidates)
	case TouchCancel:
		d.dispatchCancel(ctx, ev, candidates)
	}
}

func (d *Dispatcher) dispatchBegin(ctx context.Context, ev Event, candidates []*gesture.Gesture) {
	var joined []*gesture.Gesture

	for _, g := range candidates {
		if g.State() == gesture.Cancelled {
			continue
		}
		if g.AllowedDeviceTypes()&ev.Device == 0 {
			continue
		}
		reg := g.Registry()
		if reg.Has(ev.Key) {
			// Chorded press/begin on an already-tracked point: absorb
			// via the button-depth counter, never a new point.
			reg.IncDepth(ev.Key)
			continue
		}
		if reg.Len() > 0 && !reg.SameSourceDevice(ev.Device) {
			continue
		}
		if !g.BeginEpisode(ctx) {
			continue
		}
		pub := reg.Begin(ev.Key, ev.Device, ev.Position, ev.Time, ev.Modifiers)
		g.HandlePointsBegan([]point.Public{*pub})
		joined = append(joined, g)
	}

	d.pairSharers(ev.Actor, ev.Key, joined)
}

// pairSharers establishes the relationship between every gesture newly
// tracking key and every other gesture on the same actor already
// tracking it.
func (d *Dispatcher) pairSharers(actor scene.Actor, key scene.SequenceKey, joined []*gesture.Gesture) {
	if len(joined) == 0 {
		return
	}
	for _, other := range d.byActor[actor] {
		if !other.Registry().Has(key) {
			continue
		}
		for _, g := range joined {
			if g == other {
				continue
			}
			d.arbiter.Pair(g, other)
		}
	}
}

func (d *Dispatcher) dispatchUpdate(ev Event, candidates []*gesture.Gesture) {
	for _, g := range candidates {
		reg := g.Registry()
		if !reg.Has(ev.Key) {
			continue
		}
		pub := reg.Update(ev.Key, ev.Position, ev.Time, ev.Modifiers)
		g.HandlePointsMoved([]point.Public{*pub})
	}
}

func (d *Dispatcher) dispatchEnd(ctx context.Context, ev Event, candidates []*gesture.Gesture) {
	for _, g := range candidates {
		reg := g.Registry()
		if !reg.Has(ev.Key) {
			continue
		}
		if !reg.DecDepth(ev.Key) {
			continue
		}
		pub := reg.End(ev.Key, ev.Position, ev.Time, ev.Modifiers)
		g.HandlePointsEnded([]point.Public{*pub})
		reg.Remove(ev.Key)
		g.MaybeReturnToWaiting(ctx)
	}
}

func (d *Dispatcher) dispatchCancel(ctx context.Context, ev Event, candidates []*gesture.Gesture) {
	for _, g := range candidates {
		reg := g.Registry()
		pub, ok := reg.Public(ev.Key)
		if !ok {
			continue
		}
		g.HandlePointsCancelled([]point.Public{*pub})
		reg.Remove(ev.Key)
		g.MaybeReturnToWaiting(ctx)
	}
}

func (d *Dispatcher) dispatchCrossing(ev Event) {
	for _, g := range d.byActor[ev.Actor] {
		if g.Registry().Has(ev.Crossing.Key) {
			g.HandleCrossingEvent(ev.Crossing)
		}
	}
}

// CancelSequence is the batch-cancellation API: the external sequence
// router asks every gesture currently tracking key to treat it as
// cancelled.
func (d *Dispatcher) CancelSequence(ctx context.Context, key scene.SequenceKey) {
	for _, list := range d.byActor {
		for _, g := range list {
			reg := g.Registry()
			pub, ok := reg.Public(key)
			if !ok {
				continue
			}
			g.HandlePointsCancelled([]point.Public{*pub})
			reg.Remove(key)
			g.MaybeReturnToWaiting(ctx)
		}
	}
}

// CancelDevice cancels every live sequence on the given device, across
// every attached gesture.
func (d *Dispatcher) CancelDevice(ctx context.Context, device uint64) {
	seen := make(map[scene.SequenceKey]struct{})
	for _, list := range d.byActor {
		for _, g := range list {
			for _, k := range g.Registry().Keys() {
				if k.Device == device {
					seen[k] = struct{}{}
				}
			}
		}
	}
	for k := range seen {
		d.CancelSequence(ctx, k)
	}
}

func (d *Dispatcher) cancelGesture(ctx context.Context, g *gesture.Gesture) {
	for _, k := range g.Registry().Keys() {
		pub, ok := g.Registry().Public(k)
		if !ok {
			continue
		}
		g.HandlePointsCancelled([]point.Public{*pub})
	}
	g.Registry().Clear()
	g.ForceCancel(ctx)
}
