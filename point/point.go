// Package point implements the per-gesture registry of live input
// points. A point is a live input sequence — a held pointer button or
// a touch from begin to end — identified by a (device, sequence) key.
package point

import (
	"time"

	"gioui.org/f32"
	"gioui.org/io/key"

	"github.com/esimov/gesturecore/scene"
)

// DeviceType classifies the source device of a point.
type DeviceType uint8

const (
	Pointer DeviceType = 1 << iota
	Touchpad
	Touchscreen
	Tablet
)

// AllDeviceTypes is the default allowed device-type mask: pointer,
// touchpad, touchscreen and tablet.
const AllDeviceTypes = Pointer | Touchpad | Touchscreen | Tablet

func (d DeviceType) String() string {
	switch d {
	case Pointer:
		return "Pointer"
	case Touchpad:
		return "Touchpad"
	case Touchscreen:
		return "Touchscreen"
	case Tablet:
		return "Tablet"
	default:
		return "Unknown"
	}
}

// Snapshot is the owned copy of the latest raw event seen for a point.
// Releasing a point releases this copy.
type Snapshot struct {
	Position  f32.Point
	Time      time.Duration
	Modifiers key.Modifiers
	Buttons   uint8
}

// Public is the projection of a point visible to a recognizer
// subclass: a stable index for the episode, begin/move/end/last/latest
// coordinates, event time, and the latest raw event.
type Public struct {
	Index  int
	Device DeviceType

	Begin f32.Point
	Move  f32.Point
	End   f32.Point
	Last  f32.Point
	Latest f32.Point

	EventTime time.Duration
	Event     Snapshot
}

// point is the private, registry-owned record of one live sequence.
type point struct {
	key    scene.SequenceKey
	device DeviceType

	// buttonDepth counts nested button presses for a pointer source;
	// only the first press and the release that brings depth back to
	// zero are forwarded.
	buttonDepth int

	public Public
}

// Registry is the per-gesture set of live input points. Insertion
// order is preserved so iteration order matches arrival order.
type Registry struct {
	order   []scene.SequenceKey
	points  map[scene.SequenceKey]*point
	nextIdx int
}

// NewRegistry returns an empty point registry.
func NewRegistry() *Registry {
	return &Registry{points: make(map[scene.SequenceKey]*point)}
}

// Len reports the number of live points.
func (r *Registry) Len() int { return len(r.order) }

// Has reports whether key is currently registered.
func (r *Registry) Has(key scene.SequenceKey) bool {
	_, ok := r.points[key]
	return ok
}

// Begin registers a new point for key and returns its public
// projection. The point index is the next value of a monotonically
// increasing per-episode counter.
func (r *Registry) Begin(key scene.SequenceKey, device DeviceType, pos f32.Point, t time.Duration, mods key.Modifiers) *Public {
	idx := r.nextIdx
	r.nextIdx++

	p := &point{
		key:         key,
		device:      device,
		buttonDepth: 1,
		public: Public{
			Index:     idx,
			Device:    device,
			Begin:     pos,
			Move:      pos,
			End:       pos,
			Last:      pos,
			Latest:    pos,
			EventTime: t,
			Event: Snapshot{
				Position:  pos,
				Time:      t,
				Modifiers: mods,
			},
		},
	}
	r.points[key] = p
	r.order = append(r.order, key)
	return &p.public
}

// Update applies a motion/touch-update event to an existing point.
func (r *Registry) Update(key scene.SequenceKey, pos f32.Point, t time.Duration, mods key.Modifiers) *Public {
	p, ok := r.points[key]
	if !ok {
		return nil
	}
	p.public.Last = p.public.Move
	p.public.Move = pos
	p.public.Latest = pos
	p.public.EventTime = t
	p.public.Event = Snapshot{Position: pos, Time: t, Modifiers: mods}
	return &p.public
}

// End applies a release/touch-end coordinate and returns the final
// public snapshot without removing the point; callers remove it with
// Remove after delivering the points_ended callback.
func (r *Registry) End(key scene.SequenceKey, pos f32.Point, t time.Duration, mods key.Modifiers) *Public {
	p, ok := r.points[key]
	if !ok {
		return nil
	}
	p.public.End = pos
	p.public.Latest = pos
	p.public.EventTime = t
	p.public.Event = Snapshot{Position: pos, Time: t, Modifiers: mods}
	return &p.public
}

// Remove unregisters a point.
func (r *Registry) Remove(key scene.SequenceKey) {
	if _, ok := r.points[key]; !ok {
		return
	}
	delete(r.points, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Clear unregisters every point and resets the per-episode index
// counter. Called on the transition back to WAITING.
func (r *Registry) Clear() {
	r.points = make(map[scene.SequenceKey]*point)
	r.order = nil
	r.nextIdx = 0
}

// Device reports the device type a key was registered under.
func (r *Registry) Device(key scene.SequenceKey) (DeviceType, bool) {
	p, ok := r.points[key]
	if !ok {
		return 0, false
	}
	return p.device, true
}

// SameSourceDevice reports whether any currently registered point
// shares the given candidate device, used by the dispatcher's
// multi-touch-same-device acceptance rule.
func (r *Registry) SameSourceDevice(device DeviceType) bool {
	for _, k := range r.order {
		if p := r.points[k]; p.device == device {
			return true
		}
	}
	return false
}

// IncDepth increments the button-press depth for key and reports
// whether this press should be forwarded (depth went 0 -> 1).
func (r *Registry) IncDepth(key scene.SequenceKey) bool {
	p, ok := r.points[key]
	if !ok {
		return false
	}
	p.buttonDepth++
	return p.buttonDepth == 1
}

// DecDepth decrements the button-release depth for key and reports
// whether this release should be forwarded (depth went 1 -> 0).
func (r *Registry) DecDepth(key scene.SequenceKey) bool {
	p, ok := r.points[key]
	if !ok {
		return false
	}
	if p.buttonDepth > 0 {
		p.buttonDepth--
	}
	return p.buttonDepth == 0
}

// Public returns the current public projection for key, if registered.
func (r *Registry) Public(key scene.SequenceKey) (*Public, bool) {
	p, ok := r.points[key]
	if !ok {
		return nil, false
	}
	return &p.public, true
}

// All returns the public projections of every live point, in arrival
// order — the projection the recognizer subclass sees.
func (r *Registry) All() []Public {
	out := make([]Public, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.points[k].public)
	}
	return out
}

// Keys returns the registered (device, sequence) keys in arrival
// order.
func (r *Registry) Keys() []scene.SequenceKey {
	out := make([]scene.SequenceKey, len(r.order))
	copy(out, r.order)
	return out
}
