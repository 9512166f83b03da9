// Package gesturecore is a multi-touch gesture recognition core for an
// interactive scene-graph compositor. See doc.go for the package-level
// overview; this file wires the individual components (settings,
// timer, arbitration, dispatch) into the single aggregate embedders
// construct, the way the teacher's process.go wires its Processor
// struct out of smaller collaborators.
package gesturecore

import (
	"context"

	"github.com/esimov/gesturecore/arbitration"
	"github.com/esimov/gesturecore/dispatch"
	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/settings"
	"github.com/esimov/gesturecore/timer"
)

// Core is the top-level aggregate: a settings store, a timer service,
// the arbitration engine and the event dispatcher for one stage.
// Recognizers are constructed separately (they need the arbiter and
// timer service directly) and attached through Attach.
type Core struct {
	Settings settings.Store
	Clock    timer.Service

	arbiter *arbitration.Engine
	disp    *dispatch.Dispatcher
}

// New wires a Core against stage, using store for settings lookups and
// clock for timer scheduling. ctx is used for every internally-driven
// state transition (arbitration cascades, pending-dependency
// promotion); pass context.Background() unless the embedder threads a
// request-scoped context through its main loop.
func New(ctx context.Context, stage scene.Stage, store settings.Store, clock timer.Service) *Core {
	if ctx == nil {
		ctx = context.Background()
	}
	arbiter := arbitration.New(ctx)
	return &Core{
		Settings: store,
		Clock:    clock,
		arbiter:  arbiter,
		disp:     dispatch.New(stage, arbiter),
	}
}

// Arbiter returns the gesture.Arbiter every recognizer constructor
// needs.
func (c *Core) Arbiter() gesture.Arbiter { return c.arbiter }

// Dispatcher returns the event dispatcher events are delivered through.
func (c *Core) Dispatcher() *dispatch.Dispatcher { return c.disp }

// Attach registers g as a candidate recognizer for actor.
func (c *Core) Attach(actor scene.Actor, g *gesture.Gesture) {
	c.disp.Attach(actor, g)
}

// Detach removes g from actor, cancelling any public points first.
func (c *Core) Detach(ctx context.Context, actor scene.Actor, g *gesture.Gesture) {
	c.disp.Detach(ctx, actor, g)
}
