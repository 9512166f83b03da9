// Command gesturedemo wires the gesturecore stack against a synthetic
// event feed and prints the recognized gesture stream, the way
// cmd/caire drove the image pipeline from flags against a file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"gioui.org/f32"

	"github.com/esimov/gesturecore"
	"github.com/esimov/gesturecore/dispatch"
	"github.com/esimov/gesturecore/gesture"
	"github.com/esimov/gesturecore/point"
	"github.com/esimov/gesturecore/recognizers"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/settings"
	"github.com/esimov/gesturecore/timer"
	"github.com/esimov/gesturecore/utils"
)

type demoActor struct {
	name   string
	parent scene.Actor
}

func (a *demoActor) Parent() scene.Actor { return a.parent }
func (a *demoActor) Name() string        { return a.name }

type demoStage struct{}

func (demoStage) Claim(key scene.SequenceKey, owner any) {
	log.Println(utils.DecorateText(fmt.Sprintf("claim %v -> %v", key, owner), utils.StatusMessage))
}

func (demoStage) Release(key scene.SequenceKey, owner any) {
	log.Println(utils.DecorateText(fmt.Sprintf("release %v -> %v", key, owner), utils.StatusMessage))
}

func (demoStage) EmitCrossing(c scene.Crossing) {
	log.Println(utils.DecorateText(fmt.Sprintf("crossing %+v", c), utils.StatusMessage))
}

func main() {
	scenario := flag.String("scenario", "click", "scenario to run: click, longpress, pan, mutual-exclusion")
	flag.Parse()

	ctx := context.Background()
	stage := demoStage{}
	actor := &demoActor{name: "root"}
	core := gesturecore.New(ctx, stage, settings.NewDefaults(), timer.NewService())

	started := time.Now()
	switch *scenario {
	case "click":
		runClick(ctx, core, stage, actor)
	case "longpress":
		runLongPress(ctx, core, stage, actor)
	case "pan":
		runPan(ctx, core, stage, actor)
	case "mutual-exclusion":
		runMutualExclusion(ctx, core, stage, actor)
	default:
		log.Fatalln(utils.DecorateText("unknown scenario: "+*scenario, utils.ErrorMessage))
	}
	log.Println(utils.DecorateText(
		fmt.Sprintf("scenario %q finished in %s", *scenario, utils.FormatTime(time.Since(started))),
		utils.StatusMessage,
	))
}

func logState(label string, g *gesture.Gesture) {
	log.Println(utils.DecorateText(
		fmt.Sprintf("%s: %s is now %s", label, g, g.State()),
		utils.SuccessMessage,
	))
}

func runClick(ctx context.Context, core *gesturecore.Core, stage scene.Stage, actor scene.Actor) {
	click := recognizers.NewClick(ctx, "click", actor, stage, core.Arbiter(), core.Clock, core.Settings)
	click.OnClicked = func(at f32.Point) {
		log.Println(utils.DecorateText(fmt.Sprintf("clicked at %v", at), utils.SuccessMessage))
	}
	core.Attach(actor, click.Gesture)

	key := scene.SequenceKey{Device: 1, Sequence: 1}
	d := core.Dispatcher()
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.ButtonPress, Actor: actor, Key: key, Device: point.Pointer, Position: f32.Pt(15, 15), Time: 0})
	logState("press", click.Gesture)
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.ButtonRelease, Actor: actor, Key: key, Device: point.Pointer, Position: f32.Pt(15, 15), Time: 20 * time.Millisecond})
	logState("release", click.Gesture)
}

func runLongPress(ctx context.Context, core *gesturecore.Core, stage scene.Stage, actor scene.Actor) {
	lp := recognizers.NewLongPress(ctx, "long-press", actor, stage, core.Arbiter(), core.Clock, core.Settings)
	core.Attach(actor, lp.Gesture)

	key := scene.SequenceKey{Device: 1, Sequence: 1}
	d := core.Dispatcher()
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.ButtonPress, Actor: actor, Key: key, Device: point.Pointer, Position: f32.Pt(10, 10), Time: 0})
	logState("press", lp.Gesture)
}

func runPan(ctx context.Context, core *gesturecore.Core, stage scene.Stage, actor scene.Actor) {
	pan := recognizers.NewPan(ctx, "pan", actor, stage, core.Arbiter())
	pan.BeginThreshold = 0
	pan.OnUpdate = func(dx, dy, total float32) {
		log.Println(utils.DecorateText(fmt.Sprintf("pan update dx=%.2f dy=%.2f total=%.2f", dx, dy, total), utils.StatusMessage))
	}
	pan.OnEnd = func(vx, vy float32) {
		log.Println(utils.DecorateText(fmt.Sprintf("pan end velocity vx=%.2f vy=%.2f", vx, vy), utils.SuccessMessage))
	}
	core.Attach(actor, pan.Gesture)

	key := scene.SequenceKey{Device: 2, Sequence: 1}
	d := core.Dispatcher()
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.TouchBegin, Actor: actor, Key: key, Device: point.Touchscreen, Position: f32.Pt(0, 0), Time: 0})
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.TouchUpdate, Actor: actor, Key: key, Device: point.Touchscreen, Position: f32.Pt(10, 0), Time: 50 * time.Millisecond})
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.TouchUpdate, Actor: actor, Key: key, Device: point.Touchscreen, Position: f32.Pt(20, 0), Time: 100 * time.Millisecond})
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.TouchEnd, Actor: actor, Key: key, Device: point.Touchscreen, Position: f32.Pt(20, 0), Time: 100 * time.Millisecond})
	logState("end", pan.Gesture)
}

func runMutualExclusion(ctx context.Context, core *gesturecore.Core, stage scene.Stage, actor scene.Actor) {
	g1 := recognizers.NewLongPress(ctx, "g1", actor, stage, core.Arbiter(), core.Clock, core.Settings)
	g2 := recognizers.NewLongPress(ctx, "g2", actor, stage, core.Arbiter(), core.Clock, core.Settings)
	core.Attach(actor, g1.Gesture)
	core.Attach(actor, g2.Gesture)

	key := scene.SequenceKey{Device: 1, Sequence: 1}
	d := core.Dispatcher()
	d.Dispatch(ctx, dispatch.Event{Type: dispatch.ButtonPress, Actor: actor, Key: key, Device: point.Pointer, Position: f32.Pt(15, 15), Time: 0})

	g1.Gesture.RequestRecognizing(ctx)
	logState("g1", g1.Gesture)
	logState("g2", g2.Gesture)

	d.Dispatch(ctx, dispatch.Event{Type: dispatch.ButtonRelease, Actor: actor, Key: key, Device: point.Pointer, Position: f32.Pt(15, 15), Time: 10 * time.Millisecond})
	logState("g1", g1.Gesture)
	logState("g2", g2.Gesture)
}
