/*
Package gesturecore is a multi-touch gesture recognition core for an
interactive scene-graph compositor. Pointers, touch sequences, tablet
styli and touchpads deliver low-level input points through a Dispatcher;
the core turns sequences of such points into higher-level, named
gestures (click, long-press, pan, and room for rotate/zoom) and
arbitrates among the several gesture recognizers that are simultaneously
plausible for the same points.

The scene-graph actor tree, hit-testing, event-routing pipeline, input
device enumeration and the main-loop/timer backend are external
collaborators consumed through the narrow interfaces in package scene,
settings and timer; gesturecore never owns them.

A minimal integration looks like:

	ctx := context.Background()
	core := gesturecore.New(ctx, myStage, settings.NewDefaults(), timer.NewService())

	click := recognizers.NewClick(ctx, "click", myActor, myStage, core.Arbiter(), core.Clock, core.Settings)
	pan := recognizers.NewPan(ctx, "pan", myActor, myStage, core.Arbiter())

	core.Attach(myActor, click.Gesture)
	core.Attach(myActor, pan.Gesture)

	core.Dispatcher().Dispatch(ctx, dispatch.Event{
		Type: dispatch.ButtonPress, Actor: myActor, Key: seqKey,
		Device: point.Pointer,
	})

See the package-level docs of gesture, arbitration, dispatch, grab,
point, recognizers, settings and timer for the component breakdown.
*/
package gesturecore
