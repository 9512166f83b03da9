package recognizers

import (
	"context"
	"time"

	"github.com/esimov/gesturecore/arbitration"
	"github.com/esimov/gesturecore/scene"
	"github.com/esimov/gesturecore/settings"
	"github.com/esimov/gesturecore/timer"
)

// fakeClock is a deterministic timer.Service for tests: ScheduleOnce
// never fires on its own wall-clock timer, it only records the
// callback so the test can invoke Fire explicitly.
type fakeClock struct {
	next      timer.Token
	pending   map[timer.Token]func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{pending: make(map[timer.Token]func())}
}

func (c *fakeClock) ScheduleOnce(delay time.Duration, callback func()) timer.Token {
	c.next++
	c.pending[c.next] = callback
	return c.next
}

func (c *fakeClock) Cancel(t timer.Token) {
	delete(c.pending, t)
}

// Fire invokes the callback scheduled under t, if still pending, as a
// real timer.Service would once its delay elapses.
func (c *fakeClock) Fire(t timer.Token) {
	cb, ok := c.pending[t]
	if !ok {
		return
	}
	delete(c.pending, t)
	cb()
}

// latest returns the most recently scheduled token, whether or not it is
// still pending, or 0 if nothing has been scheduled.
func (c *fakeClock) latest() timer.Token { return c.next }

type fakeActor struct{ name string }

func (a *fakeActor) Parent() scene.Actor { return nil }
func (a *fakeActor) Name() string        { return a.name }

type fakeStage struct{}

func (fakeStage) Claim(k scene.SequenceKey, owner any)   {}
func (fakeStage) Release(k scene.SequenceKey, owner any) {}
func (fakeStage) EmitCrossing(c scene.Crossing)          {}

// newArbiter returns a real, otherwise-empty arbitration engine: with no
// other gesture ever attached, every start-eligibility and
// pending-watch check it runs is trivially permissive, which is exactly
// what an isolated single-recognizer test needs.
func newArbiter() *arbitration.Engine { return arbitration.New(context.Background()) }

func newStore() *settings.Defaults { return settings.NewDefaults() }
