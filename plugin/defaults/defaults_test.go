package defaults

import (
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/clock"
	"github.com/lixenwraith/cadence/scheduler"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/system"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type ping struct {
	N int
}

type seen struct {
	Current  []int
	Previous []int
	Fixed    int
}

func newApp(mock *clock.ManualTimeProvider) *app.App {
	a := app.New()
	a.AddPlugins(Plugins{
		Clock: ClockPlugin{Source: mock},
		Schedulers: SchedulersPlugin{FixedData: func(now time.Time) scheduler.FixedData {
			d := scheduler.NewFixedData(now, 100)
			d.Policy = scheduler.PolicyWholeSteps
			return d
		}},
	})
	return a
}

func TestDefaultStagesRegistered(t *testing.T) {
	a := newApp(clock.NewManualTimeProvider(epoch))

	for _, tag := range stage.DefaultTags() {
		if !a.Stages().Contains(tag) {
			t.Errorf("stage %s missing", tag.StageName())
		}
	}
	if got := a.Stages().MustGet(stage.First{}).Systems(); !slices.Equal(got, []string{"update_time", "swap_messages"}) {
		t.Errorf("First systems = %v", got)
	}
}

func TestClockUpdatesMonotonicTime(t *testing.T) {
	mock := clock.NewManualTimeProvider(epoch)
	a := newApp(mock)

	mock.Advance(250 * time.Millisecond)
	a.Update()

	if got := app.Resource[clock.MonotonicTime](a).Time; !got.Equal(epoch.Add(250 * time.Millisecond)) {
		t.Errorf("MonotonicTime = %v", got)
	}
}

func TestPausableClockPlugin(t *testing.T) {
	mock := clock.NewManualTimeProvider(epoch)
	a := app.New()
	a.AddPlugins(Plugins{Clock: ClockPlugin{Source: mock, Pausable: true}})

	pc, ok := app.LocalResource[clock.Clock](a).Pausable()
	if !ok {
		t.Fatal("Clock source is not pausable")
	}
	pc.Pause()
	mock.Advance(time.Second)
	a.Update()

	if got := app.Resource[clock.MonotonicTime](a).Time; !got.Equal(epoch) {
		t.Errorf("MonotonicTime advanced while paused: %v", got)
	}
}

func TestMessagesSwapOncePerTick(t *testing.T) {
	mock := clock.NewManualTimeProvider(epoch)
	a := newApp(mock)
	app.CreateMessageType[ping](a)
	app.InsertResource(a, seen{})

	a.AddSystem(stage.Update{}, system.Func2(func(m system.Msg[ping], s system.ReM[seen]) {
		for p := range m.IterPrevious() {
			s.Get().Previous = append(s.Get().Previous, p.N)
		}
		for p := range m.IterCurrent() {
			s.Get().Current = append(s.Get().Current, p.N)
		}
	}))

	app.Send(a, ping{N: 1})
	a.Update()
	a.Update()
	app.Send(a, ping{N: 2})
	a.Update()

	s := app.Resource[seen](a)
	if !slices.Equal(s.Previous, []int{1, 2}) {
		t.Errorf("Previous = %v, want [1 2]", s.Previous)
	}
	if len(s.Current) != 0 {
		t.Errorf("Current = %v, want empty", s.Current)
	}
}

func TestFixedRunsAtConfiguredRate(t *testing.T) {
	mock := clock.NewManualTimeProvider(epoch)
	a := newApp(mock)
	app.InsertResource(a, seen{})
	a.AddSystem(stage.FixedUpdate{}, system.Func1(func(s system.ReM[seen]) { s.Get().Fixed++ }))

	for i := 0; i < 50; i++ {
		mock.Advance(10 * time.Millisecond)
		a.Update()
	}

	if got := app.Resource[seen](a).Fixed; got != 50 {
		t.Errorf("fixed ticks = %d, want 50", got)
	}
	if got := app.Resource[scheduler.FixedData](a).TicksPerSecond(); got != 100 {
		t.Errorf("TicksPerSecond = %d", got)
	}
}

func TestSchedulersDefaultData(t *testing.T) {
	a := app.New()
	a.AddPlugins(StagesPlugin{}, ClockPlugin{Source: clock.NewManualTimeProvider(epoch)}, SchedulersPlugin{})

	d := app.Resource[scheduler.FixedData](a)
	if d.TicksPerSecond() != scheduler.DefaultTicksPerSecond || !d.ConsumedUpTo.Equal(epoch) {
		t.Errorf("FixedData = %+v", *d)
	}
}

func TestSchedulersWithoutClockPanics(t *testing.T) {
	a := app.New()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic without MonotonicTime")
		}
	}()
	a.AddPlugins(StagesPlugin{}, SchedulersPlugin{})
}
