// Package defaults provides the plugins every tick-driven app starts from:
// the twelve default stages, the clock, and the main/fixed/render schedulers.
package defaults

import (
	"time"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/clock"
	"github.com/lixenwraith/cadence/scheduler"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/system"
)

// StagesPlugin registers an empty stage for every default tag
type StagesPlugin struct{}

func (StagesPlugin) Build(a *app.App) {
	for _, tag := range stage.DefaultTags() {
		a.AddStage(tag)
	}
}

// ClockPlugin inserts the Clock local resource and MonotonicTime, refreshed in First
type ClockPlugin struct {
	Source   clock.TimeProvider // nil uses the system clock
	Pausable bool               // wrap Source in a PausableClock
}

func (p ClockPlugin) Build(a *app.App) {
	src := p.Source
	if src == nil {
		src = clock.NewMonotonicTimeProvider()
	}
	if p.Pausable {
		src = clock.NewPausableClock(src)
	}

	app.InsertLocalResource(a, clock.Clock{Source: src})
	app.InsertResource(a, clock.MonotonicTime{Time: src.Now()})
	a.AddSystem(stage.First{}, system.Named("update_time", system.Func2(UpdateTime)))
}

// UpdateTime samples the clock once per tick
func UpdateTime(c system.LoRe[clock.Clock], t system.ReM[clock.MonotonicTime]) {
	t.Get().Time = c.Get().Now()
}

// SchedulersPlugin adds the main, fixed and render schedulers and the message swap
// Requires MonotonicTime, so it builds after ClockPlugin
type SchedulersPlugin struct {
	// FixedData builds the fixed scheduler state; nil uses 60 ticks per second
	FixedData func(now time.Time) scheduler.FixedData
}

func (p SchedulersPlugin) Build(a *app.App) {
	now := app.Resource[clock.MonotonicTime](a).Time

	data := scheduler.NewFixedData(now, scheduler.DefaultTicksPerSecond)
	if p.FixedData != nil {
		data = p.FixedData(now)
	}
	app.InsertResource(a, data)

	a.AddScheduler(scheduler.Main{})
	a.AddScheduler(scheduler.Fixed{})
	a.AddScheduler(scheduler.Render{})

	a.AddSystem(stage.First{}, system.Named("swap_messages", system.Func1(SwapMessages)))
}

// SwapMessages advances every message queue by one generation
func SwapMessages(all system.MsgAll) {
	all.SwapAll()
}

// Plugins is the default group: stages, clock, then schedulers
type Plugins struct {
	Clock      ClockPlugin
	Schedulers SchedulersPlugin
}

func (p Plugins) Build(a *app.App) {
	a.AddPlugins(StagesPlugin{}, p.Clock, p.Schedulers)
}
