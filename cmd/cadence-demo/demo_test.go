package main

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/clock"
	"github.com/lixenwraith/cadence/config"
	"github.com/lixenwraith/cadence/plugin/audio"
	"github.com/lixenwraith/cadence/plugin/defaults"
	"github.com/lixenwraith/cadence/plugin/loader"
	"github.com/lixenwraith/cadence/status"
)

func newDemoApp(t *testing.T, mock *clock.ManualTimeProvider) *app.App {
	t.Helper()
	cfg := config.Config{TickRate: 100, MaxCatchup: 2, CatchupPolicy: "whole"}

	a := app.New()
	a.AddPlugins(
		defaults.Plugins{
			Clock:      defaults.ClockPlugin{Source: mock},
			Schedulers: defaults.SchedulersPlugin{FixedData: cfg.FixedData},
		},
		loader.Plugin{FS: fstest.MapFS{bannerFile: {Data: []byte("  hello demo \n")}}},
		audio.Plugin{Mute: true},
		DemoPlugin{Banner: bannerFile},
	)
	return a
}

func TestDemoBallBouncesHeadless(t *testing.T) {
	mock := clock.NewManualTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	a := newDemoApp(t, mock)
	app.InsertResource(a, Arena{Width: 10, Height: 5})

	for i := 0; i < 200; i++ {
		mock.Advance(10 * time.Millisecond)
		a.Update()
	}

	b := app.Resource[Ball](a)
	if b.Bounces == 0 {
		t.Errorf("ball never bounced: %+v", *b)
	}
	if b.X < 0 || b.X > 9 || b.Y < 1 || b.Y > 4 {
		t.Errorf("ball escaped arena: %+v", *b)
	}
}

func TestDemoLoadsBanner(t *testing.T) {
	mock := clock.NewManualTimeProvider(time.Now())
	a := newDemoApp(t, mock)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		a.Update()
		if app.Resource[Banner](a).Text == "hello demo" {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Errorf("banner = %q", app.Resource[Banner](a).Text)
}

func TestBuildHeadlessRunsToFrameLimit(t *testing.T) {
	t.Setenv("CADENCE_ASSET_ROOT", t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Mute = true
	cfg.MaxFrames = 5
	cfg.TickRate = 1
	cfg.FrameInterval = time.Second

	before := time.Now()
	a := build(t.Context(), cfg, true)
	code, err := a.Run()
	if err != nil || code != 0 {
		t.Errorf("Run = %d, %v", code, err)
	}
	if got := a.Status().Count(status.AppUpdates); got != 5 {
		t.Errorf("updates = %d, want 5", got)
	}
	// One simulated second per frame; the first frame has no lag yet
	if got := a.Status().Count(status.FixedTicks); got != 4 {
		t.Errorf("fixed ticks = %d, want 4", got)
	}
	if elapsed := time.Since(before); elapsed > 2*time.Second {
		t.Errorf("bounded headless run took %v of wall time", elapsed)
	}
}
