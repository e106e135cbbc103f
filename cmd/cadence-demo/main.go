package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/clock"
	"github.com/lixenwraith/cadence/config"
	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/plugin/audio"
	"github.com/lixenwraith/cadence/plugin/defaults"
	"github.com/lixenwraith/cadence/plugin/loader"
	"github.com/lixenwraith/cadence/plugin/screen"
	"github.com/lixenwraith/cadence/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\ncadence-demo crashed: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()
	core.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	headless := cfg.Headless || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		logger.Info("running headless", zap.Bool("forced", cfg.Headless))
	}

	a := build(ctx, cfg, headless)

	code, err := a.Run()
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return 1
	}
	if headless {
		fmt.Print(a.Status().String())
	}
	return code
}

// build assembles the demo app; the screen plugin is only added with a terminal
// A bounded headless run steps a manual clock instead of waiting on wall time
func build(ctx context.Context, cfg config.Config, headless bool) *app.App {
	a := app.New(app.WithLogger(core.Logger()))

	var source clock.TimeProvider
	if headless && cfg.MaxFrames > 0 {
		source = clock.NewManualTimeProvider(time.Now())
	}

	audioPlugin := audio.Plugin{Mute: cfg.Mute}
	if !cfg.Mute {
		audioPlugin.Speaker = speaker.Init
	}

	a.AddPlugins(
		defaults.Plugins{
			Clock:      defaults.ClockPlugin{Source: source},
			Schedulers: defaults.SchedulersPlugin{FixedData: cfg.FixedData},
		},
		loader.Plugin{FS: os.DirFS(cfg.AssetRoot)},
		audioPlugin,
	)
	if !headless {
		a.AddPlugins(screen.New(nil))
	}
	a.AddPlugins(
		DemoPlugin{Banner: bannerFile},
		runner.Plugin{Options: runner.Options{
			Interval:  cfg.FrameInterval,
			MaxFrames: cfg.MaxFrames,
			Context:   ctx,
			Time:      source,
		}},
	)
	return a
}
