// Package runner drives an app with a drift-corrected frame loop.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/app"
	"github.com/lixenwraith/cadence/clock"
)

// InterruptedCode is returned when the context ends the loop
const InterruptedCode = 130

// Options tunes the frame loop
type Options struct {
	// Interval between updates; 0 runs back to back
	Interval time.Duration
	// MaxFrames stops after this many updates; 0 is unlimited
	MaxFrames int
	// Context stops the loop when done; nil never stops
	Context context.Context
	// Time drives deadlines; nil uses the system clock
	Time clock.TimeProvider
	// Sleep waits between frames; nil advances a ManualTimeProvider Time,
	// otherwise waits on a context-aware timer
	Sleep func(ctx context.Context, d time.Duration)
}

// Loop returns a runner updating the app every Interval until ApplicationExit,
// MaxFrames or context cancellation
func Loop(opts Options) app.RunnerFunc {
	return func(a *app.App) int {
		ctx := opts.Context
		if ctx == nil {
			ctx = context.Background()
		}
		now := opts.Time
		if now == nil {
			now = clock.NewMonotonicTimeProvider()
		}
		sleep := opts.Sleep
		if sleep == nil {
			sleep = sleepContext
			if manual, ok := now.(*clock.ManualTimeProvider); ok {
				sleep = func(_ context.Context, d time.Duration) { manual.Advance(d) }
			}
		}

		deadline := now.Now()
		for frame := 0; opts.MaxFrames <= 0 || frame < opts.MaxFrames; frame++ {
			if ctx.Err() != nil {
				a.Logger().Info("runner interrupted", zap.Int("frames", frame))
				return InterruptedCode
			}

			a.UpdateContext(ctx)

			if code, ok := a.ExitRequested(); ok {
				a.Logger().Info("application exit requested", zap.Int("code", code), zap.Int("frames", frame+1))
				return code
			}

			if opts.Interval <= 0 {
				continue
			}

			// Drift correction: resync when more than two frames behind
			deadline = deadline.Add(opts.Interval)
			current := now.Now()
			if current.Sub(deadline) > opts.Interval*2 {
				deadline = current.Add(opts.Interval)
			}
			if wait := deadline.Sub(current); wait > 0 {
				sleep(ctx, wait)
			}
		}

		a.Logger().Info("frame limit reached", zap.Int("frames", opts.MaxFrames))
		return 0
	}
}

// Plugin installs Loop as the app runner
type Plugin struct {
	Options Options
}

func (p Plugin) Build(a *app.App) {
	a.SetRunner(Loop(p.Options))
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
