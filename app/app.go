// Package app composes plugins into a tick-driven program.
package app

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/scheduler"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/state"
	"github.com/lixenwraith/cadence/status"
	"github.com/lixenwraith/cadence/system"
)

// Phase is the app lifecycle position
type Phase int

const (
	PhaseWaitingForPlugins Phase = iota
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingForPlugins:
		return "waiting_for_plugins"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// RunnerFunc drives the app until it decides to stop and returns the exit code
type RunnerFunc func(a *App) int

// ApplicationExit requests the runner to stop with Code
type ApplicationExit struct {
	Code int
}

// RequestExit inserts ApplicationExit; systems holding ReAll use this
func RequestExit(res *resource.Storage, code int) {
	resource.Insert(res, ApplicationExit{Code: code})
}

// App owns the state, the stages and the scheduler runner
type App struct {
	state    *state.State
	stages   *stage.Stages
	runner   *scheduler.Runner
	plugins  []Plugin
	phase    Phase
	run      RunnerFunc
	logger   *zap.Logger
	registry *status.Registry
	tracer   trace.Tracer
	shutdown []func(a *App)
}

// Option configures an App
type Option func(*App)

// WithLogger sets the app logger; defaults to core.Logger()
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTracer traces scheduler runs with t instead of the global provider
func WithTracer(t trace.Tracer) Option {
	return func(a *App) {
		a.tracer = t
	}
}

// New creates an app with empty state, no stages and no schedulers
// A status.Registry resource is inserted so the runtime can count
func New(opts ...Option) *App {
	a := &App{
		state:  state.New(),
		stages: stage.NewStages(),
		phase:  PhaseWaitingForPlugins,
		logger: core.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	var runnerOpts []scheduler.Option
	if a.tracer != nil {
		runnerOpts = append(runnerOpts, scheduler.WithTracer(a.tracer))
	}
	a.runner = scheduler.NewRunner(runnerOpts...)

	resource.Insert(a.state.Resources(), *status.NewRegistry())
	a.registry = resource.Fetch[status.Registry](a.state.Resources())
	a.registry.Labels.Get(status.AppPhase).Store(a.phase.String())

	return a
}

// State exposes the aggregate state
func (a *App) State() *state.State { return a.state }

// Stages exposes the stage set
func (a *App) Stages() *stage.Stages { return a.stages }

// Logger returns the app logger
func (a *App) Logger() *zap.Logger { return a.logger }

// Status returns the metrics registry
func (a *App) Status() *status.Registry { return a.registry }

// Phase returns the lifecycle phase
func (a *App) Phase() Phase { return a.phase }

// Resources returns the shared resource storage
func (a *App) Resources() *resource.Storage { return a.state.Resources() }

// LocalResources returns the local resource storage
func (a *App) LocalResources() *resource.LocalStorage { return a.state.LocalResources() }

// AddPlugins builds each plugin in order and remembers it for the lifecycle polls
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		p.Build(a)
		a.logger.Debug("plugin added", zap.String("plugin", pluginName(p)))
		a.plugins = append(a.plugins, p)
	}
	return a
}

// AddStage registers an empty stage for tag, replacing any existing one
func (a *App) AddStage(tag stage.Tag) *App {
	s := stage.New(tag.StageName())
	if a.phase == PhaseRunning {
		s.Freeze()
	}
	a.stages.Add(tag, s)
	return a
}

// AddSystem appends sys to the stage for tag
// Panics when the stage is missing or the app is running
func (a *App) AddSystem(tag stage.Tag, sys system.System) *App {
	a.stages.MustGet(tag).AddSystem(sys)
	return a
}

// AddScheduler appends a scheduler to the runner
func (a *App) AddScheduler(s scheduler.Scheduler) *App {
	a.runner.Add(s)
	return a
}

// SetRunner installs the function Run hands control to
func (a *App) SetRunner(fn RunnerFunc) *App {
	a.run = fn
	return a
}

// Run hands control to the runner and tears the state down when it returns
// The runner is consumed; a second Run reports a missing runner
func (a *App) Run() (int, error) {
	fn := a.run
	if fn == nil {
		return 1, core.NewError(core.KindMissingRunner, "", "no runner installed, call SetRunner or add a runner plugin")
	}
	a.run = nil

	code := fn(a)
	a.logger.Info("runner returned", zap.Int("code", code))

	// Reverse order: later plugins may depend on earlier ones
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		a.shutdown[i](a)
	}
	a.state.Teardown()
	return code, nil
}

// OnShutdown registers fn to run after the runner returns, before teardown
func (a *App) OnShutdown(fn func(a *App)) *App {
	a.shutdown = append(a.shutdown, fn)
	return a
}

// Update drives one external tick
func (a *App) Update() {
	a.UpdateContext(context.Background())
}

// UpdateContext drives one external tick, parenting scheduler spans under ctx
// While any plugin is still initializing no scheduler runs
func (a *App) UpdateContext(ctx context.Context) {
	a.registry.Add(status.AppUpdates, 1)

	if a.phase == PhaseWaitingForPlugins {
		if !a.pluginsReady() {
			return
		}
		a.startRunning()
	}

	a.runner.Run(ctx, a.stages, a.state)
}

func (a *App) pluginsReady() bool {
	ready := true
	for _, p := range a.plugins {
		init, ok := p.(Initializer)
		if !ok || init.IsInitialized(a) {
			continue
		}
		a.logger.Info("waiting for plugin", zap.String("plugin", pluginName(p)))
		a.registry.Add(status.AppWaitingPolls, 1)
		ready = false
	}
	return ready
}

func (a *App) startRunning() {
	a.logger.Debug("all plugins ready, starting post initialization")

	// Index loop: plugins added during post initialization are visited too
	for i := 0; i < len(a.plugins); i++ {
		if p, ok := a.plugins[i].(PostInitializer); ok {
			p.PostInitialization(a)
		}
	}

	a.phase = PhaseRunning
	a.stages.Freeze()
	a.registry.Labels.Get(status.AppPhase).Store(a.phase.String())
	a.logger.Info("post initialization complete, running schedulers",
		zap.Strings("schedulers", a.runner.Names()),
		zap.Strings("stages", a.stages.Names()))
}

// ExitRequested reports a pending ApplicationExit
func (a *App) ExitRequested() (int, bool) {
	exit, ok := resource.Get[ApplicationExit](a.state.Resources())
	if !ok {
		return 0, false
	}
	return exit.Code, true
}
