package scheduler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/state"
)

const tracerName = "github.com/lixenwraith/cadence/scheduler"

// Runner invokes schedulers in insertion order
type Runner struct {
	schedulers []Scheduler
	tracer     trace.Tracer
}

// Option configures a Runner
type Option func(*Runner)

// WithTracer replaces the global tracer
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		r.tracer = t
	}
}

// NewRunner creates an empty runner traced by the global provider
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends a scheduler
func (r *Runner) Add(s Scheduler) {
	r.schedulers = append(r.schedulers, s)
}

// Len returns the number of schedulers
func (r *Runner) Len() int {
	return len(r.schedulers)
}

// Names returns scheduler names in run order
func (r *Runner) Names() []string {
	names := make([]string, len(r.schedulers))
	for i, s := range r.schedulers {
		names[i] = s.Name()
	}
	return names
}

// Run invokes every scheduler once, each inside its own span
func (r *Runner) Run(ctx context.Context, stages *stage.Stages, st *state.State) {
	ctx, span := r.tracer.Start(ctx, "cadence.tick",
		trace.WithAttributes(attribute.Int("cadence.schedulers", len(r.schedulers))))
	defer span.End()

	for _, s := range r.schedulers {
		_, child := r.tracer.Start(ctx, "cadence.schedule",
			trace.WithAttributes(attribute.String("cadence.scheduler", s.Name())))
		s.Schedule(stages, st)
		child.End()
	}
}
