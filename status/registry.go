// Package status holds runtime counters shared between the app, its stages and its plugins.
// The registry lives in the state as a resource; absent registry means no accounting.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Counter names written by the runtime
const (
	AppUpdates      = "app.updates"
	AppWaitingPolls = "app.waiting_polls"
	AppPhase        = "app.phase"

	SystemRan       = "system.ran"
	SystemSkipped   = "system.skipped"
	SystemConflicts = "system.conflicts"

	FixedTicks   = "scheduler.fixed.ticks"
	FixedCapped  = "scheduler.fixed.capped"
	FixedDropped = "scheduler.fixed.dropped"
	FixedLag     = "scheduler.fixed.lag_ms"

	LoaderCompleted = "loader.completed"
	LoaderFailed    = "loader.failed"

	AudioPlayed = "audio.played"
)

// Registry groups the metric maps by cell type
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
	Flags    *MetricMap[atomic.Bool]
	Labels   *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
		Flags:    NewMetricMap[atomic.Bool](),
		Labels:   NewMetricMap[Label](),
	}
}

// Add increments counter name by delta; nil registry is a no-op
func (r *Registry) Add(name string, delta int64) {
	if r == nil || delta == 0 {
		return
	}
	r.Counters.Get(name).Add(delta)
}

// Count reads counter name
func (r *Registry) Count(name string) int64 {
	if r == nil {
		return 0
	}
	return r.Counters.Get(name).Load()
}

// TotalCount returns the number of cells across all maps
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count() + r.Flags.Count() + r.Labels.Count()
}

// Snapshot copies every cell into a flat map keyed by name
// Gauges also report their peak under name + ".peak"
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount()+r.Gauges.Count())
	for name, c := range r.Counters.All() {
		out[name] = c.Load()
	}
	for name, g := range r.Gauges.All() {
		out[name] = g.Get()
		out[name+".peak"] = g.Peak()
	}
	for name, f := range r.Flags.All() {
		out[name] = f.Load()
	}
	for name, l := range r.Labels.All() {
		out[name] = l.Load()
	}
	return out
}

// String renders counters one per line, for the demo's exit summary
func (r *Registry) String() string {
	var b strings.Builder
	for name, c := range r.Counters.All() {
		fmt.Fprintf(&b, "%s=%d\n", name, c.Load())
	}
	for name, g := range r.Gauges.All() {
		fmt.Fprintf(&b, "%s=%.3f peak=%.3f\n", name, g.Get(), g.Peak())
	}
	for name, l := range r.Labels.All() {
		fmt.Fprintf(&b, "%s=%s\n", name, l.Load())
	}
	return b.String()
}
