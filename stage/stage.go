// Package stage holds named, ordered batches of systems.
package stage

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/state"
	"github.com/lixenwraith/cadence/status"
	"github.com/lixenwraith/cadence/system"
)

// RunReport summarizes one pass over a stage
type RunReport struct {
	Ran       int
	Skipped   int // missing resource or message type
	Conflicts int // aliasing params
}

// Add accumulates other into r
func (r *RunReport) Add(other RunReport) {
	r.Ran += other.Ran
	r.Skipped += other.Skipped
	r.Conflicts += other.Conflicts
}

// Stage is an ordered list of systems
type Stage struct {
	name    string
	systems []system.System
	frozen  bool
}

// New creates an empty stage
func New(name string) *Stage {
	return &Stage{name: name}
}

// Name returns the stage's display name
func (s *Stage) Name() string {
	return s.name
}

// AddSystem appends sys; systems run in insertion order
// Panics once the stage is frozen
func (s *Stage) AddSystem(sys system.System) {
	if s.frozen {
		panic(core.NewError(core.KindFrozenStage, s.name, "cannot add system %s after the app is running", sys.Name()))
	}
	s.systems = append(s.systems, sys)
}

// Len returns the number of systems
func (s *Stage) Len() int {
	return len(s.systems)
}

// Systems returns the system names in run order
func (s *Stage) Systems() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.Name()
	}
	return names
}

// Freeze rejects further AddSystem calls
func (s *Stage) Freeze() {
	s.frozen = true
}

// Frozen reports whether the stage is frozen
func (s *Stage) Frozen() bool {
	return s.frozen
}

// Run executes every system once in order
func (s *Stage) Run(st *state.State) RunReport {
	var report RunReport

	for _, sys := range s.systems {
		err := sys.Run(st)
		switch {
		case err == nil:
			report.Ran++
		case system.IsConflict(err):
			report.Conflicts++
			core.Logger().Warn("system skipped: aliasing parameters",
				zap.String("stage", s.name),
				zap.String("system", sys.Name()),
				zap.Error(err))
		case system.IsMissing(err):
			report.Skipped++
		default:
			report.Skipped++
			core.Logger().Error("system failed",
				zap.String("stage", s.name),
				zap.String("system", sys.Name()),
				zap.Error(err))
		}
	}

	if reg, ok := resource.Get[status.Registry](st.Resources()); ok {
		reg.Add(status.SystemRan, int64(report.Ran))
		reg.Add(status.SystemSkipped, int64(report.Skipped))
		reg.Add(status.SystemConflicts, int64(report.Conflicts))
	}

	return report
}
