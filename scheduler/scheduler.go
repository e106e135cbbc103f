// Package scheduler decides which stages run on each external tick.
package scheduler

import (
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/state"
)

// Scheduler is a stateless policy over the stages
// State carried between ticks lives in resources
type Scheduler interface {
	Name() string
	Schedule(stages *stage.Stages, st *state.State)
}

// Main runs First, PreUpdate, Update and PostUpdate once per tick
type Main struct{}

func (Main) Name() string { return "main" }

func (Main) Schedule(stages *stage.Stages, st *state.State) {
	stages.RunTags(st, stage.MainTags...)
}

// Render runs the four render stages once per tick
type Render struct{}

func (Render) Name() string { return "render" }

func (Render) Schedule(stages *stage.Stages, st *state.State) {
	stages.RunTags(st, stage.RenderTags...)
}
