package stage

import (
	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/state"
)

// Stages maps tag identities to stages, remembering insertion order
type Stages struct {
	stages map[ID]*Stage
	order  []ID
}

// NewStages creates an empty set
func NewStages() *Stages {
	return &Stages{
		stages: make(map[ID]*Stage),
	}
}

// Add inserts stage under tag, replacing any existing stage with that tag
func (s *Stages) Add(tag Tag, st *Stage) {
	id := IDOf(tag)
	if _, exists := s.stages[id]; !exists {
		s.order = append(s.order, id)
	}
	s.stages[id] = st
}

// Get returns the stage for tag
func (s *Stages) Get(tag Tag) (*Stage, bool) {
	return s.GetByID(IDOf(tag))
}

// GetByID returns the stage for a tag identity
func (s *Stages) GetByID(id ID) (*Stage, bool) {
	st, ok := s.stages[id]
	return st, ok
}

// MustGet returns the stage for tag; panics when absent
func (s *Stages) MustGet(tag Tag) *Stage {
	st, ok := s.Get(tag)
	if !ok {
		panic(core.NewError(core.KindMissingStage, tag.StageName(), "stage not registered"))
	}
	return st
}

// Contains reports whether tag has a stage
func (s *Stages) Contains(tag Tag) bool {
	_, ok := s.stages[IDOf(tag)]
	return ok
}

// Len returns the number of stages
func (s *Stages) Len() int {
	return len(s.stages)
}

// Names returns stage names in insertion order
func (s *Stages) Names() []string {
	names := make([]string, len(s.order))
	for i, id := range s.order {
		names[i] = s.stages[id].Name()
	}
	return names
}

// Freeze freezes every stage
func (s *Stages) Freeze() {
	for _, st := range s.stages {
		st.Freeze()
	}
}

// RunTags runs the stages for tags in order; a missing stage panics
func (s *Stages) RunTags(st *state.State, tags ...Tag) RunReport {
	var report RunReport
	for _, tag := range tags {
		report.Add(s.MustGet(tag).Run(st))
	}
	return report
}
