// Package state aggregates the storages mutated during a tick.
package state

import (
	"github.com/lixenwraith/cadence/message"
	"github.com/lixenwraith/cadence/resource"
)

// State is the single mutable world passed through schedulers, stages and systems
// It is owned by exactly one App and is never shared across apps
type State struct {
	resources      *resource.Storage
	localResources *resource.LocalStorage
	messages       *message.Storage
}

// New creates a state with empty storages
func New() *State {
	return &State{
		resources:      resource.NewStorage(),
		localResources: resource.NewLocalStorage(),
		messages:       message.NewStorage(),
	}
}

// Resources returns the shared resource namespace
func (s *State) Resources() *resource.Storage {
	return s.resources
}

// LocalResources returns the thread-affine resource namespace
func (s *State) LocalResources() *resource.LocalStorage {
	return s.localResources
}

// Messages returns the message queues
func (s *State) Messages() *message.Storage {
	return s.messages
}

// Teardown drops every resource and local resource
// Message queues are kept so late senders still hit a registered type
func (s *State) Teardown() {
	s.resources.Clear()
	s.localResources.Clear()
}
