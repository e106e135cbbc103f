package app

import (
	"iter"

	"go.uber.org/zap"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/message"
	"github.com/lixenwraith/cadence/resource"
)

// InsertResource stores value as the shared instance of T
func InsertResource[T any](a *App, value T) {
	a.logger.Debug("inserting resource", zap.Stringer("type", resource.TypeKey[T]()))
	resource.Insert(a.state.Resources(), value)
}

// InsertLocalResource stores value as the local instance of T
func InsertLocalResource[T resource.LocalResource](a *App, value T) {
	a.logger.Debug("inserting local resource", zap.Stringer("type", resource.TypeKey[T]()))
	resource.InsertLocal(a.state.LocalResources(), value)
}

// Resource returns T; panics when absent
func Resource[T any](a *App) *T {
	return resource.Fetch[T](a.state.Resources())
}

// ResourceMut is Resource; Go pointers already allow mutation
func ResourceMut[T any](a *App) *T {
	return resource.Fetch[T](a.state.Resources())
}

// GetResource returns T if present
func GetResource[T any](a *App) (*T, bool) {
	return resource.Get[T](a.state.Resources())
}

// HasResource reports whether T is present
func HasResource[T any](a *App) bool {
	return resource.Contains[T](a.state.Resources())
}

// TakeResource removes and returns T; panics when absent
func TakeResource[T any](a *App) T {
	v, ok := resource.Remove[T](a.state.Resources())
	if !ok {
		panic(core.NewError(core.KindMissingResource, resource.TypeKey[T]().String(), "cannot take absent resource"))
	}
	return v
}

// LocalResource returns local T; panics when absent
func LocalResource[T resource.LocalResource](a *App) *T {
	return resource.FetchLocal[T](a.state.LocalResources())
}

// GetLocalResource returns local T if present
func GetLocalResource[T resource.LocalResource](a *App) (*T, bool) {
	return resource.GetLocal[T](a.state.LocalResources())
}

// CreateMessageType registers the queue for T
func CreateMessageType[T any](a *App) {
	a.logger.Debug("creating message queue", zap.Stringer("type", message.TypeKey[T]()))
	message.Register[T](a.state.Messages())
}

// Send appends msg to the current generation of T; panics when T is unregistered
func Send[T any](a *App, msg T) message.ID[T] {
	return message.Send(a.state.Messages(), msg)
}

// GetMessages returns the queue for T if registered
func GetMessages[T any](a *App) (*message.Messages[T], bool) {
	return message.Get[T](a.state.Messages())
}

// IterCurrent yields this tick's messages of T; panics when T is unregistered
func IterCurrent[T any](a *App) iter.Seq[T] {
	return message.Fetch[T](a.state.Messages()).IterCurrent()
}

// IterPrevious yields last tick's messages of T; panics when T is unregistered
func IterPrevious[T any](a *App) iter.Seq[T] {
	return message.Fetch[T](a.state.Messages()).IterPrevious()
}
