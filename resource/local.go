package resource

import (
	"reflect"

	"github.com/lixenwraith/cadence/core"
)

// LocalResource is satisfied only by types embedding Local
type LocalResource interface {
	localResource()
}

// Local marks a struct as a thread-affine resource; embed it by value
type Local struct{}

func (Local) localResource() {}

// LocalStorage is the thread-affine namespace
// No locking: only the goroutine driving the app touches it
type LocalStorage struct {
	resources map[reflect.Type]any
}

// NewLocalStorage creates an empty local storage
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		resources: make(map[reflect.Type]any),
	}
}

// InsertLocal stores value as the single local instance of T
func InsertLocal[T LocalResource](s *LocalStorage, value T) {
	boxed := new(T)
	*boxed = value
	s.resources[TypeKey[T]()] = boxed
}

// GetLocal returns a pointer to the stored local T
func GetLocal[T LocalResource](s *LocalStorage) (*T, bool) {
	val, ok := s.resources[TypeKey[T]()]
	if !ok {
		return nil, false
	}
	return val.(*T), true
}

// FetchLocal retrieves a mandatory local resource or panics if missing
func FetchLocal[T LocalResource](s *LocalStorage) *T {
	res, ok := GetLocal[T](s)
	if !ok {
		panic(core.NewError(core.KindMissingResource, TypeKey[T]().String(), "required local resource not found"))
	}
	return res
}

// RemoveLocal takes T out of the local storage
func RemoveLocal[T LocalResource](s *LocalStorage) (T, bool) {
	key := TypeKey[T]()
	val, ok := s.resources[key]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.resources, key)
	return *val.(*T), true
}

// ContainsLocal reports whether local T is present
func ContainsLocal[T LocalResource](s *LocalStorage) bool {
	_, ok := s.resources[TypeKey[T]()]
	return ok
}

// Len returns the number of stored local resources
func (s *LocalStorage) Len() int {
	return len(s.resources)
}

// Types returns the stored type names in sorted order
func (s *LocalStorage) Types() []string {
	return sortedTypeNames(s.resources)
}

// Clear drops every local resource
func (s *LocalStorage) Clear() {
	clear(s.resources)
}
