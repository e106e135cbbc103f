package resource

import (
	"reflect"
	"sort"
	"sync"

	"github.com/lixenwraith/cadence/core"
)

// Storage is a type-indexed container for shared singleton resources
// Map access is guarded so async producers may check presence, but borrows are
// only handed out to systems running on the app goroutine
type Storage struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any // reflect.Type of T -> *T
}

// NewStorage creates an empty resource storage
func NewStorage() *Storage {
	return &Storage{
		resources: make(map[reflect.Type]any),
	}
}

// TypeKey returns the identity used to index T in either namespace
func TypeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Insert stores value as the single instance of T, replacing any previous one
// Panics if T carries the Local marker
func Insert[T any](s *Storage, value T) {
	if _, local := any(value).(LocalResource); local {
		panic(core.NewError(core.KindLocalInShared, TypeKey[T]().String(),
			"local resources must be inserted with InsertLocal"))
	}

	boxed := new(T)
	*boxed = value

	s.mu.Lock()
	s.resources[TypeKey[T]()] = boxed
	s.mu.Unlock()
}

// Get returns a pointer to the stored T
// Returns nil and false if T is absent
func Get[T any](s *Storage) (*T, bool) {
	s.mu.RLock()
	val, ok := s.resources[TypeKey[T]()]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return val.(*T), true
}

// Fetch retrieves a mandatory resource or panics if missing
func Fetch[T any](s *Storage) *T {
	res, ok := Get[T](s)
	if !ok {
		panic(core.NewError(core.KindMissingResource, TypeKey[T]().String(), "required resource not found"))
	}
	return res
}

// Remove takes T out of the storage and returns its value
func Remove[T any](s *Storage) (T, bool) {
	key := TypeKey[T]()

	s.mu.Lock()
	val, ok := s.resources[key]
	delete(s.resources, key)
	s.mu.Unlock()

	if !ok {
		var zero T
		return zero, false
	}
	return *val.(*T), true
}

// Contains reports whether T is present
func Contains[T any](s *Storage) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.resources[TypeKey[T]()]
	return ok
}

// Len returns the number of stored resources
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

// Types returns the stored type names in sorted order
func (s *Storage) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedTypeNames(s.resources)
}

// Clear drops every resource
func (s *Storage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.resources)
}

func sortedTypeNames(m map[reflect.Type]any) []string {
	names := make([]string, 0, len(m))
	for t := range m {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}
