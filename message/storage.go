package message

import (
	"reflect"

	"github.com/lixenwraith/cadence/core"
)

// queue is the type-erased view used for bulk swapping
type queue interface {
	Swap()
	LenCurrent() int
	LenPrevious() int
}

// Storage maps message types to their double-buffered queues
// Swap order follows registration order
type Storage struct {
	queues map[reflect.Type]queue
	order  []reflect.Type
}

// NewStorage creates an empty message storage
func NewStorage() *Storage {
	return &Storage{
		queues: make(map[reflect.Type]queue),
	}
}

// TypeKey returns the identity used to index message type T
func TypeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Register creates an empty queue for T; registering twice keeps the existing queue
func Register[T any](s *Storage) *Messages[T] {
	key := TypeKey[T]()
	if q, ok := s.queues[key]; ok {
		return q.(*Messages[T])
	}
	m := NewMessages[T]()
	s.queues[key] = m
	s.order = append(s.order, key)
	return m
}

// Get returns the queue for T
func Get[T any](s *Storage) (*Messages[T], bool) {
	q, ok := s.queues[TypeKey[T]()]
	if !ok {
		return nil, false
	}
	return q.(*Messages[T]), true
}

// Fetch returns the queue for T or panics if T was never registered
func Fetch[T any](s *Storage) *Messages[T] {
	m, ok := Get[T](s)
	if !ok {
		panic(core.NewError(core.KindUnregisteredMessage, TypeKey[T]().String(), "message type must be registered before use"))
	}
	return m
}

// Send appends msg to T's current generation
// Panics if T was never registered
func Send[T any](s *Storage, msg T) ID[T] {
	return Fetch[T](s).Send(msg)
}

// Contains reports whether T has a registered queue
func Contains[T any](s *Storage) bool {
	_, ok := s.queues[TypeKey[T]()]
	return ok
}

// SwapAll advances every registered queue by one generation
func (s *Storage) SwapAll() {
	for _, key := range s.order {
		s.queues[key].Swap()
	}
}

// Len returns the number of registered message types
func (s *Storage) Len() int {
	return len(s.order)
}

// Pending returns the total messages waiting in current generations
func (s *Storage) Pending() int {
	total := 0
	for _, key := range s.order {
		total += s.queues[key].LenCurrent()
	}
	return total
}

// Types returns registered type names in registration order
func (s *Storage) Types() []string {
	names := make([]string, len(s.order))
	for i, key := range s.order {
		names[i] = key.String()
	}
	return names
}
