package message

import "iter"

// ID identifies a sent message within its type; values increase monotonically across ticks
type ID[T any] struct {
	value uint64
}

// Value returns the raw sequence number
func (id ID[T]) Value() uint64 {
	return id.value
}

// Messages is the double-buffered queue for one message type
// Current collects this tick's sends; previous is last tick's frozen set
type Messages[T any] struct {
	current  []T
	previous []T
	nextID   uint64
}

// NewMessages creates an empty queue
func NewMessages[T any]() *Messages[T] {
	return &Messages[T]{}
}

// Send appends to the current generation and returns the message id
func (m *Messages[T]) Send(msg T) ID[T] {
	id := ID[T]{value: m.nextID}
	m.nextID++
	m.current = append(m.current, msg)
	return id
}

// IterCurrent yields the current generation in send order
// The sequence reads the generation when ranged, so it can be restarted
func (m *Messages[T]) IterCurrent() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, msg := range m.current {
			if !yield(msg) {
				return
			}
		}
	}
}

// IterPrevious yields last tick's generation in send order
func (m *Messages[T]) IterPrevious() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, msg := range m.previous {
			if !yield(msg) {
				return
			}
		}
	}
}

// LenCurrent returns the number of messages sent this tick
func (m *Messages[T]) LenCurrent() int {
	return len(m.current)
}

// LenPrevious returns the number of messages in the frozen generation
func (m *Messages[T]) LenPrevious() int {
	return len(m.previous)
}

// Swap freezes current into previous and starts an empty current
// The old previous backing array is zeroed and reused for the next generation
func (m *Messages[T]) Swap() {
	recycled := m.previous
	clear(recycled)
	m.previous = m.current
	m.current = recycled[:0]
}
