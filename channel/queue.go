// Package channel hands results from background goroutines to the app goroutine.
package channel

import (
	"math/bits"
	"sync/atomic"
)

// DefaultCapacity is used when NewQueue receives a non-positive size
const DefaultCapacity = 256

// Queue is a lock-free bounded MPSC ring
//   - Push: lock-free CAS, any number of producers
//   - Consume: single consumer, the app goroutine
//   - Published flags keep the consumer from reading half-written slots
//
// A full queue rejects the push instead of overwriting unread items
type Queue[T any] struct {
	items     []T
	published []atomic.Bool
	mask      uint64
	head      atomic.Uint64 // read index
	tail      atomic.Uint64 // write index
	closed    atomic.Bool
}

// NewQueue creates a queue whose capacity is size rounded up to a power of two
func NewQueue[T any](size int) *Queue[T] {
	if size <= 0 {
		size = DefaultCapacity
	}
	capacity := uint64(1) << bits.Len64(uint64(size-1))
	return &Queue[T]{
		items:     make([]T, capacity),
		published: make([]atomic.Bool, capacity),
		mask:      capacity - 1,
	}
}

// Cap returns the slot count
func (q *Queue[T]) Cap() int {
	return len(q.items)
}

// Push enqueues item; false when the queue is full or closed
func (q *Queue[T]) Push(item T) bool {
	if q.closed.Load() {
		return false
	}
	capacity := uint64(len(q.items))
	for {
		tail := q.tail.Load()
		if tail-q.head.Load() >= capacity {
			return false
		}
		if q.tail.CompareAndSwap(tail, tail+1) {
			idx := tail & q.mask
			q.items[idx] = item
			q.published[idx].Store(true) // after the write
			return true
		}
	}
}

// Consume drains every published item in FIFO order
// Stops at the first slot whose producer has not finished writing
func (q *Queue[T]) Consume() []T {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail == head {
		return nil
	}

	var zero T
	result := make([]T, 0, tail-head)
	for i := head; i < tail; i++ {
		idx := i & q.mask
		if !q.published[idx].Load() {
			break
		}
		result = append(result, q.items[idx])
		q.items[idx] = zero
		q.published[idx].Store(false)
	}

	q.head.Store(head + uint64(len(result)))
	if len(result) == 0 {
		return nil
	}
	return result
}

// Len returns the approximate number of pending items
func (q *Queue[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Close makes later pushes fail; pending items remain consumable
func (q *Queue[T]) Close() {
	q.closed.Store(true)
}

// Closed reports whether Close was called
func (q *Queue[T]) Closed() bool {
	return q.closed.Load()
}
