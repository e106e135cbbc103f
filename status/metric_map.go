package status

import (
	"iter"
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap lazily creates one cell per metric name; the zero value is ready
// Cells are never removed, so a pointer from Get stays valid for the map's lifetime
type MetricMap[T any] struct {
	cells sync.Map // string -> *T
	size  atomic.Int64
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the cell for name, creating it on first use
func (m *MetricMap[T]) Get(name string) *T {
	if c, ok := m.cells.Load(name); ok {
		return c.(*T)
	}
	c, loaded := m.cells.LoadOrStore(name, new(T))
	if !loaded {
		m.size.Add(1)
	}
	return c.(*T)
}

// Has reports whether name was ever touched
func (m *MetricMap[T]) Has(name string) bool {
	_, ok := m.cells.Load(name)
	return ok
}

// Names returns the cell names in sorted order
func (m *MetricMap[T]) Names() []string {
	var names []string
	m.cells.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)
	return names
}

// All yields every cell in name order
// Cells created while iterating may be missed
func (m *MetricMap[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		for _, name := range m.Names() {
			c, _ := m.cells.Load(name)
			if !yield(name, c.(*T)) {
				return
			}
		}
	}
}

// Count returns the number of cells
func (m *MetricMap[T]) Count() int {
	return int(m.size.Load())
}
