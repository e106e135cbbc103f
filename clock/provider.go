// Package clock supplies the time sources the runtime ticks against.
package clock

import (
	"sync"
	"time"
)

// TimeProvider yields the current time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock; time.Now carries a monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a system clock provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns time.Now
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualTimeProvider moves only when told to and never goes backwards
// runner.Loop advances it instead of sleeping, which turns a headless run
// into a deterministic simulation; tests step it directly
type ManualTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualTimeProvider creates a provider reading start until advanced
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{now: start}
}

// Now returns the current manual time
func (m *ManualTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves forward by d and returns the new time; d <= 0 is a no-op
func (m *ManualTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now = m.now.Add(d)
	}
	return m.now
}

// SetTime jumps to t; returns false and keeps the current time when t is earlier
func (m *ManualTimeProvider) SetTime(t time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.Before(m.now) {
		return false
	}
	m.now = t
	return true
}
