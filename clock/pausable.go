package clock

import (
	"sync"
	"time"
)

// PausableClock is a TimeProvider that stops advancing while paused
// Elapsed time = elapsed source time - total paused time
type PausableClock struct {
	mu sync.RWMutex

	source    TimeProvider
	startReal time.Time

	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock wraps source; a nil source uses the system clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		source:    source,
		startReal: source.Now(),
	}
}

// Now returns the paused-adjusted time
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.startReal.Add(pc.pauseStart.Sub(pc.startReal) - pc.totalPaused)
	}
	return pc.startReal.Add(pc.source.Now().Sub(pc.startReal) - pc.totalPaused)
}

// RealTime returns the source time, ignoring pauses
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Pause freezes Now; repeated calls are no-ops
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.source.Now()
}

// Resume continues advancing from the frozen instant
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPaused += pc.source.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration includes the pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStart)
	}
	return total
}
