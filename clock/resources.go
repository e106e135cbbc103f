package clock

import (
	"time"

	"github.com/lixenwraith/cadence/resource"
)

// Clock is the local time source sampled once per tick
type Clock struct {
	resource.Local
	Source TimeProvider
}

// Now samples the source
func (c Clock) Now() time.Time {
	return c.Source.Now()
}

// Pausable returns the source as a PausableClock when it is one
func (c Clock) Pausable() (*PausableClock, bool) {
	pc, ok := c.Source.(*PausableClock)
	return pc, ok
}

// MonotonicTime is the tick's sampled time, shared with every system
type MonotonicTime struct {
	Time time.Time
}
