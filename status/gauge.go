package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 that also remembers the highest value it held
// The zero value reads 0 with a peak of 0
type Gauge struct {
	bits atomic.Uint64
	peak atomic.Uint64
}

// Set stores val
func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
	g.raise(val)
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Peak loads the highest value seen since creation or the last ResetPeak
func (g *Gauge) Peak() float64 {
	return math.Float64frombits(g.peak.Load())
}

// ResetPeak lowers the peak to the current value
func (g *Gauge) ResetPeak() {
	g.peak.Store(g.bits.Load())
}

// Add adds delta and returns the new value
func (g *Gauge) Add(delta float64) float64 {
	for {
		old := g.bits.Load()
		next := math.Float64frombits(old) + delta
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			g.raise(next)
			return next
		}
	}
}

func (g *Gauge) raise(val float64) {
	for {
		old := g.peak.Load()
		if val <= math.Float64frombits(old) {
			return
		}
		if g.peak.CompareAndSwap(old, math.Float64bits(val)) {
			return
		}
	}
}
