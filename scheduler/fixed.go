package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/cadence/clock"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/stage"
	"github.com/lixenwraith/cadence/state"
	"github.com/lixenwraith/cadence/status"
)

const (
	DefaultTicksPerSecond = 60
	DefaultMaxTicks       = 2
)

// CatchupPolicy decides when outstanding lag is worth another fixed step
type CatchupPolicy int

const (
	// PolicyWholeSteps steps only while at least one full step of lag remains
	PolicyWholeSteps CatchupPolicy = iota
	// PolicyPartialStep steps while any lag remains, so consumed time may run ahead of now
	PolicyPartialStep
)

func (p CatchupPolicy) String() string {
	switch p {
	case PolicyPartialStep:
		return "partial"
	case PolicyWholeSteps:
		return "whole"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "whole" or "partial"; empty selects whole
func ParsePolicy(s string) (CatchupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whole":
		return PolicyWholeSteps, nil
	case "partial":
		return PolicyPartialStep, nil
	default:
		return 0, fmt.Errorf("unknown catch-up policy %q", s)
	}
}

// FixedData is the fixed scheduler's carried state
type FixedData struct {
	ConsumedUpTo time.Time
	Step         time.Duration // <= 0 falls back to DefaultTicksPerSecond
	MaxTicks     int           // cap on steps per external tick
	Policy       CatchupPolicy
	MaxLag       time.Duration // 0 disables resync
}

// NewFixedData starts consumed time at now with the default cap and policy
func NewFixedData(now time.Time, ticksPerSecond int) FixedData {
	if ticksPerSecond <= 0 {
		ticksPerSecond = DefaultTicksPerSecond
	}
	return FixedData{
		ConsumedUpTo: now,
		Step:         time.Second / time.Duration(ticksPerSecond),
		MaxTicks:     DefaultMaxTicks,
		Policy:       PolicyWholeSteps,
	}
}

// TicksPerSecond derives the rate from Step
func (d FixedData) TicksPerSecond() int {
	if d.Step <= 0 {
		return 0
	}
	return int(time.Second / d.Step)
}

// due reports whether lag warrants another step
func (d FixedData) due(lag time.Duration) bool {
	if d.Policy == PolicyWholeSteps {
		return lag >= d.Step
	}
	return lag > 0
}

// Fixed runs the fixed stages zero or more times per tick against MonotonicTime
type Fixed struct{}

func (Fixed) Name() string { return "fixed" }

func (Fixed) Schedule(stages *stage.Stages, st *state.State) {
	res := st.Resources()
	now := resource.Fetch[clock.MonotonicTime](res).Time
	data := *resource.Fetch[FixedData](res)

	maxTicks := data.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	// A zero step would never advance consumed time
	if data.Step <= 0 {
		data.Step = time.Second / DefaultTicksPerSecond
	}

	consumed := data.ConsumedUpTo
	ticks := 0
	for ticks < maxTicks && data.due(now.Sub(consumed)) {
		stages.RunTags(st, stage.FixedTags...)
		consumed = consumed.Add(data.Step)
		ticks++
	}

	capped := data.due(now.Sub(consumed))

	var dropped int64
	if lag := now.Sub(consumed); data.MaxLag > 0 && lag > data.MaxLag {
		excess := lag - data.MaxLag
		dropped = int64((excess + data.Step - 1) / data.Step)
		consumed = consumed.Add(time.Duration(dropped) * data.Step)
	}

	// Systems may have replaced FixedData during the run
	stored := resource.Fetch[FixedData](res)
	stored.ConsumedUpTo = consumed
	if stored.Step <= 0 {
		stored.Step = data.Step
	}

	if reg, ok := resource.Get[status.Registry](res); ok {
		reg.Add(status.FixedTicks, int64(ticks))
		reg.Add(status.FixedDropped, dropped)
		if capped {
			reg.Add(status.FixedCapped, 1)
		}
		reg.Gauges.Get(status.FixedLag).Set(float64(now.Sub(consumed)) / float64(time.Millisecond))
	}
}
