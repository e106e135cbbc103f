// Package config loads runtime settings from CADENCE_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/scheduler"
)

// Config holds every tunable of the runtime and the bundled plugins
type Config struct {
	TickRate      int           `env:"CADENCE_TICK_RATE" envDefault:"60"`
	MaxCatchup    int           `env:"CADENCE_MAX_CATCHUP" envDefault:"2"`
	CatchupPolicy string        `env:"CADENCE_CATCHUP_POLICY" envDefault:"whole"`
	MaxLag        time.Duration `env:"CADENCE_MAX_LAG" envDefault:"0s"`
	FrameInterval time.Duration `env:"CADENCE_FRAME_INTERVAL" envDefault:"16ms"`

	LogLevel string `env:"CADENCE_LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"CADENCE_LOG_DEV"`

	Headless  bool   `env:"CADENCE_HEADLESS"`
	MaxFrames int    `env:"CADENCE_MAX_FRAMES"`
	AssetRoot string `env:"CADENCE_ASSET_ROOT" envDefault:"."`
	Mute      bool   `env:"CADENCE_MUTE"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, &core.Error{Kind: core.KindConfig, Detail: "parse env", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot honour
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return core.NewError(core.KindConfig, "", "CADENCE_TICK_RATE must be positive, got %d", c.TickRate)
	case c.TickRate > int(time.Second/time.Millisecond):
		return core.NewError(core.KindConfig, "", "CADENCE_TICK_RATE above 1000 gives sub-millisecond steps, got %d", c.TickRate)
	case c.MaxCatchup <= 0:
		return core.NewError(core.KindConfig, "", "CADENCE_MAX_CATCHUP must be positive, got %d", c.MaxCatchup)
	case c.MaxLag < 0:
		return core.NewError(core.KindConfig, "", "CADENCE_MAX_LAG must not be negative, got %s", c.MaxLag)
	case c.FrameInterval <= 0:
		return core.NewError(core.KindConfig, "", "CADENCE_FRAME_INTERVAL must be positive, got %s", c.FrameInterval)
	case c.MaxFrames < 0:
		return core.NewError(core.KindConfig, "", "CADENCE_MAX_FRAMES must not be negative, got %d", c.MaxFrames)
	}
	if _, err := scheduler.ParsePolicy(c.CatchupPolicy); err != nil {
		return &core.Error{Kind: core.KindConfig, Detail: "CADENCE_CATCHUP_POLICY", Cause: err}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &core.Error{Kind: core.KindConfig, Detail: "CADENCE_LOG_LEVEL", Cause: err}
	}
	return nil
}

// FixedData builds the fixed scheduler state starting at now
func (c Config) FixedData(now time.Time) scheduler.FixedData {
	data := scheduler.NewFixedData(now, c.TickRate)
	data.MaxTicks = c.MaxCatchup
	data.MaxLag = c.MaxLag
	if policy, err := scheduler.ParsePolicy(c.CatchupPolicy); err == nil {
		data.Policy = policy
	}
	return data
}

// NewLogger builds a zap logger at the configured level
// Development mode writes console output; otherwise JSON to stderr
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.LogDev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
