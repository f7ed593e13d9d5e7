package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid is returned when a parsed setting is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings of a translation run.
type Config struct {
	// MarshalPoolSize is the number of blocks per record kind.
	MarshalPoolSize int `env:"MOCASSIN_MARSHAL_POOL_SIZE" envDefault:"4"`

	// SymmetryCacheSize bounds the cached point operation groups.
	SymmetryCacheSize int `env:"MOCASSIN_SYMMETRY_CACHE_SIZE" envDefault:"256"`

	// ChargeTolerance is the absolute tolerance of charge conservation checks.
	ChargeTolerance float64 `env:"MOCASSIN_CHARGE_TOLERANCE" envDefault:"1e-6"`

	// AcquireTimeout bounds the wait for a marshal block. Zero waits forever.
	AcquireTimeout time.Duration `env:"MOCASSIN_ACQUIRE_TIMEOUT" envDefault:"0s"`

	// BuildLog is the path of the CBOR build event log. Empty disables it.
	BuildLog string `env:"MOCASSIN_BUILD_LOG"`

	LogLevel slog.Level `env:"MOCASSIN_LOG_LEVEL" envDefault:"INFO"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the value ranges.
func (c Config) Validate() error {
	switch {
	case c.MarshalPoolSize < 1:
		return fmt.Errorf("%w: marshal pool size %d", ErrInvalid, c.MarshalPoolSize)
	case c.SymmetryCacheSize < 1:
		return fmt.Errorf("%w: symmetry cache size %d", ErrInvalid, c.SymmetryCacheSize)
	case c.ChargeTolerance < 0:
		return fmt.Errorf("%w: charge tolerance %g", ErrInvalid, c.ChargeTolerance)
	case c.AcquireTimeout < 0:
		return fmt.Errorf("%w: acquire timeout %s", ErrInvalid, c.AcquireTimeout)
	}
	return nil
}
