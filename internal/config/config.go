// Package config loads and validates engine configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Sentinel errors for the config package.
var (
	// ErrInvalidTickRate is returned when the tick rate is not positive.
	ErrInvalidTickRate = errors.New("engine tick rate must be positive")

	// ErrInvalidMaxFrames is returned when the frame limit is negative.
	ErrInvalidMaxFrames = errors.New("engine max frames must not be negative")

	// ErrInvalidLogLevel is returned for an unrecognized log level.
	ErrInvalidLogLevel = errors.New("unrecognized log level")
)

// Config is the root configuration.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
	Script ScriptConfig `toml:"script"`
}

// EngineConfig configures the engine tick loop.
type EngineConfig struct {
	// TickRate is the number of frame dispatches per second.
	TickRate int `toml:"tick_rate"`

	// MaxFrames stops the engine after this many frames; 0 means run
	// until cancelled.
	MaxFrames int `toml:"max_frames"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// ScriptConfig configures the Lua script host.
type ScriptConfig struct {
	// Paths lists script files loaded at startup, in order.
	Paths []string `toml:"paths"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickRate:  60,
			MaxFrames: 0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a TOML file, layered over Default. A
// missing file is not an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTickRate, c.Engine.TickRate)
	}
	if c.Engine.MaxFrames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFrames, c.Engine.MaxFrames)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	return nil
}
