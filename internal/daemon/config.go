// Package daemon manages the Upward daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all daemon configuration. Values come from config.toml,
// overridden by UPWARD_* environment variables.
type Config struct {
	API       APIConfig       `toml:"api"`
	Engine    EngineConfig    `toml:"engine"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host" env:"UPWARD_API_HOST"`
	Port int    `toml:"port" env:"UPWARD_API_PORT"`
}

// EngineConfig controls the progress engine.
type EngineConfig struct {
	// Timezone sets the day boundary for streak computation, e.g.
	// "Europe/Berlin". Empty means the system's local zone.
	Timezone string `toml:"timezone" env:"UPWARD_TIMEZONE"`

	// EventFeedLimit caps how many unseen events one fetch returns.
	EventFeedLimit int `toml:"event_feed_limit" env:"UPWARD_EVENT_FEED_LIMIT"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level" env:"UPWARD_LOG_LEVEL"`
	File  string `toml:"file" env:"UPWARD_LOG_FILE"`
}

// TelemetryConfig controls local observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus" env:"UPWARD_PROMETHEUS"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := upwardHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 4680,
		},
		Engine: EngineConfig{
			EventFeedLimit: 50,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "upward.log"),
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// LoadConfig reads ~/.upward/config.toml, falling back to defaults, then
// applies UPWARD_* environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(upwardHome(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("env overrides: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return cfg, fmt.Errorf("invalid timezone %q: %w", cfg.Engine.Timezone, err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.upward/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(upwardHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Location resolves the configured streak timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Engine.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Engine.Timezone)
}

// upwardHome returns the Upward data directory.
func upwardHome() string {
	if env := os.Getenv("UPWARD_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".upward")
}

// UpwardHome is exported for use by other packages.
func UpwardHome() string {
	return upwardHome()
}
