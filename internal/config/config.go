// Package config loads matchbookd's process configuration from a YAML
// file, following the os.ReadFile-then-yaml.Unmarshal pattern used by
// DimaJoyti-ai-agentic-crypto-browser/cmd/trading-bots/main.go, with
// environment variables permitted to override individual fields.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is matchbookd's full process configuration.
type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"server"`

	Engine struct {
		ArenaCapacity int  `yaml:"arena_capacity"`
		QueueCapacity int  `yaml:"queue_capacity"`
		TrackStats    bool `yaml:"track_stats"`
	} `yaml:"engine"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
	} `yaml:"metrics"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration matchbookd starts with absent a
// config file.
func Default() Config {
	var c Config
	c.Server.Address = "0.0.0.0"
	c.Server.Port = 9001
	c.Engine.ArenaCapacity = 4096
	c.Engine.QueueCapacity = 16
	c.Engine.TrackStats = false
	c.Metrics.Enabled = true
	c.Metrics.Address = "0.0.0.0"
	c.Metrics.Port = 9090
	c.Log.Level = "info"
	return c
}

// Load reads and parses path, falling back to Default() for any field
// the file leaves unset, then applies MATCHBOOK_-prefixed environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MATCHBOOK_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("MATCHBOOK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MATCHBOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MATCHBOOK_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "true" || v == "1"
	}
}
