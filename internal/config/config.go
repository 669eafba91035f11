// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all tunables for a steamraiders instance.
type Config struct {
	// TickInterval is the simulation cadence.
	TickInterval time.Duration `yaml:"tick_interval"`
	// ServerSpeed scales production and build times.
	ServerSpeed float64 `yaml:"server_speed"`
	// Seed drives the deterministic mock universe generator.
	Seed int64 `yaml:"seed"`
	// DBPath is the SQLite file location.
	DBPath string `yaml:"db_path"`
	// APIBaseURL, when set, is the backend directory service.
	APIBaseURL string `yaml:"api_base_url"`
	// ListenPort is the local HTTP API port.
	ListenPort int `yaml:"listen_port"`
	// DeepLink is an optional sys coordinate to focus at startup.
	DeepLink string `yaml:"deep_link"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		TickInterval: time.Second,
		ServerSpeed:  1,
		Seed:         2023,
		DBPath:       "data/steamraiders.db",
		ListenPort:   4000,
	}
}

// Load reads a YAML config file on top of the defaults, then applies env
// overrides. A missing file is not an error; the defaults carry.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STEAMRAIDERS_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("STEAMRAIDERS_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STEAMRAIDERS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.ListenPort = port
		}
	}
	if v := os.Getenv("STEAMRAIDERS_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if v := os.Getenv("STEAMRAIDERS_SYS"); v != "" {
		cfg.DeepLink = v
	}
}
