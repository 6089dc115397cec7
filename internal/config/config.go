package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type DashboardConfig struct {
	CacheTTLSeconds   int `yaml:"cache_ttl_seconds"`
	DefaultWindowDays int `yaml:"default_window_days"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Dashboard.CacheTTLSeconds == 0 {
		cfg.Dashboard.CacheTTLSeconds = 60
	}
	if cfg.Dashboard.DefaultWindowDays == 0 {
		cfg.Dashboard.DefaultWindowDays = 90
	}
	return &cfg, nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Dashboard.CacheTTLSeconds) * time.Second
}
