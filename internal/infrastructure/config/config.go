// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${ENV} expansion
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv("config.yaml")
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Autosave      AutosaveConfig      `yaml:"autosave"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port" env:"SMARTSPLIT_PORT" envDefault:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"SMARTSPLIT_ALLOWED_ORIGINS" envDefault:"*"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path" env:"SMARTSPLIT_DB_PATH" envDefault:"smartsplit.db"`
}

// AutosaveConfig controls periodic draft persistence.
type AutosaveConfig struct {
	Enabled         bool `yaml:"enabled" env:"SMARTSPLIT_AUTOSAVE_ENABLED" envDefault:"true"`
	IntervalSeconds int  `yaml:"interval_seconds" env:"SMARTSPLIT_AUTOSAVE_INTERVAL" envDefault:"30"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${SMARTSPLIT_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// LoadOrEnv tries to load from the given path, falling back to environment
// variables when the file is missing or unreadable.
func LoadOrEnv(path string) (*Config, error) {
	if cfg, err := Load(path); err == nil {
		return cfg, nil
	}
	return LoadFromEnv()
}

// applyDefaults fills in zero values left by a sparse YAML file.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "smartsplit.db"
	}
	if c.Autosave.IntervalSeconds == 0 {
		c.Autosave.IntervalSeconds = 30
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
