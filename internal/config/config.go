// Package config provides configuration management for the ETL worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"fashionetl/internal/transformer"
)

// Configuration validation errors.
var (
	ErrMissingSourceURL  = errors.New("source.url is required")
	ErrInvalidMaxPages   = errors.New("source.max_pages must be at least 1")
	ErrInvalidDelay      = errors.New("source.delay_ms must be non-negative")
	ErrInvalidTimeout    = errors.New("source.timeout_sec must be at least 1")
	ErrMissingOutputPath = errors.New("output.path is required")
	ErrInvalidMode       = errors.New("output.mode must be 'overwrite' or 'append'")
	ErrInvalidRate       = errors.New("transform.usd_to_idr_rate must be positive")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete ETL worker configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Transform TransformConfig `yaml:"transform"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig contains catalog scraping settings.
type SourceConfig struct {
	URL        string `yaml:"url"`
	MaxPages   int    `yaml:"max_pages"`
	DelayMs    int    `yaml:"delay_ms"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// OutputConfig defines where and how the dataset is written.
type OutputConfig struct {
	Path         string `yaml:"path"`
	Mode         string `yaml:"mode"`
	CreateBackup bool   `yaml:"create_backup"`
}

// TransformConfig holds the fixed conversion constants.
type TransformConfig struct {
	USDToIDRRate float64 `yaml:"usd_to_idr_rate"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:        "https://fashion-studio.dicoding.dev/",
			MaxPages:   50,
			DelayMs:    500,
			TimeoutSec: 30,
		},
		Output: OutputConfig{
			Path:         "products.csv",
			Mode:         "overwrite",
			CreateBackup: true,
		},
		Transform: TransformConfig{
			USDToIDRRate: transformer.DefaultUSDToIDRRate,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that precedence order.
func Load(filepath string) (*Config, error) {
	cfg := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv overlays environment variables, loading a .env file first when
// one is present in the working directory.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("FASHION_SOURCE_URL"); v != "" {
		c.Source.URL = v
	}

	if v := os.Getenv("FASHION_OUTPUT_PATH"); v != "" {
		c.Output.Path = v
	}

	if v := os.Getenv("FASHION_USD_TO_IDR_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			c.Transform.USDToIDRRate = rate
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return ErrMissingSourceURL
	}

	if c.Source.MaxPages < 1 {
		return ErrInvalidMaxPages
	}

	if c.Source.DelayMs < 0 {
		return ErrInvalidDelay
	}

	if c.Source.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Output.Mode != "overwrite" && c.Output.Mode != "append" {
		return ErrInvalidMode
	}

	if c.Transform.USDToIDRRate <= 0 {
		return ErrInvalidRate
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetDelay returns the politeness delay between page fetches.
func (s *SourceConfig) GetDelay() time.Duration {
	return time.Duration(s.DelayMs) * time.Millisecond
}

// GetTimeout returns the per-fetch HTTP timeout.
func (s *SourceConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{URL: %s, MaxPages: %d, Output: %s, Mode: %s}",
		c.Source.URL,
		c.Source.MaxPages,
		c.Output.Path,
		c.Output.Mode,
	)
}
