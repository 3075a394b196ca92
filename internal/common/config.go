package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment"` // "development" or "production"
	Storage     StorageConfig     `toml:"storage"`
	Logging     LoggingConfig     `toml:"logging"`
	Fetcher     FetcherConfig     `toml:"fetcher"`
	Claude      ClaudeConfig      `toml:"claude"`
	Competitive CompetitiveConfig `toml:"competitive"`
	Processing  ProcessingConfig  `toml:"processing"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// FetcherConfig contains page-fetch configuration
type FetcherConfig struct {
	UserAgent      string        `toml:"user_agent"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxBodySize    int           `toml:"max_body_size"`
	RequestsPerSec float64       `toml:"requests_per_sec"` // rate limit for outbound page fetches
	MaxAttempts    int           `toml:"max_attempts"`     // retry attempts per fetch
}

// ClaudeConfig contains Anthropic API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

// CompetitiveConfig contains the external competitive-data integration endpoint
type CompetitiveConfig struct {
	Endpoint       string        `toml:"endpoint"` // empty disables the live integration
	APIKey         string        `toml:"api_key"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxAttempts    int           `toml:"max_attempts"`
}

// ProcessingConfig controls the job dispatcher
type ProcessingConfig struct {
	Concurrency  int           `toml:"concurrency"` // concurrent dispatcher workers
	PollInterval time.Duration `toml:"poll_interval"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/sitescore",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Fetcher: FetcherConfig{
			UserAgent:      "sitescore/1.0",
			RequestTimeout: 30 * time.Second,
			MaxBodySize:    10 * 1024 * 1024,
			RequestsPerSec: 2,
			MaxAttempts:    3,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Temperature: 0.2,
		},
		Competitive: CompetitiveConfig{
			RequestTimeout: 60 * time.Second,
			MaxAttempts:    2,
		},
		Processing: ProcessingConfig{
			Concurrency:  2,
			PollInterval: time.Second,
		},
	}
}

// LoadConfig loads configuration from a TOML file, applying defaults for
// missing sections and environment overrides for secrets.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides for secrets
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("SITESCORE_COMPETITIVE_API_KEY"); key != "" {
		config.Competitive.APIKey = key
	}
	if path := os.Getenv("SITESCORE_DB_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Processing.Concurrency < 1 {
		c.Processing.Concurrency = 1
	}
	if c.Fetcher.MaxAttempts < 1 {
		c.Fetcher.MaxAttempts = 1
	}
	if c.Competitive.MaxAttempts < 1 {
		c.Competitive.MaxAttempts = 1
	}
	return nil
}
