// Package config loads squares-search settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "squares.yaml"

type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Logging LoggingConfig `yaml:"logging"`
	Batch   BatchConfig   `yaml:"batch"`
	HTTP    HTTPConfig    `yaml:"http"`
}

type SearchConfig struct {
	OutputDir string `yaml:"output_dir"`
	// Threshold is the number of perfect squares a grid must exceed to be reported.
	Threshold int  `yaml:"threshold"`
	Validate  bool `yaml:"validate"`
}

type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			OutputDir: ".",
			Threshold: 6,
			Validate:  true,
		},
		Ledger: LedgerConfig{
			Enabled: false,
			Path:    "squares.db",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv("SQUARES_OUTPUT_DIR"); dir != "" {
		c.Search.OutputDir = dir
	}
	if path := os.Getenv("SQUARES_LEDGER_PATH"); path != "" {
		c.Ledger.Path = path
	}
	if v := os.Getenv("SQUARES_LEDGER_ENABLED"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SQUARES_LEDGER_ENABLED: %w", err)
		}
		c.Ledger.Enabled = on
	}
	if lvl := os.Getenv("SQUARES_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if v := os.Getenv("SQUARES_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SQUARES_WORKERS: %w", err)
		}
		c.Batch.Workers = n
	}
	return nil
}

var (
	ValidLevels  = []string{"debug", "info", "warn", "error"}
	ValidFormats = []string{"json", "console"}
)

func (c *Config) Validate() error {
	if c.Search.OutputDir == "" {
		return fmt.Errorf("search.output_dir must not be empty")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 9 {
		return fmt.Errorf("search.threshold %d out of range [0, 9]", c.Search.Threshold)
	}
	if c.Ledger.Enabled && c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must be set when the ledger is enabled")
	}
	if !slices.Contains(ValidLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative")
	}
	return nil
}
