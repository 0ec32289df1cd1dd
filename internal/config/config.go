package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kedaikopi/backoffice/internal/pricing"
	"github.com/kedaikopi/backoffice/internal/versioner"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "backoffice.yml"

// Environment variables that override the file.
const (
	EnvDatabaseURL         = "BACKOFFICE_DATABASE_URL"
	EnvLogLevel            = "BACKOFFICE_LOG_LEVEL"
	EnvNegativeTotalPolicy = "BACKOFFICE_NEGATIVE_TOTAL_POLICY"
)

// Config is the backoffice.yml file after environment overrides.
type Config struct {
	DatabaseURL         string `yaml:"database_url"`
	MigrationTable      string `yaml:"migration_table"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	DBDebug             bool   `yaml:"db_debug"`
	NegativeTotalPolicy string `yaml:"negative_total_policy"`
	PageSize            int    `yaml:"page_size"`
}

// Default returns the configuration written by `backoffice init`.
func Default() *Config {
	cfg := &Config{DatabaseURL: "sqlite://backoffice.db"}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads configPath, overlays the environment and an optional
// .env beside the file, then fills defaults. Process environment wins
// over .env.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// A .env next to the config file is optional.
	env, err := godotenv.Read(filepath.Join(filepath.Dir(configPath), ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	cfg.applyEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return env[key]
	})

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) string) {
	if v := lookup(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := lookup(EnvNegativeTotalPolicy); v != "" {
		c.NegativeTotalPolicy = v
	}
}

func (c *Config) applyDefaults() {
	if c.MigrationTable == "" {
		c.MigrationTable = versioner.DefaultTable
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.NegativeTotalPolicy == "" {
		c.NegativeTotalPolicy = string(pricing.PolicyClamp)
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
}

// Validate checks the database URL scheme, log settings and the
// negative-total policy.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if !hasAnyPrefix(c.DatabaseURL, "postgres://", "postgresql://", "sqlite://") {
		return fmt.Errorf("database_url must start with postgres://, postgresql:// or sqlite://")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if _, err := pricing.ParsePolicy(c.NegativeTotalPolicy); err != nil {
		return fmt.Errorf("negative_total_policy: %w", err)
	}
	return nil
}

// Policy returns the validated negative-total policy.
func (c *Config) Policy() pricing.Policy {
	p, err := pricing.ParsePolicy(c.NegativeTotalPolicy)
	if err != nil {
		return pricing.PolicyClamp
	}
	return p
}

// Save writes the config as YAML, refusing to overwrite a file.
func (c *Config) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
