package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/walexbarnes/accountabillabuddy/internal/schema"
	"github.com/walexbarnes/accountabillabuddy/internal/store"
)

// Config is resolved once at process start, outside the core.
type Config struct {
	// DataDir holds the tracker table. Defaults to ~/.accountabillabuddy.
	DataDir string `env:"ABB_DATA_DIR"`
	// SchemaFile optionally overrides the built-in schema (YAML field list).
	SchemaFile string `env:"ABB_SCHEMA_FILE"`
	// CacheTTL bounds read-cache staleness. Zero disables the cache, which
	// is the setting to use when multiple instances share one data dir.
	CacheTTL time.Duration `env:"ABB_CACHE_TTL" envDefault:"10s"`
}

// FromEnv loads configuration from environment variables and fills in the
// default data directory.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// Schema returns the schema override when configured, else the built-in one.
func (c Config) Schema() (schema.Schema, error) {
	if c.SchemaFile == "" {
		return schema.Default(), nil
	}
	return schema.Load(c.SchemaFile)
}
