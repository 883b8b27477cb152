// Package config loads service configuration from config.yaml with
// environment variable overrides.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the context engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Schema snapshot source
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Database configuration (PostgreSQL), used when snapshot source is "postgres"
	Database DatabaseConfig `yaml:"database"`

	// Search behavior
	Search SearchConfig `yaml:"search"`
}

// SnapshotConfig selects where the schema snapshot is loaded from.
type SnapshotConfig struct {
	// Source is "file" or "postgres".
	Source string `yaml:"source" env:"SNAPSHOT_SOURCE" env-default:"file"`

	// Path is the snapshot file location (JSON or YAML) for the file source.
	Path string `yaml:"path" env:"SNAPSHOT_PATH" env-default:"schema_snapshot.json"`

	// Watch enables automatic index rebuilds when the snapshot file changes.
	Watch bool `yaml:"watch" env:"SNAPSHOT_WATCH" env-default:"true"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"crm"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"crm_metadata"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// SearchConfig holds relevance-search behavior settings.
type SearchConfig struct {
	// FilterStrategy is the default strategy: "selective" or "comprehensive".
	FilterStrategy string `yaml:"filter_strategy" env:"SEARCH_FILTER_STRATEGY" env-default:"selective"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on the
// returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Snapshot.Source {
	case "file":
		if c.Snapshot.Path == "" {
			return fmt.Errorf("snapshot path is required for the file source")
		}
	case "postgres":
	default:
		return fmt.Errorf("unknown snapshot source %q (want file or postgres)", c.Snapshot.Source)
	}

	switch c.Search.FilterStrategy {
	case "selective", "comprehensive":
	default:
		return fmt.Errorf("unknown filter strategy %q (want selective or comprehensive)", c.Search.FilterStrategy)
	}

	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
