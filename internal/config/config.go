// Package config loads server configuration.
//
// Sources, lowest precedence first:
//  1. DefaultConfig
//  2. the YAML file named by $STORYTASKS_CONFIG, if set
//  3. STORYTASKS_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"storytasks/internal/logging"
	"storytasks/internal/pagination"
	"storytasks/internal/store"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "STORYTASKS_CONFIG"

// Config is the full server configuration.
type Config struct {
	Addr     string         `yaml:"addr" env:"ADDR"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
	Paging   PagingConfig   `yaml:"paging" envPrefix:"PAGE_"`
	Log      logging.Config `yaml:"log" envPrefix:"LOG_"`

	RequestTimeout  time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects the SQLite driver and file.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
}

// PagingConfig bounds list page sizes and optionally expires page tokens.
// A zero TokenTTL never expires tokens.
type PagingConfig struct {
	DefaultSize int           `yaml:"default_size" env:"SIZE_DEFAULT"`
	MinSize     int           `yaml:"min_size" env:"SIZE_MIN"`
	MaxSize     int           `yaml:"max_size" env:"SIZE_MAX"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
}

// PageSize converts the paging limits for the service layer.
func (p PagingConfig) PageSize() pagination.PageSizeConfig {
	return pagination.PageSizeConfig{Default: p.DefaultSize, Min: p.MinSize, Max: p.MaxSize}
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Addr: ":8080",
		Database: DatabaseConfig{
			Driver: store.DriverCGO,
			Path:   "./data/storytasks.db",
		},
		Paging: PagingConfig{
			DefaultSize: pagination.DefaultPageSize.Default,
			MinSize:     pagination.DefaultPageSize.Min,
			MaxSize:     pagination.DefaultPageSize.Max,
		},
		Log: logging.Config{
			Level:     "info",
			Format:    "text",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration from defaults, the optional config file
// and the environment, then validates it.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(PathEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "STORYTASKS_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads path over the defaults without consulting the environment.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []error

	if c.Addr == "" {
		problems = append(problems, errors.New("addr is required"))
	}
	switch c.Database.Driver {
	case store.DriverCGO, store.DriverPureGo:
	default:
		problems = append(problems, fmt.Errorf("database.driver must be %q or %q, got %q",
			store.DriverCGO, store.DriverPureGo, c.Database.Driver))
	}
	if c.Database.Path == "" {
		problems = append(problems, errors.New("database.path is required"))
	}

	p := c.Paging
	if p.MinSize <= 0 || p.MaxSize < p.MinSize {
		problems = append(problems, fmt.Errorf("paging sizes must satisfy 0 < min_size <= max_size, got %d and %d", p.MinSize, p.MaxSize))
	} else if p.DefaultSize < p.MinSize || p.DefaultSize > p.MaxSize {
		problems = append(problems, fmt.Errorf("paging.default_size must be within [%d, %d], got %d", p.MinSize, p.MaxSize, p.DefaultSize))
	}
	if p.TokenTTL < 0 {
		problems = append(problems, errors.New("paging.token_ttl must not be negative"))
	}

	if err := c.Log.Validate(); err != nil {
		problems = append(problems, err)
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, errors.New("request_timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, errors.New("shutdown_timeout must be positive"))
	}

	return errors.Join(problems...)
}
