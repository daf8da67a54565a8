// Package config loads run settings from defaults, an optional YAML file and
// STS_* environment variables, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_sts_similarity/internal/core/bleu"
	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/core/nist"
)

// Default values.
const (
	DefaultDataset        = "stsbenchmark/sts-dev.csv"
	DefaultFormat         = "text"
	DefaultAddr           = ":8080"
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultMaxPairs       = 50000
)

// Config holds every setting of the CLI and the server.
type Config struct {
	Dataset   string       `yaml:"dataset"`
	Workers   int          `yaml:"workers"`
	NISTOrder int          `yaml:"nist_order"`
	BLEUOrder int          `yaml:"bleu_order"`
	Format    string       `yaml:"format"`
	Log       LogConfig    `yaml:"log"`
	Server    ServerConfig `yaml:"server"`
}

// LogConfig controls logging.
type LogConfig struct {
	JSON    bool   `yaml:"json"`
	File    string `yaml:"file"`
	Verbose bool   `yaml:"verbose"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxRequestSize int           `yaml:"max_request_size"`
	MaxPairs       int           `yaml:"max_pairs"`
	WarmUp         bool          `yaml:"warm_up"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset:   DefaultDataset,
		Workers:   0,
		NISTOrder: nist.DefaultMaxOrder,
		BLEUOrder: bleu.DefaultMaxOrder,
		Format:    DefaultFormat,
		Server: ServerConfig{
			Addr:           DefaultAddr,
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			MaxRequestSize: DefaultMaxRequestSize,
			MaxPairs:       DefaultMaxPairs,
			WarmUp:         true,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from STS_* variables looked up with lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidConfig, key, v, err)
		}
		*dst = n
		return nil
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidConfig, key, v, err)
		}
		*dst = b
		return nil
	}

	str("STS_DATA", &c.Dataset)
	str("STS_FORMAT", &c.Format)
	str("STS_LOG_FILE", &c.Log.File)
	str("STS_SERVER_ADDR", &c.Server.Addr)
	for _, f := range []func() error{
		func() error { return integer("STS_WORKERS", &c.Workers) },
		func() error { return integer("STS_NIST_ORDER", &c.NISTOrder) },
		func() error { return integer("STS_BLEU_ORDER", &c.BLEUOrder) },
		func() error { return integer("STS_MAX_PAIRS", &c.Server.MaxPairs) },
		func() error { return boolean("STS_LOG_JSON", &c.Log.JSON) },
		func() error { return boolean("STS_VERBOSE", &c.Log.Verbose) },
		func() error { return boolean("STS_WARM_UP", &c.Server.WarmUp) },
	} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", domain.ErrInvalidConfig)
	case c.NISTOrder < 1:
		return fmt.Errorf("%w: nist_order must be at least 1", domain.ErrInvalidConfig)
	case c.BLEUOrder < 1:
		return fmt.Errorf("%w: bleu_order must be at least 1", domain.ErrInvalidConfig)
	case c.Server.MaxRequestSize <= 0:
		return fmt.Errorf("%w: server.max_request_size must be greater than 0", domain.ErrInvalidConfig)
	case c.Server.MaxPairs <= 0:
		return fmt.Errorf("%w: server.max_pairs must be greater than 0", domain.ErrInvalidConfig)
	}
	switch c.Format {
	case "text", "table", "markdown", "json":
	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidConfig, c.Format)
	}
	return nil
}
