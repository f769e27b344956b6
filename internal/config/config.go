// Package config resolves service settings from defaults, an optional YAML
// file and LECTERN_* environment variables. Flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "lectern.yaml"

// Config holds every runtime setting.
type Config struct {
	Port                string      `yaml:"port"`
	MaxBodyBytes        int64       `yaml:"max_body_bytes"`
	MaxConcurrentBuilds int         `yaml:"max_concurrent_builds"`
	Development         bool        `yaml:"development"`
	LogLevel            string      `yaml:"log_level"`
	LogFormat           string      `yaml:"log_format"`
	Metrics             bool        `yaml:"metrics"`
	DecksDir            string      `yaml:"decks_dir"`
	Fetch               FetchConfig `yaml:"fetch"`
	Cache               CacheConfig `yaml:"cache"`
}

// FetchConfig controls image resolution.
type FetchConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxBytes        int64         `yaml:"max_bytes"`
	AllowLocalFiles bool          `yaml:"allow_local_files"`
	BaseDir         string        `yaml:"base_dir"`
}

// CacheConfig selects the image cache. An empty RedisAddr uses the in-process cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	RedisAddr string        `yaml:"redis_addr"`
	Prefix    string        `yaml:"prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:                "8080",
		MaxBodyBytes:        10 << 20,
		MaxConcurrentBuilds: 8,
		LogLevel:            "info",
		LogFormat:           "text",
		Metrics:             true,
		Fetch: FetchConfig{
			Timeout:  5 * time.Second,
			MaxBytes: 20 << 20,
		},
		Cache: CacheConfig{
			Enabled: true,
			Prefix:  "lectern:img:",
			TTL:     time.Hour,
		},
	}
}

// Load resolves settings. path names a YAML file that must exist; an empty
// path reads DefaultFile only if present. lookup reads the environment and
// defaults to os.LookupEnv.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if lookup == nil {
		lookup = os.LookupEnv
	}

	file, required := path, true
	if file == "" {
		file, required = DefaultFile, false
	}
	if err := cfg.readFile(file, required); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays LECTERN_* variables. PORT is honoured for platforms that inject it.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int64) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("PORT", &c.Port)
	str("LECTERN_PORT", &c.Port)
	integer("LECTERN_MAX_BODY_BYTES", &c.MaxBodyBytes)
	builds := int64(c.MaxConcurrentBuilds)
	integer("LECTERN_MAX_CONCURRENT_BUILDS", &builds)
	c.MaxConcurrentBuilds = int(builds)
	boolean("LECTERN_DEV", &c.Development)
	str("LECTERN_LOG_LEVEL", &c.LogLevel)
	str("LECTERN_LOG_FORMAT", &c.LogFormat)
	boolean("LECTERN_METRICS", &c.Metrics)
	str("LECTERN_DECKS_DIR", &c.DecksDir)
	duration("LECTERN_FETCH_TIMEOUT", &c.Fetch.Timeout)
	integer("LECTERN_FETCH_MAX_BYTES", &c.Fetch.MaxBytes)
	boolean("LECTERN_ALLOW_LOCAL_FILES", &c.Fetch.AllowLocalFiles)
	str("LECTERN_BASE_DIR", &c.Fetch.BaseDir)
	boolean("LECTERN_CACHE", &c.Cache.Enabled)
	str("LECTERN_REDIS_ADDR", &c.Cache.RedisAddr)
	duration("LECTERN_CACHE_TTL", &c.Cache.TTL)

	return errors.Join(errs...)
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max_body_bytes must be positive"))
	}
	if c.MaxConcurrentBuilds <= 0 {
		errs = append(errs, errors.New("max_concurrent_builds must be positive"))
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, errors.New("fetch.max_bytes must be positive"))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log_format %q: use text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q", s)
	}
	return l, nil
}
