// Package config loads diagramkit settings from TOML or YAML files.
//
// Settings are layered, lowest priority first:
//
//  1. Defaults ([Default])
//  2. A config file, chosen by --config or DIAGRAMKIT_CONFIG
//  3. Environment variables (DIAGRAMKIT_CACHE_BACKEND, DIAGRAMKIT_CACHE_DIR,
//     DIAGRAMKIT_REDIS_ADDR, DIAGRAMKIT_REDIS_PASSWORD, DIAGRAMKIT_ADDR)
//  4. Command-line flags, applied by the CLI
//
// The file format is picked from the extension: .toml, or .yaml / .yml.
//
//	[theme]
//	primary = "#3b82f6"
//
//	[layout]
//	hgap = 320
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "DIAGRAMKIT_CONFIG"

// Defaults for the service and cache sections.
const (
	DefaultAddr        = ":8080"
	DefaultCacheTTL    = "168h"
	DefaultConcurrency = 4
)

// Config is the full set of file-configurable settings.
type Config struct {
	Theme  theme.Theme    `toml:"theme" yaml:"theme"`
	Layout layout.Options `toml:"layout" yaml:"layout"`
	Output Output         `toml:"output" yaml:"output"`
	Cache  Cache          `toml:"cache" yaml:"cache"`
	Server Server         `toml:"server" yaml:"server"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-" yaml:"-"`
}

// Output holds render settings.
type Output struct {
	IDs      string `toml:"ids" yaml:"ids" validate:"omitempty,oneof=counter uuid"`
	GridSize int    `toml:"grid_size" yaml:"grid_size" validate:"gte=0"`
	Detailed bool   `toml:"detailed" yaml:"detailed"`
}

// Cache selects and configures the translation cache.
type Cache struct {
	Backend       string `toml:"backend" yaml:"backend" validate:"omitempty,oneof=file redis none"`
	Dir           string `toml:"dir" yaml:"dir"`
	TTL           string `toml:"ttl" yaml:"ttl"`
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db" validate:"gte=0"`
	Prefix        string `toml:"prefix" yaml:"prefix"`
}

// Server configures the HTTP service.
type Server struct {
	Addr        string `toml:"addr" yaml:"addr" validate:"required"`
	Concurrency int    `toml:"concurrency" yaml:"concurrency" validate:"gte=1"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: theme.Default(),
		Output: Output{
			IDs: string(excalidraw.CounterIDs),
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     DefaultCacheTTL,
		},
		Server: Server{
			Addr:        DefaultAddr,
			Concurrency: DefaultConcurrency,
		},
	}
}

// Load reads path on top of the defaults, applies environment overrides
// and validates the result. An empty path falls back to DIAGRAMKIT_CONFIG;
// if that is unset too, only defaults and environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile decodes path into c. Keys absent from the file keep their
// current values.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	c.Source = path
	return nil
}

// applyEnv overrides fields from DIAGRAMKIT_* variables.
func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	set(&c.Cache.Backend, "DIAGRAMKIT_CACHE_BACKEND")
	set(&c.Cache.Dir, "DIAGRAMKIT_CACHE_DIR")
	set(&c.Cache.RedisAddr, "DIAGRAMKIT_REDIS_ADDR")
	set(&c.Cache.RedisPassword, "DIAGRAMKIT_REDIS_PASSWORD")
	set(&c.Server.Addr, "DIAGRAMKIT_ADDR")
}

// Validate checks field constraints, the redis address and the cache TTL.
func (c *Config) Validate() error {
	if err := errors.ValidateStruct(errors.ErrCodeInvalidConfig, c); err != nil {
		return err
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	return nil
}

// TTLDuration parses the TTL. Empty means cache.TTLTranslation.
func (c Cache) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return cache.TTLTranslation, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl: invalid duration %q", c.TTL)
	}
	return d, nil
}

// CacheOptions converts the cache section for [cache.Open]. dir is used
// when the section leaves Dir empty.
func (c Cache) CacheOptions(dir string) cache.Options {
	if c.Dir != "" {
		dir = c.Dir
	}
	return cache.Options{
		Backend: c.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		},
	}
}

// Keyer returns the cache keyer, scoped by Prefix when set.
func (c Cache) Keyer() cache.Keyer {
	if c.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
}

// PipelineOptions builds translation options for an input/output pair from
// the theme, layout and output sections.
func (c *Config) PipelineOptions(input, output string) pipeline.Options {
	return pipeline.Options{
		Input:    input,
		Output:   output,
		Layout:   c.Layout,
		Theme:    c.Theme,
		IDs:      excalidraw.IDStrategy(c.Output.IDs),
		GridSize: c.Output.GridSize,
		Detailed: c.Output.Detailed,
	}
}

// String renders the effective configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
