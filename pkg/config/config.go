// Package config loads orbit's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/orbit/config.toml (or
// ~/.config/orbit/config.toml) unless a path is given explicitly:
//
//	[layout]
//	width = 800
//	height = 600
//	margin = 20
//	curve_formula = "signed"
//
//	[render]
//	style = "simple"
//	node_radius = 6
//	show_labels = true
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//	database = "orbit"
//
// Values left out fall back to [Default]. Command-line flags override the
// file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

const appName = "orbit"

// Config is the decoded configuration file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout defaults.
type LayoutConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	Margin       float64 `toml:"margin"`
	CurveFormula string  `toml:"curve_formula"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Style      string  `toml:"style"`
	Engine     string  `toml:"engine"`
	NodeRadius float64 `toml:"node_radius"`
	ShowLabels bool    `toml:"show_labels"`
}

// CacheConfig selects the cache backend. RedisURL wins over Dir.
type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

// ServerConfig configures orbit serve.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	MongoURI        string   `toml:"mongo_uri"`
	Database        string   `toml:"database"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Width:        pipeline.DefaultWidth,
			Height:       pipeline.DefaultHeight,
			Margin:       20,
			CurveFormula: pipeline.DefaultCurveFormula,
		},
		Render: RenderConfig{
			Style:      pipeline.DefaultStyle,
			Engine:     pipeline.DefaultEngine,
			NodeRadius: pipeline.DefaultNodeRadius,
			ShowLabels: true,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Database:        appName,
			ReadTimeout:     Duration{30 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    4 << 20,
		},
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path over [Default].
//
// An empty path means [DefaultPath]; a missing default file is not an
// error. A missing explicit file is FILE_NOT_FOUND. Syntax errors, unknown
// keys and invalid values are INVALID_CONFIG.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML text over [Default] without touching the filesystem.
func Decode(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section with the pipeline's validators.
func (c *Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes cannot be negative")
	}
	return nil
}

// PipelineOptions converts the layout and render sections.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:        c.Layout.Width,
		Height:       c.Layout.Height,
		Margin:       c.Layout.Margin,
		CurveFormula: c.Layout.CurveFormula,
		Style:        c.Render.Style,
		Engine:       c.Render.Engine,
		NodeRadius:   c.Render.NodeRadius,
		ShowLabels:   c.Render.ShowLabels,
	}
}

// CacheDir returns the file cache directory, defaulting to
// $XDG_CACHE_HOME/orbit or ~/.cache/orbit.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
