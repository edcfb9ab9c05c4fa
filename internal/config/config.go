package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tracepanel/internal/tracelog"
)

// Config is the resolved tracepanel configuration.
type Config struct {
	// Capacity bounds both the delivery queue and the ring of retained records.
	Capacity int
	// LogLevel is the lowest level the application loggers forward to the panel.
	LogLevel tracelog.Level
	// MetricsAddr serves Prometheus metrics when non-empty.
	MetricsAddr string
	Labels      tracelog.DisplayInfo
	Filter      tracelog.Filter
	Demo        Demo
}

// Demo controls the built-in instrumented workload.
type Demo struct {
	Enabled  bool
	Interval time.Duration
}

const (
	defaultConfigPath   = "~/.config/tracepanel/config.toml"
	defaultCapacity     = 1000
	defaultDemoInterval = 2 * time.Second

	envPrefix = "tracepanel"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Capacity: defaultCapacity,
		LogLevel: tracelog.LevelTrace,
		Labels:   tracelog.DefaultDisplayInfo(),
		Demo:     Demo{Enabled: true, Interval: defaultDemoInterval},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

type fileConfig struct {
	Capacity    *int   `toml:"capacity"`
	LogLevel    string `toml:"log_level"`
	MetricsAddr string `toml:"metrics_addr"`
	Labels      struct {
		Filter   string `toml:"filter"`
		Level    string `toml:"level"`
		Time     string `toml:"time"`
		SpanData string `toml:"span_data"`
		Data     string `toml:"data"`
		Message  string `toml:"message"`
	} `toml:"labels"`
	Filter struct {
		Level    string `toml:"level"`
		SpanData string `toml:"span_data"`
		Data     string `toml:"data"`
		Message  string `toml:"message"`
	} `toml:"filter"`
	Demo struct {
		Enabled  *bool  `toml:"enabled"`
		Interval string `toml:"interval"`
	} `toml:"demo"`
}

// envConfig holds TRACEPANEL_* overrides. Unset variables leave nil fields.
type envConfig struct {
	Capacity     *int           `split_words:"true"`
	LogLevel     *string        `split_words:"true"`
	MetricsAddr  *string        `split_words:"true"`
	DemoEnabled  *bool          `split_words:"true"`
	DemoInterval *time.Duration `split_words:"true"`
}

// Load reads the config file at path (the default location when empty),
// then applies TRACEPANEL_* environment overrides. A missing file is not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var raw fileConfig
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := cfg.applyFile(raw); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(raw fileConfig) error {
	if raw.Capacity != nil {
		c.Capacity = *raw.Capacity
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		lvl, err := tracelog.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		c.LogLevel = lvl
	}
	c.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	setLabel(&c.Labels.Filter, raw.Labels.Filter)
	setLabel(&c.Labels.Level, raw.Labels.Level)
	setLabel(&c.Labels.Time, raw.Labels.Time)
	setLabel(&c.Labels.SpanData, raw.Labels.SpanData)
	setLabel(&c.Labels.Data, raw.Labels.Data)
	setLabel(&c.Labels.Message, raw.Labels.Message)

	if v := strings.TrimSpace(raw.Filter.Level); v != "" {
		lvl, err := tracelog.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("filter.level: %w", err)
		}
		c.Filter.Level = &lvl
	}
	c.Filter.SpanData = raw.Filter.SpanData
	c.Filter.Data = raw.Filter.Data
	c.Filter.Message = raw.Filter.Message

	if raw.Demo.Enabled != nil {
		c.Demo.Enabled = *raw.Demo.Enabled
	}
	if v := strings.TrimSpace(raw.Demo.Interval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("demo.interval: %w", err)
		}
		c.Demo.Interval = d
	}
	return c.validate()
}

func (c *Config) applyEnv() error {
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if env.Capacity != nil {
		c.Capacity = *env.Capacity
	}
	if env.LogLevel != nil {
		lvl, err := tracelog.ParseLevel(*env.LogLevel)
		if err != nil {
			return fmt.Errorf("environment: log level: %w", err)
		}
		c.LogLevel = lvl
	}
	if env.MetricsAddr != nil {
		c.MetricsAddr = strings.TrimSpace(*env.MetricsAddr)
	}
	if env.DemoEnabled != nil {
		c.Demo.Enabled = *env.DemoEnabled
	}
	if env.DemoInterval != nil {
		c.Demo.Interval = *env.DemoInterval
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Demo.Interval <= 0 {
		return fmt.Errorf("demo interval must be positive, got %s", c.Demo.Interval)
	}
	return nil
}

func setLabel(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
