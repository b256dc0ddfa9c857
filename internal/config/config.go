// Package config loads startup configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"netwatch/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	IntervalSeconds float64       `yaml:"interval_seconds"`
	Capacity        int           `yaml:"capacity"`
	CounterTimeout  time.Duration `yaml:"counter_timeout"`
	TerminalUI      bool          `yaml:"terminal_ui"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	LogFile         string        `yaml:"log_file"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		HTTPAddr:        "localhost:8080",
		IntervalSeconds: models.DefaultIntervalSeconds,
		Capacity:        models.DefaultCapacity,
		CounterTimeout:  2 * time.Second,
		TerminalUI:      true,
		LogLevel:        "info",
		LogFormat:       LogFormatText,
	}
}

// Settings returns the runtime-adjustable part of the configuration
func (c *Config) Settings() models.MonitorSettings {
	return models.MonitorSettings{
		IntervalSeconds: c.IntervalSeconds,
		Capacity:        c.Capacity,
	}
}

// Load builds the configuration. path may be empty; a .env file in the
// working directory is loaded if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	switch cfg.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return nil, fmt.Errorf("LOG_FORMAT: unknown format %q", cfg.LogFormat)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if raw, ok := os.LookupEnv("HTTP_ADDR"); ok {
		cfg.HTTPAddr = raw
	}

	if raw := os.Getenv("MONITOR_INTERVAL"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("MONITOR_INTERVAL: %w", err)
		}
		cfg.IntervalSeconds = v
	}

	if raw := os.Getenv("MONITOR_CAPACITY"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("MONITOR_CAPACITY: %w", err)
		}
		cfg.Capacity = v
	}

	if raw := os.Getenv("COUNTER_TIMEOUT"); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("COUNTER_TIMEOUT: %w", err)
		}
		if v <= 0 {
			return fmt.Errorf("COUNTER_TIMEOUT: must be positive, got %s", raw)
		}
		cfg.CounterTimeout = v
	}

	if raw := os.Getenv("TERMINAL_UI"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("TERMINAL_UI: %w", err)
		}
		cfg.TerminalUI = v
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := os.Getenv("LOG_FORMAT"); raw != "" {
		cfg.LogFormat = raw
	}
	if raw := os.Getenv("LOG_FILE"); raw != "" {
		cfg.LogFile = raw
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	return nil
}
