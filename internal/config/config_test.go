package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"netwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "MONITOR_INTERVAL", "MONITOR_CAPACITY", "COUNTER_TIMEOUT",
		"TERMINAL_UI", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir()) // keep a stray .env out of the way
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, models.DefaultSettings(), cfg.Settings())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "netwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9090"
interval_seconds: 2.5
capacity: 120
counter_timeout: 500ms
terminal_ui: false
allowed_origins:
  - https://dash.example
`), 0o600))

	t.Setenv("MONITOR_CAPACITY", "30")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2.5, cfg.IntervalSeconds)
	assert.Equal(t, 30, cfg.Capacity)
	assert.Equal(t, 500*time.Millisecond, cfg.CounterTimeout)
	assert.False(t, cfg.TerminalUI)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://dash.example"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("MONITOR_INTERVAL", "0.5")
	t.Setenv("TERMINAL_UI", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.HTTPAddr, "an explicitly empty HTTP_ADDR disables the server")
	assert.Equal(t, 0.5, cfg.IntervalSeconds)
	assert.False(t, cfg.TerminalUI)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string][2]string{
		"bad interval": {"MONITOR_INTERVAL", "fast"},
		"bad capacity": {"MONITOR_CAPACITY", "1.5"},
		"bad timeout":  {"COUNTER_TIMEOUT", "-1s"},
		"bad bool":     {"TERMINAL_UI", "maybe"},
		"bad format":   {"LOG_FORMAT", "xml"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), kv[0])
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
