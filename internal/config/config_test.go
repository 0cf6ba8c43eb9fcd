package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"store": "sqlite",
		"path": "resume.db",
		"debounce_ms": 250,
		"log_format": "json"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "resume.db", cfg.Path)
	assert.Equal(t, 250, cfg.DebounceMS)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_YAMLExpandsEnv(t *testing.T) {
	t.Setenv("TEST_REDIS_URL", "redis://localhost:6379/2")
	path := writeFile(t, "config.yaml", `
store: redis
redis_url: ${TEST_REDIS_URL}
addr: "localhost:9090"
pdf_timeout_seconds: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, "localhost:9090", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.PDFTimeout())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yml", "store: [unclosed")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"RESUEXPRESS_STORE":       "postgres",
		"DATABASE_URL":            "postgres://localhost/resuexpress",
		"RESUEXPRESS_DEBOUNCE_MS": "750",
		"RESUEXPRESS_LOG_LEVEL":   "debug",
	}

	cfg, err := FromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, "postgres://localhost/resuexpress", cfg.DatabaseURL)
	assert.Equal(t, 750, cfg.DebounceMS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.Path)
}

func TestFromEnv_InvalidInt(t *testing.T) {
	_, err := FromEnv(func(k string) string {
		if k == "RESUEXPRESS_DEBOUNCE_MS" {
			return "soon"
		}
		return ""
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESUEXPRESS_DEBOUNCE_MS")
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"unknown store", func(c *Config) { c.Store = "mongo" }, "'store'"},
		{"postgres without url", func(c *Config) { c.Store = "postgres" }, "database_url"},
		{"redis without url", func(c *Config) { c.Store = "redis" }, "redis_url"},
		{"sqlite without path", func(c *Config) {
			c.Store = "sqlite"
			c.Path = ""
		}, "requires 'path'"},
		{"negative debounce", func(c *Config) { c.DebounceMS = -1 }, "debounce_ms"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"bad address", func(c *Config) { c.Addr = "not an address" }, "addr"},
		{"missing stylesheet", func(c *Config) { c.Stylesheet = "/nonexistent/style.css" }, "stylesheet file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidate_MemoryNeedsNothing(t *testing.T) {
	cfg := &Config{Store: "memory"}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()

	partial := Config{
		Store:      "sqlite",
		Path:       "custom.db",
		DebounceMS: 100,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "sqlite", merged.Store)
	assert.Equal(t, "custom.db", merged.Path)
	assert.Equal(t, 100, merged.DebounceMS)

	// Default values should fill in empty fields
	assert.Equal(t, "resuexpressData", merged.Key)
	assert.Equal(t, "127.0.0.1:8080", merged.Addr)
	assert.Equal(t, 30, merged.PDFTimeoutSeconds)
	assert.Equal(t, "info", merged.LogLevel)
}

func TestMergeWithDefaults_Layering(t *testing.T) {
	file := Config{Store: "redis", RedisURL: "redis://file"}
	env := Config{RedisURL: "redis://env"}
	flags := Config{LogLevel: "debug"}

	base := file.MergeWithDefaults(Defaults())
	withEnv := env.MergeWithDefaults(base)
	final := flags.MergeWithDefaults(withEnv)

	assert.Equal(t, "redis", final.Store)
	assert.Equal(t, "redis://env", final.RedisURL)
	assert.Equal(t, "debug", final.LogLevel)
	assert.Equal(t, 500, final.DebounceMS)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Store: "memory"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, Config{Store: "memory"}, merged)
}
