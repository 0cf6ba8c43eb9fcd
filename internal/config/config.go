// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the wizard. It can be loaded from a JSON or YAML file,
// from the environment, and from CLI flags; empty fields fall through to the next
// source via MergeWithDefaults.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty" yaml:"store" validate:"omitempty,oneof=memory file sqlite postgres redis"`
	Path        string `json:"path,omitempty" yaml:"path"`                 // Document file (file) or database file (sqlite)
	Key         string `json:"key,omitempty" yaml:"key"`                   // Storage key of the document blob
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url"`       // Redis connection URL

	// Server
	Addr string `json:"addr,omitempty" yaml:"addr" validate:"omitempty,hostname_port"`

	// Behavior
	DebounceMS        int    `json:"debounce_ms,omitempty" yaml:"debounce_ms" validate:"gte=0,lte=60000"`
	Stylesheet        string `json:"stylesheet,omitempty" yaml:"stylesheet"`   // CSS embedded into exports; watched for changes
	ChromePath        string `json:"chrome_path,omitempty" yaml:"chrome_path"` // Browser binary for PDF export
	PDFTimeoutSeconds int    `json:"pdf_timeout_seconds,omitempty" yaml:"pdf_timeout_seconds" validate:"gte=0"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format" validate:"omitempty,oneof=text json"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Store:             "file",
		Path:              "resuexpress.json",
		Key:               "resuexpressData",
		Addr:              "127.0.0.1:8080",
		DebounceMS:        500,
		PDFTimeoutSeconds: 30,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// YAML files may reference environment variables as ${VAR}.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads RESUEXPRESS_* variables plus DATABASE_URL and REDIS_URL.
// Unset variables leave their fields empty.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Store:       getenv("RESUEXPRESS_STORE"),
		Path:        getenv("RESUEXPRESS_PATH"),
		Key:         getenv("RESUEXPRESS_KEY"),
		DatabaseURL: getenv("DATABASE_URL"),
		RedisURL:    getenv("REDIS_URL"),
		Addr:        getenv("RESUEXPRESS_ADDR"),
		Stylesheet:  getenv("RESUEXPRESS_STYLESHEET"),
		ChromePath:  getenv("RESUEXPRESS_CHROME_PATH"),
		LogLevel:    getenv("RESUEXPRESS_LOG_LEVEL"),
		LogFormat:   getenv("RESUEXPRESS_LOG_FORMAT"),
	}

	var err error
	if cfg.DebounceMS, err = envInt(getenv, "RESUEXPRESS_DEBOUNCE_MS"); err != nil {
		return Config{}, err
	}
	if cfg.PDFTimeoutSeconds, err = envInt(getenv, "RESUEXPRESS_PDF_TIMEOUT_SECONDS"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(getenv func(string) string, name string) (int, error) {
	raw := getenv(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer: %w", name, err)
	}
	return n, nil
}

// Validate checks field formats and the settings each storage backend requires.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Store {
	case "file", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("config error: store %q requires 'path'", c.Store)
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: store %q requires 'database_url'", c.Store)
		}
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("config error: store %q requires 'redis_url'", c.Store)
		}
	}

	if c.Stylesheet != "" {
		if _, err := os.Stat(c.Stylesheet); os.IsNotExist(err) {
			return fmt.Errorf("config error: stylesheet file not found: %s", c.Stylesheet)
		}
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// Debounce returns the autosave quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// PDFTimeout returns the limit for one PDF print job.
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.PDFTimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over environment over config file over built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.Path == "" {
		result.Path = defaults.Path
	}
	if result.Key == "" {
		result.Key = defaults.Key
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.Stylesheet == "" {
		result.Stylesheet = defaults.Stylesheet
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.DebounceMS == 0 {
		result.DebounceMS = defaults.DebounceMS
	}
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}

	return result
}
