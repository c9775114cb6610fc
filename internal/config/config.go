// Package config loads the backend configuration.
//
// Values merge in three layers: built-in defaults, then the TOML config
// file, then CODEPAD_* environment variables. The file is optional; a
// missing path is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Defaults.
const (
	DefaultListen      = "localhost:8640"
	DefaultWorkspace   = "uploads"
	DefaultExecTimeout = 10 * time.Second
	DefaultLogLevel    = "info"
)

// ErrInvalidConfig indicates a config value failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the backend settings.
type Config struct {
	// Listen is the address the API server binds to.
	Listen string `toml:"listen"`

	// Workspace is the directory holding stored files.
	Workspace string `toml:"workspace"`

	// ExecTimeoutSeconds bounds a single code execution.
	ExecTimeoutSeconds int `toml:"exec_timeout_seconds"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// CSRFToken, when set, is required on storage requests.
	CSRFToken string `toml:"csrf_token"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:             DefaultListen,
		Workspace:          DefaultWorkspace,
		ExecTimeoutSeconds: int(DefaultExecTimeout.Seconds()),
		LogLevel:           DefaultLogLevel,
	}
}

// ExecTimeout returns the execution timeout as a duration.
func (c Config) ExecTimeout() time.Duration {
	return time.Duration(c.ExecTimeoutSeconds) * time.Second
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if c.Workspace == "" {
		return fmt.Errorf("%w: workspace directory is empty", ErrInvalidConfig)
	}
	if c.ExecTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: exec_timeout_seconds must be positive", ErrInvalidConfig)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Load builds the configuration from defaults, the optional TOML file at
// path, and environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile merges the TOML file at path into cfg. A missing file is fine.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv merges CODEPAD_* environment variables into cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CODEPAD_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("CODEPAD_WORKSPACE"); v != "" {
		cfg.Workspace = v
	}
	if v := os.Getenv("CODEPAD_EXEC_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ExecTimeoutSeconds = n
		}
	}
	if v := os.Getenv("CODEPAD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CODEPAD_CSRF_TOKEN"); v != "" {
		cfg.CSRFToken = v
	}
}
