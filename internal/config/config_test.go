package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Listen != DefaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, DefaultListen)
	}
	if cfg.Workspace != DefaultWorkspace {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, DefaultWorkspace)
	}
	if cfg.ExecTimeout() != DefaultExecTimeout {
		t.Errorf("ExecTimeout = %v, want %v", cfg.ExecTimeout(), DefaultExecTimeout)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codepad.toml")
	content := `
listen = "0.0.0.0:9000"
workspace = "/tmp/files"
exec_timeout_seconds = 30
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q, want %q", cfg.Listen, "0.0.0.0:9000")
	}
	if cfg.ExecTimeout() != 30*time.Second {
		t.Errorf("ExecTimeout = %v, want 30s", cfg.ExecTimeout())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Errorf("Load with missing file returned error: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codepad.toml")
	if err := os.WriteFile(path, []byte(`listen = "from-file:1"`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CODEPAD_LISTEN", "from-env:2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != "from-env:2" {
		t.Errorf("Listen = %q, want env override", cfg.Listen)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codepad.toml")
	if err := os.WriteFile(path, []byte(`listen = [`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load with invalid TOML returned nil error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty listen", func(c *Config) { c.Listen = "" }},
		{"empty workspace", func(c *Config) { c.Workspace = "" }},
		{"zero timeout", func(c *Config) { c.ExecTimeoutSeconds = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codepad.toml")
	if err := os.WriteFile(path, []byte(`listen = "first:1"`), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`listen = "second:2"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Listen != "second:2" {
			t.Errorf("reloaded Listen = %q, want %q", cfg.Listen, "second:2")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}
