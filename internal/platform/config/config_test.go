package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Home != "index.html" {
		t.Errorf("Home = %q, want index.html", cfg.Home)
	}
	if cfg.Checker.Concurrency != 10 {
		t.Errorf("Concurrency = %d, want 10", cfg.Checker.Concurrency)
	}
	if cfg.Checker.Timeout() != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Checker.Timeout())
	}
	if cfg.Rules.RequireNoopener {
		t.Error("RequireNoopener must default to off")
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Fatal("an explicitly requested config file must exist")
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitelint.yaml")
	data := `
home: home.html
log_level: debug
checker:
  concurrency: 4
  timeout_seconds: 9
rules:
  require_noopener: true
ignore:
  files:
    - drafts
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Home != "home.html" || cfg.LogLevel != "debug" {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	if cfg.Checker.Concurrency != 4 || cfg.Checker.TimeoutSeconds != 9 {
		t.Errorf("checker overlay not applied: %+v", cfg.Checker)
	}
	if !cfg.Rules.RequireNoopener {
		t.Error("rules overlay not applied")
	}
	if len(cfg.Ignore.Files) != 1 || cfg.Ignore.Files[0] != "drafts" {
		t.Errorf("ignore overlay not applied: %+v", cfg.Ignore)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SITELINT_LOG_LEVEL", "error")
	t.Setenv("SITELINT_CONCURRENCY", "3")

	cfg, err := Load("", false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want env override", cfg.LogLevel)
	}
	if cfg.Checker.Concurrency != 3 {
		t.Errorf("Concurrency = %d, want env override 3", cfg.Checker.Concurrency)
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero concurrency", func(c *Config) { c.Checker.Concurrency = 0 }},
		{"excessive concurrency", func(c *Config) { c.Checker.Concurrency = 500 }},
		{"zero timeout", func(c *Config) { c.Checker.TimeoutSeconds = 0 }},
		{"empty home", func(c *Config) { c.Home = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
