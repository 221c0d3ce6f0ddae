package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration: defaults, overridden by an optional
// YAML file, overridden by environment variables. Site-level audit settings
// (base URL, keywords) are not here; those come from the canonical document.
type Config struct {
	// Home is the canonical document path relative to the site root. It is
	// both the configuration source and the site's home page.
	Home     string        `yaml:"home"`
	LogLevel string        `yaml:"log_level"`
	Checker  CheckerConfig `yaml:"checker"`
	Rules    RulesConfig   `yaml:"rules"`
	Ignore   IgnoreConfig  `yaml:"ignore"`
}

// CheckerConfig controls the external link checker.
type CheckerConfig struct {
	Concurrency       int  `yaml:"concurrency"`
	TimeoutSeconds    int  `yaml:"timeout_seconds"`
	BlockPrivateHosts bool `yaml:"block_private_hosts"`
}

// Timeout returns the per-probe timeout.
func (c CheckerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RulesConfig toggles optional audit rules.
type RulesConfig struct {
	// RequireNoopener warns on external links without rel="noopener".
	// Off by default: the build pipeline adds the attribute itself.
	RequireNoopener bool `yaml:"require_noopener"`
}

// IgnoreConfig lists extra ignore patterns appended to the built-in defaults.
type IgnoreConfig struct {
	Paths       []string `yaml:"paths"`
	Files       []string `yaml:"files"`
	URLPrefixes []string `yaml:"url_prefixes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Home:     "index.html",
		LogLevel: "info",
		Checker: CheckerConfig{
			Concurrency:       10,
			TimeoutSeconds:    5,
			BlockPrivateHosts: false,
		},
	}
}

// Load builds the runtime configuration. A missing file at path is only an
// error when explicit is true (the operator asked for that exact file).
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// Default location, nothing there: run on defaults.
		default:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.LogLevel = getEnv("SITELINT_LOG_LEVEL", cfg.LogLevel)
	cfg.Checker.Concurrency = getEnvAsInt("SITELINT_CONCURRENCY", cfg.Checker.Concurrency)
	cfg.Checker.TimeoutSeconds = getEnvAsInt("SITELINT_CHECK_TIMEOUT", cfg.Checker.TimeoutSeconds)

	return cfg, cfg.Validate()
}

// Validate checks that all values are inside their allowed ranges.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Home, validation.Required),
	); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := validation.ValidateStruct(&c.Checker,
		validation.Field(&c.Checker.Concurrency, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.Checker.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(120)),
	); err != nil {
		return fmt.Errorf("config: checker: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
