// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "RELAYCORD_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use; logs are human-readable.
	Development Environment = "development"
	// Production is for long-running deployments.
	Production Environment = "production"
)

// Config is the master configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Session configures the interaction engine.
	Session SessionConfig `yaml:"session"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log"`

	// Gateway configures event stream decoding.
	Gateway GatewayConfig `yaml:"gateway"`

	// Catalog locates the application command index.
	Catalog CatalogConfig `yaml:"catalog"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Session *SessionConfig `yaml:"session,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
	Gateway *GatewayConfig `yaml:"gateway,omitempty"`
}

// SessionConfig configures invocation behaviour.
type SessionConfig struct {
	// Timeout bounds how long an invocation waits for its outcome
	// event, as a Go duration string.
	// Default: 7s
	Timeout string `yaml:"timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is one of auto, text, json. auto picks text when stderr
	// is a terminal and json otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// GatewayConfig configures event stream decoding.
type GatewayConfig struct {
	// Compression is one of none, zlib-stream, zstd-stream.
	// Default: zlib-stream
	Compression string `yaml:"compression"`
}

// CatalogConfig locates the command index file.
type CatalogConfig struct {
	// Path is a JSON or JSONC command index document. Empty means
	// commands must name the file explicitly.
	Path string `yaml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Environment: Development,
		Session: SessionConfig{
			Timeout: "7s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Gateway: GatewayConfig{
			Compression: "zlib-stream",
		},
	}
}

// Load loads configuration from the RELAYCORD_CONFIG environment
// variable. Fails if the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your relaycord.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, layered over
// [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.Catalog.Path = expandVars(cfg.Catalog.Path, map[string]string{
		"HOME": os.Getenv("HOME"),
	})
	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{Format: "json"},
			}
		}
	}
	if overrides == nil {
		return
	}

	if overrides.Session != nil && overrides.Session.Timeout != "" {
		c.Session.Timeout = overrides.Session.Timeout
	}
	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}
	if overrides.Gateway != nil && overrides.Gateway.Compression != "" {
		c.Gateway.Compression = overrides.Gateway.Compression
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// SessionTimeout parses Session.Timeout.
func (c *Config) SessionTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Session.Timeout)
	if err != nil {
		return 0, fmt.Errorf("session.timeout: %w", err)
	}
	return timeout, nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

var (
	logFormats   = []string{"auto", "text", "json"}
	compressions = []string{"none", "zlib-stream", "zstd-stream"}
)

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if timeout, err := c.SessionTimeout(); err != nil {
		errs = append(errs, err)
	} else if timeout <= 0 {
		errs = append(errs, fmt.Errorf("session.timeout must be positive, got %s", timeout))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}
	if !slices.Contains(compressions, c.Gateway.Compression) {
		errs = append(errs, fmt.Errorf("gateway.compression must be one of: %v", compressions))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
