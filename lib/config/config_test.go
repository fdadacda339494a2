// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relaycord.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	timeout, err := cfg.SessionTimeout()
	if err != nil {
		t.Fatalf("SessionTimeout: %v", err)
	}
	if timeout != 7*time.Second {
		t.Errorf("expected timeout=7s, got %s", timeout)
	}
	if cfg.Gateway.Compression != "zlib-stream" {
		t.Errorf("expected compression=zlib-stream, got %s", cfg.Gateway.Compression)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when RELAYCORD_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "RELAYCORD_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, `
session:
  timeout: 15s
log:
  level: debug
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	timeout, _ := cfg.SessionTimeout()
	if timeout != 15*time.Second {
		t.Errorf("expected timeout=15s, got %s", timeout)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel: %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("expected debug level, got %s", level)
	}
	// Unset keys keep their defaults.
	if cfg.Log.Format != "auto" {
		t.Errorf("expected format=auto, got %s", cfg.Log.Format)
	}
}

func TestLoadFile_ProductionOverrides(t *testing.T) {
	t.Run("implicit", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, "environment: production\n"))
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("expected json logs in production, got %s", cfg.Log.Format)
		}
	})

	t.Run("explicit", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, `
environment: production
production:
  session:
    timeout: 30s
  gateway:
    compression: zstd-stream
development:
  session:
    timeout: 1s
`))
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		if cfg.Session.Timeout != "30s" {
			t.Errorf("expected production timeout, got %s", cfg.Session.Timeout)
		}
		if cfg.Gateway.Compression != "zstd-stream" {
			t.Errorf("expected zstd-stream, got %s", cfg.Gateway.Compression)
		}
		if cfg.Log.Format != "auto" {
			t.Errorf("explicit overrides replace the implicit production section; got format %s", cfg.Log.Format)
		}
	})
}

func TestLoadFile_ExpandsCatalogPath(t *testing.T) {
	t.Setenv("RELAYCORD_TEST_DIR", "/srv/catalogs")
	cfg, err := LoadFile(writeConfig(t, `
catalog:
  path: ${RELAYCORD_TEST_DIR}/commands.jsonc
`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Catalog.Path != "/srv/catalogs/commands.jsonc" {
		t.Errorf("catalog.path = %q", cfg.Catalog.Path)
	}
}

func TestExpandVars(t *testing.T) {
	vars := map[string]string{"HOME": "/home/operator"}
	tests := []struct {
		input string
		want  string
	}{
		{"${HOME}/catalog.json", "/home/operator/catalog.json"},
		{"${RELAYCORD_UNSET_VARIABLE:-/fallback}", "/fallback"},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"environment", func(c *Config) { c.Environment = "staging" }, "invalid environment"},
		{"timeout syntax", func(c *Config) { c.Session.Timeout = "soon" }, "session.timeout"},
		{"timeout sign", func(c *Config) { c.Session.Timeout = "-1s" }, "must be positive"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"compression", func(c *Config) { c.Gateway.Compression = "gzip" }, "gateway.compression"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not mention %q", err, test.wantErr)
			}
		})
	}
}
