package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// - resolveConfig: we test the flag > env > config file > base priority.

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdmath/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MDMATH_CONFIG", "/path/to/config.yaml")
		t.Setenv("MDMATH_OUTPUT_DIR", "/site")
		t.Setenv("MDMATH_STYLE", "print")
		t.Setenv("MDMATH_MACRO", "breaklines")
		t.Setenv("MDMATH_MATHJAX_URL", "https://example.com/mathjax.js")
		t.Setenv("MDMATH_MODE", "browser")
		t.Setenv("MDMATH_WORKERS", "4")

		cfg := loadEnvConfig()

		want := envConfig{
			ConfigPath: "/path/to/config.yaml",
			OutputDir:  "/site",
			Style:      "print",
			Macro:      "breaklines",
			MathJaxURL: "https://example.com/mathjax.js",
			Mode:       "browser",
			Workers:    4,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("invalid workers ignored", func(t *testing.T) {
		for _, v := range []string{"abc", "-2", "0"} {
			t.Setenv("MDMATH_WORKERS", v)
			if cfg := loadEnvConfig(); cfg.Workers != 0 {
				t.Errorf("MDMATH_WORKERS=%q: Workers = %d, want 0", v, cfg.Workers)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDMATH_MACROS", "x")
	t.Setenv("MDMATH_STYLE", "print")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "unknown environment variable MDMATH_MACROS") {
		t.Errorf("expected warning for MDMATH_MACROS, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "MDMATH_STYLE") {
		t.Errorf("known variable should not warn: %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides config values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.CSS.Style = "default"
	cfg.Output.DefaultDir = "/from-config"

	applyEnvConfig(&envConfig{Style: "print", Mode: "browser"}, cfg)

	if cfg.CSS.Style != "print" {
		t.Errorf("CSS.Style = %q, want print", cfg.CSS.Style)
	}
	if cfg.Math.Mode != "browser" {
		t.Errorf("Math.Mode = %q, want browser", cfg.Math.Mode)
	}
	if cfg.Output.DefaultDir != "/from-config" {
		t.Errorf("unset env must keep config value, got %q", cfg.Output.DefaultDir)
	}
	if cfg.Math.Macro != config.DefaultMacro {
		t.Errorf("Math.Macro = %q, want default", cfg.Math.Macro)
	}
}

// ---------------------------------------------------------------------------
// TestResolveConfig
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "notes.yaml")
	writeFile(t, cfgPath, "math:\n  macro: breaklines\n  packages: [mathtools]\n")

	t.Run("env config path used without flag", func(t *testing.T) {
		t.Setenv("MDMATH_CONFIG", cfgPath)
		env, _, _ := newTestEnv()

		cfg, err := resolveConfig("", loadEnvConfig(), env)
		if err != nil {
			t.Fatalf("resolveConfig() error: %v", err)
		}
		if cfg.Math.Macro != "breaklines" {
			t.Errorf("Math.Macro = %q, want breaklines", cfg.Math.Macro)
		}
	})

	t.Run("env beats config file", func(t *testing.T) {
		t.Setenv("MDMATH_MACRO", "displaylines")
		env, _, _ := newTestEnv()

		cfg, err := resolveConfig(cfgPath, loadEnvConfig(), env)
		if err != nil {
			t.Fatalf("resolveConfig() error: %v", err)
		}
		if cfg.Math.Macro != "displaylines" {
			t.Errorf("Math.Macro = %q, want displaylines", cfg.Math.Macro)
		}
		if len(cfg.Math.Packages) != 1 {
			t.Errorf("Math.Packages = %v, want [mathtools]", cfg.Math.Packages)
		}
	})

	t.Run("base config copied", func(t *testing.T) {
		t.Setenv("MDMATH_STYLE", "print")
		env, _, _ := newTestEnv()

		if _, err := resolveConfig("", loadEnvConfig(), env); err != nil {
			t.Fatalf("resolveConfig() error: %v", err)
		}
		if env.Config.CSS.Style != "" {
			t.Errorf("base config mutated: CSS.Style = %q", env.Config.CSS.Style)
		}
	})

	t.Run("invalid env mode rejected", func(t *testing.T) {
		t.Setenv("MDMATH_MODE", "server")
		env, _, _ := newTestEnv()

		_, err := resolveConfig("", loadEnvConfig(), env)
		if !errors.Is(err, config.ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})
}
