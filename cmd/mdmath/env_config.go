package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdmath/internal/config"
	"github.com/alnah/go-mdmath/internal/hints"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDMATH_CONFIG: config file name or path
	OutputDir  string // MDMATH_OUTPUT_DIR: default output directory
	Style      string // MDMATH_STYLE: CSS style name or path
	Macro      string // MDMATH_MACRO: display wrapper macro
	MathJaxURL string // MDMATH_MATHJAX_URL: loader script URL
	Mode       string // MDMATH_MODE: prerender or browser
	Workers    int    // MDMATH_WORKERS: parallel workers
}

// knownEnvVars lists valid MDMATH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDMATH_CONFIG":      true,
	"MDMATH_OUTPUT_DIR":  true,
	"MDMATH_STYLE":       true,
	"MDMATH_MACRO":       true,
	"MDMATH_MATHJAX_URL": true,
	"MDMATH_MODE":        true,
	"MDMATH_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDMATH_CONFIG"),
		OutputDir:  os.Getenv("MDMATH_OUTPUT_DIR"),
		Style:      os.Getenv("MDMATH_STYLE"),
		Macro:      os.Getenv("MDMATH_MACRO"),
		MathJaxURL: os.Getenv("MDMATH_MATHJAX_URL"),
		Mode:       os.Getenv("MDMATH_MODE"),
	}

	// Invalid or negative worker counts are ignored
	if workers := os.Getenv("MDMATH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDMATH_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDMATH_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with the environment variables
// that are set. Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.Macro != "" {
		cfg.Math.Macro = env.Macro
	}
	if env.MathJaxURL != "" {
		cfg.Math.MathJaxURL = env.MathJaxURL
	}
	if env.Mode != "" {
		cfg.Math.Mode = env.Mode
	}
}

// resolveConfig loads the config named by the flag or MDMATH_CONFIG, falls
// back to the environment's base config, then applies env overrides.
func resolveConfig(flagConfig string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			var hint string
			if errors.Is(err, config.ErrConfigNotFound) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		if env.Config != nil {
			base := *env.Config
			cfg = &base
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
