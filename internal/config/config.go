package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxURLLength     = 2048 // Browser limit
	MaxMacroLength   = 64   // TeX control sequence name
	MaxPackageLength = 64   // TeX extension name
	MaxPackages      = 32
	MaxStyleLength   = 255
)

// DefaultMathJaxURL is the MathJax 3 combined TeX input / CHTML output bundle.
const DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// DefaultMacro is the multi-line display wrapper applied by the normalizer.
const DefaultMacro = "displaylines"

// macroName matches a TeX control sequence name made of letters only.
var macroName = regexp.MustCompile(`^[A-Za-z]+$`)

// packageName matches a MathJax TeX extension name ("mathtools", "ams", "color").
var packageName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Config holds all configuration for math preparation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	CSS    CSSConfig    `yaml:"css"`
	Assets AssetsConfig `yaml:"assets"`
	Math   MathConfig   `yaml:"math"`
	Docs   DocsConfig   `yaml:"docs"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style     string `yaml:"style"`     // Name of embedded style or path to a CSS file
	Highlight string `yaml:"highlight"` // Chroma theme for fenced code blocks
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// MathConfig defines how math expressions are normalized and loaded.
type MathConfig struct {
	Macro      string   `yaml:"macro"`      // Display wrapper macro (default: displaylines)
	Packages   []string `yaml:"packages"`   // TeX extensions loaded before startup (e.g. mathtools)
	FixBlocks  bool     `yaml:"fixBlocks"`  // Run the $$ block fixer before rendering
	MathJaxURL string   `yaml:"mathjaxURL"` // Loader script URL (default: jsDelivr MathJax 3)
	NoScript   bool     `yaml:"noScript"`   // Skip MathJax config/loader injection
	Mode       string   `yaml:"mode"`       // "prerender" (default) or "browser"
}

// DocsConfig defines the mkdocs tree used for navigation generation.
type DocsConfig struct {
	Dir         string   `yaml:"dir"`         // Docs directory (default: docs)
	MkdocsFile  string   `yaml:"mkdocsFile"`  // mkdocs.yml path (default: mkdocs.yml)
	ExcludeDirs []string `yaml:"excludeDirs"` // Non-category dirs (default: assets, css, js)
}

// Validate checks field lengths and value formats.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("css.highlight", c.CSS.Highlight, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Validate math fields
	if err := validateFieldLength("math.macro", c.Math.Macro, MaxMacroLength); err != nil {
		return err
	}
	if c.Math.Macro != "" && !macroName.MatchString(c.Math.Macro) {
		return fmt.Errorf("%w: math.macro %q (letters only, without backslash)", ErrInvalidField, c.Math.Macro)
	}
	if len(c.Math.Packages) > MaxPackages {
		return fmt.Errorf("%w: math.packages has %d entries (max %d)", ErrInvalidField, len(c.Math.Packages), MaxPackages)
	}
	for i, pkg := range c.Math.Packages {
		field := fmt.Sprintf("math.packages[%d]", i)
		if err := validateFieldLength(field, pkg, MaxPackageLength); err != nil {
			return err
		}
		if !packageName.MatchString(pkg) {
			return fmt.Errorf("%w: %s %q", ErrInvalidField, field, pkg)
		}
	}
	if err := validateFieldLength("math.mathjaxURL", c.Math.MathJaxURL, MaxURLLength); err != nil {
		return err
	}
	switch c.Math.Mode {
	case "", "prerender", "browser":
	default:
		return fmt.Errorf("%w: math.mode %q (prerender or browser)", ErrInvalidField, c.Math.Mode)
	}

	// Validate docs fields
	if err := validateFieldLength("docs.dir", c.Docs.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("docs.mkdocsFile", c.Docs.MkdocsFile, MaxPathLength); err != nil {
		return err
	}
	for i, dir := range c.Docs.ExcludeDirs {
		if strings.ContainsAny(dir, "/\\") {
			return fmt.Errorf("%w: docs.excludeDirs[%d] %q must be a directory name", ErrInvalidField, i, dir)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// The normalizer uses \displaylines without extra TeX packages.
func DefaultConfig() *Config {
	return &Config{
		Math: MathConfig{
			Macro:      DefaultMacro,
			MathJaxURL: DefaultMathJaxURL,
		},
		Docs: DocsConfig{
			Dir:         "docs",
			MkdocsFile:  "mkdocs.yml",
			ExcludeDirs: []string{"assets", "css", "js"},
		},
	}
}

// applyDefaults fills zero values left empty by a config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Math.Macro == "" {
		c.Math.Macro = def.Math.Macro
	}
	if c.Math.MathJaxURL == "" {
		c.Math.MathJaxURL = def.Math.MathJaxURL
	}
	if c.Docs.Dir == "" {
		c.Docs.Dir = def.Docs.Dir
	}
	if c.Docs.MkdocsFile == "" {
		c.Docs.MkdocsFile = def.Docs.MkdocsFile
	}
	if c.Docs.ExcludeDirs == nil {
		c.Docs.ExcludeDirs = def.Docs.ExcludeDirs
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order:
// current directory, then ~/.config/go-mdmath/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdmath", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
