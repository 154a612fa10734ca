package mdmath

import (
	"fmt"
	"slices"
)

// Mode selects where the display-lines normalizer runs.
type Mode string

const (
	// ModePrerender runs the pre-filter chain in Go while converting. The
	// emitted MathJax config loads packages but registers no pre-filter.
	ModePrerender Mode = "prerender"

	// ModeBrowser leaves math source untouched. The emitted MathJax config
	// registers the pre-filter, so MathJax normalizes at startup.
	ModeBrowser Mode = "browser"
)

// Validate checks that m is a known mode.
func (m Mode) Validate() error {
	switch m {
	case ModePrerender, ModeBrowser:
		return nil
	}
	return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidMode, m, ModePrerender, ModeBrowser)
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string // Markdown content (required)
	Title     string // Document <title> (optional)
	CSS       string // Custom CSS appended after the style (optional)
	SourceDir string // Directory of the Markdown file, for link rebasing (optional)
	OutputDir string // Directory of the HTML file, for link rebasing (optional)
}

// ConvertResult is the output of a conversion.
type ConvertResult struct {
	HTML        []byte // Complete HTML5 document
	Expressions int    // Math expressions found outside code
	Rewritten   int    // Expressions changed by the pre-filter chain
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	styleInput     string
	resolved       string
	highlightTheme string
	assetPath      string
	loaderURL      string
	mode           Mode
	normalizer     NormalizerOptions
	fixBlocks      bool
	noScript       bool
}

// DefaultMathJaxURL is the MathJax 3 bundle with TeX input and CHTML output.
const DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// WithStyle sets the CSS style: a built-in name, a file path, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithHighlightTheme sets the chroma theme for fenced code blocks.
// See HighlightThemes for accepted names.
func WithHighlightTheme(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightTheme = name
	}
}

// WithAssetPath sets a directory with styles/ and scripts/ overriding the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithMathJaxURL sets the MathJax loader script URL.
func WithMathJaxURL(url string) Option {
	return func(c *Converter) {
		c.cfg.loaderURL = url
	}
}

// WithMode selects prerender or browser normalization.
func WithMode(m Mode) Option {
	return func(c *Converter) {
		c.cfg.mode = m
	}
}

// WithNormalizer sets the wrapper macro and the TeX packages to load.
func WithNormalizer(opts NormalizerOptions) Option {
	return func(c *Converter) {
		c.cfg.normalizer = NormalizerOptions{
			Macro:    opts.Macro,
			Packages: slices.Clone(opts.Packages),
		}
	}
}

// WithFixBlocks enables the $$ block fixer before conversion.
func WithFixBlocks(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.fixBlocks = enabled
	}
}

// WithNoScript omits the MathJax config and loader scripts from the output.
func WithNoScript() Option {
	return func(c *Converter) {
		c.cfg.noScript = true
	}
}
