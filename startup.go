package mdmath

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Document is the typesetting document created at startup.
// It owns the input processor's pre-filter chain.
type Document struct {
	preFilters FilterChain
}

// PreFilters returns the chain every expression passes through before typesetting.
func (d *Document) PreFilters() *FilterChain {
	return &d.preFilters
}

// StartupConfig configures Init. The zero value is valid.
type StartupConfig struct {
	// OnReady runs once, after DefaultReady, with the freshly created document.
	// A non-nil error aborts Init.
	OnReady func(*Document) error

	// Packages lists TeX extensions registered for loading before startup.
	Packages []string

	// DefaultReady replaces the built-in default initializer.
	// Embedding hosts use it to install their own default pre-filters.
	DefaultReady func(*Document)
}

// Handle is the started typesetting host.
type Handle struct {
	doc        *Document
	packages   []string
	readyCalls int
}

// Init creates the document, runs the default ready initializer, then
// cfg.OnReady. The order is fixed: filters added by OnReady always come after
// the default pre-filters.
func Init(cfg StartupConfig) (*Handle, error) {
	if err := validatePackages(cfg.Packages); err != nil {
		return nil, err
	}

	h := &Handle{
		doc:      &Document{},
		packages: slices.Clone(cfg.Packages),
	}

	ready := cfg.DefaultReady
	if ready == nil {
		ready = DefaultReady
	}
	ready(h.doc)
	h.readyCalls++

	if cfg.OnReady != nil {
		if err := cfg.OnReady(h.doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStartup, err)
		}
	}
	return h, nil
}

// DefaultReady installs the host's default pre-filters:
// line endings inside math source are normalized to \n.
func DefaultReady(doc *Document) {
	doc.PreFilters().Add(FilterFunc(normalizeMathLineEndings))
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeMathLineEndings(e Expression) Expression {
	e.Source = lineEndings.Replace(e.Source)
	return e
}

// Document returns the document created by Init.
func (h *Handle) Document() *Document {
	return h.doc
}

// Packages returns the TeX extensions registered for loading.
func (h *Handle) Packages() []string {
	return slices.Clone(h.packages)
}

// ReadyCalls returns how many times the default ready initializer ran.
func (h *Handle) ReadyCalls() int {
	return h.readyCalls
}

// Typeset runs e through the pre-filter chain exactly once and returns the
// expression handed to the TeX processor.
func (h *Handle) Typeset(ctx context.Context, e Expression) (Expression, error) {
	if err := ctx.Err(); err != nil {
		return e, err
	}
	return h.doc.preFilters.Apply(e), nil
}

// DisplayLinesStartup returns the startup configuration that registers the
// display-lines normalizer. Its OnReady appends exactly one pre-filter.
// opts.Packages are registered for loading.
func DisplayLinesStartup(opts NormalizerOptions) StartupConfig {
	return StartupConfig{
		Packages: slices.Clone(opts.Packages),
		OnReady: func(doc *Document) error {
			n, err := NewNormalizer(opts)
			if err != nil {
				return err
			}
			doc.PreFilters().Add(n)
			return nil
		},
	}
}
