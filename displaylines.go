package mdmath

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// DefaultMacro wraps multi-line math so MathJax honors the line breaks.
const DefaultMacro = "displaylines"

// lineBreak is the TeX line-break command that triggers wrapping.
const lineBreak = `\\`

// MathToolsPackage is the TeX extension that ships extra display environments.
// The extended variant of the normalizer loads it before startup.
const MathToolsPackage = "mathtools"

var (
	macroPattern   = regexp.MustCompile(`^[A-Za-z]+$`)
	packagePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// NormalizerOptions configures the display-lines normalizer.
type NormalizerOptions struct {
	// Macro is the wrapper control sequence without backslash.
	// Empty means DefaultMacro.
	Macro string

	// Packages lists TeX extensions to register for loading before startup,
	// e.g. []string{MathToolsPackage}. Nil gives the plain variant.
	Packages []string
}

// Validate checks the macro and package names.
func (o NormalizerOptions) Validate() error {
	if o.Macro != "" && !macroPattern.MatchString(o.Macro) {
		return fmt.Errorf("%w: %q (letters only, without backslash)", ErrInvalidMacro, o.Macro)
	}
	return validatePackages(o.Packages)
}

func (o NormalizerOptions) macro() string {
	if o.Macro == "" {
		return DefaultMacro
	}
	return o.Macro
}

func validatePackages(pkgs []string) error {
	for _, p := range pkgs {
		if !packagePattern.MatchString(p) {
			return fmt.Errorf("%w: %q", ErrInvalidPackage, p)
		}
	}
	return nil
}

// Normalizer wraps math containing a TeX line break in \displaylines{...}.
//
// The check is a plain substring match on `\\`: nothing is parsed, so
// malformed TeX is wrapped like any other source. Applying the normalizer
// twice wraps twice; callers run each expression through it once.
type Normalizer struct {
	prefix   string
	packages []string
}

// NewNormalizer creates a Normalizer from opts.
func NewNormalizer(opts NormalizerOptions) (*Normalizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Normalizer{
		prefix:   `\` + opts.macro() + "{",
		packages: slices.Clone(opts.Packages),
	}, nil
}

// Transform implements Filter.
func (n *Normalizer) Transform(e Expression) Expression {
	if NeedsDisplayLines(e.Source) {
		e.Source = n.prefix + e.Source + "}"
	}
	return e
}

// Packages returns the TeX extensions this normalizer expects to be loaded.
func (n *Normalizer) Packages() []string {
	return slices.Clone(n.packages)
}

// NeedsDisplayLines reports whether source contains a TeX line break.
func NeedsDisplayLines(source string) bool {
	return strings.Contains(source, lineBreak)
}

// Normalize applies the default normalizer to a single source string.
func Normalize(source string) string {
	if !NeedsDisplayLines(source) {
		return source
	}
	return `\` + DefaultMacro + "{" + source + "}"
}
