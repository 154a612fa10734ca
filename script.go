package mdmath

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/alnah/go-mdmath/internal/assets"
)

// ScriptOptions configures the browser-side MathJax configuration.
type ScriptOptions struct {
	Macro    string   // Wrapper macro; empty means DefaultMacro
	Packages []string // TeX extensions for loader.load and tex.packages
	Filter   bool     // Register the display-lines pre-filter in the browser

	// AssetPath is a directory whose scripts/mathjax-config.js.tmpl replaces
	// the embedded template. Empty uses the embedded template.
	AssetPath string
}

// scriptData is the template context of the mathjax-config script.
type scriptData struct {
	Macro    string
	Packages []string
	Filter   bool
}

// ConfigScript renders the window.MathJax configuration from the embedded
// template, or from opts.AssetPath when set. The snippet must be evaluated
// before the MathJax loader script.
func ConfigScript(opts ScriptOptions) (string, error) {
	resolver, err := assets.NewResolver(opts.AssetPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return renderConfigScript(resolver, opts)
}

func renderConfigScript(loader assets.AssetLoader, opts ScriptOptions) (string, error) {
	nopts := NormalizerOptions{Macro: opts.Macro, Packages: opts.Packages}
	if err := nopts.Validate(); err != nil {
		return "", err
	}

	src, err := loader.LoadScript(assets.MathJaxConfigScript)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScriptRender, err)
	}
	tmpl, err := template.New(assets.MathJaxConfigScript).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parsing template: %w", ErrScriptRender, err)
	}

	var buf bytes.Buffer
	data := scriptData{
		Macro:    nopts.macro(),
		Packages: opts.Packages,
		Filter:   opts.Filter,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrScriptRender, err)
	}
	return buf.String(), nil
}
