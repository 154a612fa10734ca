// Package mdmath prepares Markdown documents with TeX math for MathJax.
//
// # Display-Math Normalizer
//
// MathJax typesets a TeX line break (\\) only inside environments that allow
// one. The normalizer wraps any math source containing \\ in
// \displaylines{...}, so multi-line display math written without an
// environment still breaks where the author intended:
//
//	mdmath.Normalize(`a=1 \\ b=2`) // \displaylines{a=1 \\ b=2}
//	mdmath.Normalize(`\frac{1}{2}`) // unchanged
//
// The check is a substring match; nothing is parsed. The normalizer is not
// idempotent, so every host in this package runs an expression through it once.
//
// # Startup and Filters
//
// Init mirrors the MathJax startup sequence: it creates a Document, runs the
// default ready initializer, then the caller's OnReady hook, which usually
// appends filters to the document's pre-filter chain:
//
//	h, err := mdmath.Init(mdmath.DisplayLinesStartup(mdmath.NormalizerOptions{}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	expr, err := h.Typeset(ctx, mdmath.Expression{Source: `x \\ y`})
//
// # HTML Conversion
//
// Converter renders Markdown to a standalone HTML document:
//
//	conv, err := mdmath.NewConverter(
//	    mdmath.WithStyle("print"),
//	    mdmath.WithNormalizer(mdmath.NormalizerOptions{Packages: []string{"mathtools"}}),
//	)
//	result, err := conv.Convert(ctx, mdmath.Input{Markdown: content})
//
// The pipeline stages are:
//
//  1. Markdown preprocessing (line endings, optional $$ block fixing)
//  2. Math extraction into placeholders, outside code
//  3. Pre-filter chain, in ModePrerender
//  4. Markdown to HTML via Goldmark (GFM, footnotes, syntax highlighting)
//  5. Math restoration as \[...\] and \(...\) spans
//  6. CSS, title and MathJax script injection
//  7. Link rewriting (.md to .html, rebasing for another output directory)
//
// In ModeBrowser the Go side leaves math untouched and the injected
// window.MathJax configuration registers the pre-filter instead. Either way
// each expression is wrapped once.
//
// # Browser Configuration
//
// ConfigScript renders the window.MathJax snippet for pages rendered by other
// tools (mkdocs, static site generators):
//
//	js, err := mdmath.ConfigScript(mdmath.ScriptOptions{Filter: true})
//
// # Custom Assets
//
// Override built-in styles and the script template with WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── scripts/
//	    └── mathjax-config.js.tmpl
package mdmath
