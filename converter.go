package mdmath

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdmath/internal/assets"
	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.ScriptInjector       = (*pipeline.ScriptInjection)(nil)
	_ Filter                        = (*Normalizer)(nil)
)

// Converter turns Markdown with TeX math into an HTML document ready for MathJax.
// Create with NewConverter. Convert is safe for concurrent use.
type Converter struct {
	cfg            converterConfig
	assetLoader    assets.AssetLoader
	preprocessor   pipeline.MarkdownPreprocessor
	htmlConverter  pipeline.HTMLConverter
	cssInjector    pipeline.CSSInjector
	scriptInjector pipeline.ScriptInjector
	handle         *Handle
	script         string
	highlightCSS   string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithMode, WithNormalizer).
// Returns error if an option is invalid, asset loading fails, or startup fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			styleInput: DefaultStyle,
			loaderURL:  DefaultMathJaxURL,
			mode:       ModePrerender,
		},
		assetLoader:    assets.NewEmbeddedLoader(),
		cssInjector:    &pipeline.CSSInjection{},
		scriptInjector: &pipeline.ScriptInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.mode.Validate(); err != nil {
		return nil, err
	}
	if c.cfg.loaderURL != "" && !fileutil.IsURL(c.cfg.loaderURL) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLoaderURL, c.cfg.loaderURL)
	}
	if c.preprocessor == nil {
		c.preprocessor = &pipeline.CommonMarkPreprocessor{FixBlocks: c.cfg.fixBlocks}
	}
	if c.htmlConverter == nil {
		gc, err := pipeline.NewGoldmarkConverter(c.cfg.highlightTheme)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightTheme, c.cfg.highlightTheme)
		}
		if c.highlightCSS, err = gc.HighlightCSS(); err != nil {
			return nil, err
		}
		c.htmlConverter = gc
	}

	// An asset directory is layered over the embedded assets
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	handle, err := Init(DisplayLinesStartup(c.cfg.normalizer))
	if err != nil {
		return nil, err
	}
	c.handle = handle

	if !c.cfg.noScript {
		c.script, err = renderConfigScript(c.assetLoader, ScriptOptions{
			Macro:    c.cfg.normalizer.Macro,
			Packages: handle.Packages(),
			Filter:   c.cfg.mode == ModeBrowser,
		})
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Mode returns where normalization happens for this converter.
func (c *Converter) Mode() Mode {
	return c.cfg.mode
}

// ConfigScript returns the MathJax configuration injected into documents,
// or "" when scripts are disabled.
func (c *Converter) ConfigScript() string {
	return c.script
}

// Convert runs the full pipeline and returns the HTML document.
// In prerender mode every math expression passes through the pre-filter
// chain exactly once. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Lift math out before Goldmark sees it
	mdContent, spans := pipeline.ExtractMath(mdContent)
	res := &ConvertResult{Expressions: len(spans)}

	if c.cfg.mode == ModePrerender {
		for i, span := range spans {
			out, err := c.handle.Typeset(ctx, Expression{Source: span.Source, Display: span.Display})
			if err != nil {
				return nil, err
			}
			if out.Source != span.Source {
				res.Rewritten++
			}
			spans[i].Source = out.Source
		}
	}

	// Convert to HTML
	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}
	htmlContent = pipeline.RestoreMath(htmlContent, spans)

	// Highlight theme, then converter style, user CSS last so it can override
	cssContent := c.cfg.resolved
	if c.highlightCSS != "" && strings.Contains(htmlContent, `class="chroma"`) {
		cssContent = joinCSS(c.highlightCSS, cssContent)
	}
	cssContent = joinCSS(cssContent, input.CSS)
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	htmlContent = pipeline.InjectTitle(htmlContent, input.Title)

	if !c.cfg.noScript {
		htmlContent = c.scriptInjector.InjectScripts(ctx, htmlContent, &pipeline.ScriptData{
			Config:    c.script,
			LoaderURL: c.cfg.loaderURL,
		})
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Point .md links at the rendered pages, rebasing when the HTML lands elsewhere
	htmlContent, err = pipeline.RewriteLinks(htmlContent, input.SourceDir, input.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting links: %w", err)
	}

	res.HTML = []byte(htmlContent)
	return res, nil
}

func joinCSS(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "\n" + b
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter after options are applied and asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil // explicit empty style: no CSS
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolved = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolved = input
		return nil
	}

	// Style name -> use asset loader
	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolved = css
	return nil
}
