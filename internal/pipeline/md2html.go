package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// ErrHTMLConversion indicates HTML conversion failed.
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// ErrUnknownHighlightTheme indicates the chroma theme is not registered.
	ErrUnknownHighlightTheme = errors.New("unknown highlight theme")
)

// DefaultHighlightTheme is the chroma style used for fenced code blocks.
const DefaultHighlightTheme = "github"

// documentShell is the page Goldmark's fragment is placed in. Head content
// (style, title, MathJax scripts) is injected later.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Document</title>
</head>
<body>
<main class="mdmath">
%s</main>
</body>
</html>`

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter renders placeholder-protected Markdown with goldmark.
// Code blocks are highlighted with chroma CSS classes; HighlightCSS returns
// the matching stylesheet.
type GoldmarkConverter struct {
	md    goldmark.Markdown
	theme *chroma.Style
}

// NewGoldmarkConverter builds a converter for the given chroma theme.
// An empty theme selects DefaultHighlightTheme.
func NewGoldmarkConverter(theme string) (*GoldmarkConverter, error) {
	if theme == "" {
		theme = DefaultHighlightTheme
	}
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightTheme, theme)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithCustomStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // anchors for nav and cross-page links
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md, theme: style}, nil
}

// HighlightThemes lists the registered chroma theme names, sorted.
func HighlightThemes() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HighlightCSS returns the stylesheet for the chroma classes emitted in code blocks.
func (c *GoldmarkConverter) HighlightCSS() (string, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, c.theme); err != nil {
		return "", fmt.Errorf("%w: highlight CSS: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// ToHTML converts Markdown to a standalone HTML5 document.
// Goldmark has no context support, so the conversion runs in a goroutine
// and ToHTML returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(documentShell, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
