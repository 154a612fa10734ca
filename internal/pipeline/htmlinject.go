package pipeline

import (
	"context"
	"html"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// ScriptInjector defines the contract for script injection into HTML.
type ScriptInjector interface {
	InjectScripts(ctx context.Context, htmlContent string, scripts *ScriptData) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	return injectIntoHead(htmlContent, "<style>"+sanitizeClosing(cssContent, "</style")+"</style>")
}

// ScriptData holds the MathJax scripts placed in the document head.
// The inline config must come before the loader so MathJax finds it on startup.
type ScriptData struct {
	Config    string // Inline window.MathJax = {...} configuration
	LoaderURL string // MathJax bundle URL (empty = no loader tag)
}

// ScriptInjection injects the MathJax configuration and loader scripts.
type ScriptInjection struct{}

// InjectScripts inserts the config <script> followed by the async loader
// <script src> before </head>. If scripts is nil, returns htmlContent unchanged.
func (s *ScriptInjection) InjectScripts(ctx context.Context, htmlContent string, scripts *ScriptData) string {
	if scripts == nil || (scripts.Config == "" && scripts.LoaderURL == "") {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	var block strings.Builder
	if scripts.Config != "" {
		block.WriteString("<script>\n")
		block.WriteString(sanitizeClosing(scripts.Config, "</script"))
		block.WriteString("\n</script>\n")
	}
	if scripts.LoaderURL != "" {
		block.WriteString(`<script id="MathJax-script" async src="`)
		block.WriteString(html.EscapeString(scripts.LoaderURL))
		block.WriteString(`"></script>`)
		block.WriteString("\n")
	}

	return injectIntoHead(htmlContent, block.String())
}

// InjectTitle replaces the content of the first <title> element.
// An empty title leaves the document unchanged.
func InjectTitle(htmlContent, title string) string {
	if title == "" {
		return htmlContent
	}
	lower := strings.ToLower(htmlContent)
	start := strings.Index(lower, "<title>")
	if start == -1 {
		return htmlContent
	}
	start += len("<title>")
	end := strings.Index(lower[start:], "</title>")
	if end == -1 {
		return htmlContent
	}
	return htmlContent[:start] + html.EscapeString(title) + htmlContent[start+end:]
}

// injectIntoHead inserts block before </head>, else after <body...>,
// else prepends it.
func injectIntoHead(htmlContent, block string) string {
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + block + htmlContent[insertPos:]
		}
	}

	return block + htmlContent
}

// sanitizeClosing escapes "</" before a closing tag name so raw text cannot
// terminate its <style> or <script> element early. Matching is
// case-insensitive; other "</" sequences are left alone.
func sanitizeClosing(content, closingTag string) string {
	lower := strings.ToLower(content)
	if !strings.Contains(lower, closingTag) {
		return content
	}
	var b strings.Builder
	b.Grow(len(content) + 8)
	i := 0
	for {
		idx := strings.Index(lower[i:], closingTag)
		if idx == -1 {
			b.WriteString(content[i:])
			return b.String()
		}
		b.WriteString(content[i : i+idx])
		b.WriteString(`<\/`)
		i += idx + 2
	}
}
