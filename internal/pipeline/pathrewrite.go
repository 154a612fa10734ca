package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteLinks adjusts relative img[src] and a[href] values for an HTML file
// written to outputDir from a Markdown file in sourceDir:
//   - links to .md/.markdown files point at the rendered .html page, which
//     sits at the same relative place in the output tree, so they are not
//     rebased
//   - other paths are rebased so they still resolve from outputDir
//
// Query strings and #fragments are preserved. URLs, anchors, absolute paths
// and data URIs are left alone. Empty sourceDir or outputDir means "same
// directory" and disables rebasing.
func RewriteLinks(htmlContent, sourceDir, outputDir string) (string, error) {
	rebase := ""
	if sourceDir != "" && outputDir != "" {
		absSource, err := filepath.Abs(sourceDir)
		if err != nil {
			return "", err
		}
		absOutput, err := filepath.Abs(outputDir)
		if err != nil {
			return "", err
		}
		if absSource != absOutput {
			rebase, err = filepath.Rel(absOutput, absSource)
			if err != nil {
				return "", err
			}
		}
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, rebase)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.TrimSpace(content)

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype") ||
		strings.HasPrefix(strings.ToLower(trimmed), "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		// Render each child directly
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	// Full document: render normally
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rewrites relative paths.
func rewriteNode(n *html.Node, rebase string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", rebase, false)
		case atom.A:
			rewriteAttr(n, "href", rebase, true)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, rebase)
	}
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(n *html.Node, attrName, rebase string, isLink bool) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		target, suffix := splitSuffix(attr.Val)
		if target == "" {
			continue
		}
		if isLink {
			if rendered, ok := markdownToHTML(target); ok {
				n.Attr[i].Val = rendered + suffix
				continue
			}
		}
		if rebase != "" {
			target = path.Join(filepath.ToSlash(rebase), target)
		}
		n.Attr[i].Val = target + suffix
	}
}

// splitSuffix separates a URL path from its ?query and #fragment.
func splitSuffix(val string) (string, string) {
	if idx := strings.IndexAny(val, "?#"); idx != -1 {
		return val[:idx], val[idx:]
	}
	return val, ""
}

// markdownToHTML swaps a .md/.markdown extension for .html and reports
// whether target was a markdown file.
func markdownToHTML(target string) (string, bool) {
	if decoded, err := url.PathUnescape(target); err == nil {
		ext := path.Ext(decoded)
		if ext == ".md" || ext == ".markdown" {
			return strings.TrimSuffix(target, path.Ext(target)) + ".html", true
		}
	}
	return target, false
}

// isRelativePath returns true if the value is a relative file reference.
// URLs with a scheme (http:, data:, mailto:), protocol-relative URLs,
// anchors and absolute paths are not.
func isRelativePath(val string) bool {
	switch {
	case val == "",
		strings.HasPrefix(val, "#"),
		strings.HasPrefix(val, "/"),
		strings.Contains(val, ":"),
		filepath.IsAbs(val):
		return false
	}
	return true
}
