package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteLinks
// ---------------------------------------------------------------------------

func TestRewriteLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		outputDir    string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "same directory keeps image path",
			html:         `<img src="./images/plot.png">`,
			wantContains: []string{`src="./images/plot.png"`},
		},
		{
			name:         "markdown link points at html",
			html:         `<a href="other.md">Other</a>`,
			wantContains: []string{`href="other.html"`},
		},
		{
			name:         "markdown link keeps fragment",
			html:         `<a href="proofs/lemma.markdown#step-2">Lemma</a>`,
			wantContains: []string{`href="proofs/lemma.html#step-2"`},
		},
		{
			name:         "image rebased for other output dir",
			html:         `<img src="images/plot.png">`,
			sourceDir:    "/notes/algebra",
			outputDir:    "/site/algebra",
			wantContains: []string{`src="../../notes/algebra/images/plot.png"`},
		},
		{
			name:         "markdown link renamed, not rebased",
			html:         `<a href="./groups.md?x=1">Groups</a>`,
			sourceDir:    "/notes",
			outputDir:    "/notes/out",
			wantContains: []string{`href="./groups.html?x=1"`},
		},
		{
			name:         "non-markdown link rebased",
			html:         `<a href="slides.pdf">Slides</a>`,
			sourceDir:    "/notes",
			outputDir:    "/notes/out",
			wantContains: []string{`href="../slides.pdf"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#section">Link</a>`,
			sourceDir:    "/notes",
			outputDir:    "/site",
			wantContains: []string{`href="#section"`},
		},
		{
			name:         "external link unchanged",
			html:         `<a href="https://example.com/a.md">External</a>`,
			wantContains: []string{`href="https://example.com/a.md"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:me@example.com">Mail</a>`,
			wantContains: []string{`href="mailto:me@example.com"`},
		},
		{
			name:         "protocol-relative unchanged",
			html:         `<img src="//cdn.example.com/logo.png">`,
			sourceDir:    "/notes",
			outputDir:    "/site",
			wantContains: []string{`src="//cdn.example.com/logo.png"`},
		},
		{
			name:         "data URI unchanged",
			html:         `<img src="data:image/png;base64,ABC123">`,
			sourceDir:    "/notes",
			outputDir:    "/site",
			wantContains: []string{`src="data:image/png;base64,ABC123"`},
		},
		{
			name:         "non-markdown link not renamed",
			html:         `<a href="data.csv">Data</a>`,
			wantContains: []string{`href="data.csv"`},
			wantExcludes: []string{`.html`},
		},
		{
			name:         "full document preserved",
			html:         "<!DOCTYPE html><html><head><title>T</title></head><body><a href=\"x.md\">x</a></body></html>",
			wantContains: []string{"<title>T</title>", `href="x.html"`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteLinks(tt.html, tt.sourceDir, tt.outputDir)
			if err != nil {
				t.Fatalf("RewriteLinks() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteLinks() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteLinks() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"img.png", true},
		{"./img.png", true},
		{"../img.png", true},
		{"", false},
		{"#top", false},
		{"/abs.png", false},
		{"https://x.org", false},
		{"file:///x", false},
		{"//cdn.x.org/y", false},
	}

	for _, tt := range tests {
		if got := isRelativePath(tt.input); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
