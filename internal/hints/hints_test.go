package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with user config path",
			paths:    []string{"./math.yaml", "/home/u/.config/go-mdmath/math.yaml"},
			contains: "or create /home/u/.config/go-mdmath/math.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	hint := ForStyleNotFound([]string{"default", "print"})
	if !strings.Contains(hint, "default, print") {
		t.Errorf("expected style list, got %q", hint)
	}
}

func TestForHighlightTheme(t *testing.T) {
	if hint := ForHighlightTheme(); !strings.Contains(hint, "monokai") {
		t.Errorf("expected theme examples, got %q", hint)
	}
}

func TestForBlogDirsMismatch(t *testing.T) {
	tests := []struct {
		name    string
		missing []string
		extra   []string
		want    string
	}{
		{
			name: "nothing to report",
			want: "",
		},
		{
			name:    "missing only",
			missing: []string{"topology"},
			want:    "\n  hint: add to blogging.dirs: topology",
		},
		{
			name:    "both",
			missing: []string{"a"},
			extra:   []string{"b", "c"},
			want:    "\n  hint: add to blogging.dirs: a; remove from blogging.dirs: b, c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForBlogDirsMismatch(tt.missing, tt.extra); got != tt.want {
				t.Errorf("ForBlogDirsMismatch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForUnbalancedMath(t *testing.T) {
	hint := ForUnbalancedMath(42)
	if !strings.Contains(hint, "line 42") {
		t.Errorf("expected line number, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	hints := []string{
		ForOutputDirectory(),
		ForDocsDir("docs"),
		ForUnbalancedMath(3),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
