// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strconv"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdmath/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdmath") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightTheme returns hints for unknown code highlight themes.
func ForHighlightTheme() string {
	return format("use a chroma style name such as github, monokai or dracula")
}

// ForDocsDir returns hints when the docs tree for navigation cannot be found.
func ForDocsDir(dir string) string {
	return format("point --docs-dir at the mkdocs docs directory (tried " + dir + ")")
}

// ForBlogDirsMismatch returns hints when mkdocs.yml and the docs tree disagree.
func ForBlogDirsMismatch(missing, extra []string) string {
	var hints []string
	if len(missing) > 0 {
		hints = append(hints, "add to blogging.dirs: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		hints = append(hints, "remove from blogging.dirs: "+strings.Join(extra, ", "))
	}
	return formatHints(hints)
}

// ForUnbalancedMath returns a hint when a $$ block is never closed.
func ForUnbalancedMath(line int) string {
	return format("check the $$ block opened near line " + strconv.Itoa(line))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
