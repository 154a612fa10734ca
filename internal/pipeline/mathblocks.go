package pipeline

import (
	"regexp"
	"strings"
)

// Editors such as Typora accept $$ blocks glued to surrounding text, but
// CommonMark needs block-level constructs separated by blank lines.
// FixMathBlocks rewrites such documents so the blocks survive conversion.

var (
	// A line holding only $$, optionally behind blockquote markers or indentation
	mathBlockDelimiter = regexp.MustCompile(`^([>\s]*)\$\$\s*$`)

	// A dollar with the whitespace around it
	paddedDollar = regexp.MustCompile(`\s*\$\s*`)
)

// indentWidth is the list indentation CommonMark expects for nested content.
const indentWidth = 4

// FixMathBlocks normalizes $$ math blocks for CommonMark:
//   - a blank line, carrying the delimiter's quote prefix, is ensured before
//     the opening $$ and after the closing $$
//   - leading indentation is rounded up to a multiple of four spaces
//   - on other lines holding "$", "$$" becomes "$" and whitespace around
//     every "$" is removed: "see $$ x $$ here" becomes "see$x$here"
//
// Fenced code blocks are copied unchanged.
func FixMathBlocks(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	var fence fenceState

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if fence.step(line) {
			result = append(result, line)
			continue
		}

		line = fixIndent(fixInlineMath(line))
		prefix, ok := mathBlockPrefix(line)
		if !ok {
			result = append(result, line)
			continue
		}

		// Opening delimiter
		if len(result) > 0 && !isBlankForPrefix(result[len(result)-1], prefix) {
			result = append(result, prefix)
		}
		result = append(result, line)

		// Copy the body up to and including the closing delimiter
		for i++; i < len(lines); i++ {
			next := fixIndent(lines[i])
			result = append(result, next)

			closing, ok := mathBlockPrefix(next)
			if !ok {
				continue
			}
			if i+1 < len(lines) && !isBlankForPrefix(lines[i+1], closing) {
				result = append(result, closing)
			}
			break
		}
	}

	return strings.Join(result, "\n")
}

// UnclosedMathBlockLine returns the 1-based line number of a $$ delimiter
// that is never closed, or 0 when every block is balanced.
func UnclosedMathBlockLine(content string) int {
	open := 0
	var fence fenceState
	for i, line := range strings.Split(content, "\n") {
		if fence.step(line) {
			continue
		}
		if _, ok := mathBlockPrefix(line); !ok {
			continue
		}
		if open == 0 {
			open = i + 1
		} else {
			open = 0
		}
	}
	return open
}

// mathBlockPrefix reports whether line is a $$ delimiter and returns what
// precedes it ("> ", "    ", ...).
func mathBlockPrefix(line string) (string, bool) {
	m := mathBlockDelimiter.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// isBlankForPrefix reports whether line is empty apart from the prefix,
// e.g. ">" inside a blockquote.
func isBlankForPrefix(line, prefix string) bool {
	return strings.TrimSpace(line) == strings.TrimSpace(prefix)
}

// fixInlineMath rewrites a text line containing "$" to tight inline math:
// "$$" becomes "$" and whitespace touching any "$" is dropped.
// Delimiter lines are left alone.
func fixInlineMath(line string) string {
	if !strings.Contains(line, "$") {
		return line
	}
	if _, ok := mathBlockPrefix(line); ok {
		return line
	}
	line = strings.ReplaceAll(line, "$$", "$")
	return paddedDollar.ReplaceAllLiteralString(line, "$")
}

// fixIndent rounds leading spaces up to the next multiple of indentWidth.
func fixIndent(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	leading := len(line) - len(trimmed)
	if leading == 0 || trimmed == "" {
		return line
	}
	level := (leading + indentWidth - 1) / indentWidth
	return strings.Repeat(" ", level*indentWidth) + trimmed
}
