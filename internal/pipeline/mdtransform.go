package pipeline

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Math placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged, so math source never meets the
// Markdown parser (no emphasis on "_", no backslash escapes eaten).
// RestoreMath swaps them back after HTML generation.
const (
	MathStartPlaceholder = "\uE002" // U+E002: Private Use Area
	MathEndPlaceholder   = "\uE003" // U+E003: Private Use Area
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Fenced code block delimiter, allowing list/blockquote indentation
	fencedCodeBlock = regexp.MustCompile("^[> \t]*(`{3,}|~{3,})")

	// Placeholder token emitted by ExtractMath
	mathToken = regexp.MustCompile(MathStartPlaceholder + `(\d+)` + MathEndPlaceholder)
)

// fenceState follows fenced code blocks line by line. A block closes only on
// a fence of the same character, at least as long as the opening one, with
// nothing after it.
type fenceState struct {
	marker byte
	length int
}

// step consumes line and reports whether it belongs to a fenced block,
// its opening and closing fences included.
func (f *fenceState) step(line string) bool {
	m := fencedCodeBlock.FindStringSubmatch(line)
	if f.length == 0 {
		if m == nil {
			return false
		}
		f.marker, f.length = m[1][0], len(m[1])
		return true
	}
	if m != nil && m[1][0] == f.marker && len(m[1]) >= f.length &&
		strings.TrimSpace(line[len(m[0]):]) == "" {
		f.length = 0
	}
	return true
}

// open reports whether a fenced block is still unclosed.
func (f *fenceState) open() bool {
	return f.length > 0
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
// With FixBlocks set it also runs FixMathBlocks.
type CommonMarkPreprocessor struct {
	FixBlocks bool
}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	if p.FixBlocks {
		content = FixMathBlocks(content)
	}
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// MathSpan is one math expression lifted out of the Markdown source.
type MathSpan struct {
	Source  string // TeX between the delimiters
	Display bool   // $$...$$ (true) or $...$ (false)
}

// ExtractMath replaces every math span outside code with a placeholder token
// and returns the rewritten Markdown plus the spans in document order.
//
// Recognized delimiters:
//   - $$...$$ display math, may span lines
//   - $...$ inline math on one line; the opening $ must not be followed by
//     whitespace, the closing $ must not follow whitespace or precede a digit
//
// A backslash-escaped \$ is never a delimiter. Fenced code blocks and inline
// code spans are left untouched. Unclosed delimiters are kept as literal text.
func ExtractMath(content string) (string, []MathSpan) {
	protected := codeRanges(content)
	var (
		out   strings.Builder
		spans []MathSpan
	)
	out.Grow(len(content))

	i := 0
	for i < len(content) {
		if end, ok := protected[i]; ok {
			out.WriteString(content[i:end])
			i = end
			continue
		}

		c := content[i]
		if c == '\\' && i+1 < len(content) {
			out.WriteString(content[i : i+2])
			i += 2
			continue
		}
		if c != '$' {
			out.WriteByte(c)
			i++
			continue
		}

		if strings.HasPrefix(content[i:], "$$") {
			if end := findDisplayEnd(content, i+2, protected); end >= 0 {
				source := stripContainerPrefix(content[i+2:end], containerPrefix(content, i))
				spans = append(spans, MathSpan{Source: source, Display: true})
				writeToken(&out, len(spans)-1)
				i = end + 2
				continue
			}
			out.WriteString("$$")
			i += 2
			continue
		}

		if end := findInlineEnd(content, i+1, protected); end >= 0 {
			spans = append(spans, MathSpan{Source: content[i+1 : end]})
			writeToken(&out, len(spans)-1)
			i = end + 1
			continue
		}
		out.WriteByte(c)
		i++
	}

	return out.String(), spans
}

// containerPrefix returns the blockquote markers and indentation before the
// $$ at i, or "" when other text precedes it on the line.
func containerPrefix(content string, i int) string {
	start := strings.LastIndexByte(content[:i], '\n') + 1
	prefix := content[start:i]
	if strings.Trim(prefix, "> \t") != "" {
		return ""
	}
	return prefix
}

// stripContainerPrefix removes prefix from every continuation line of a
// display span, so "> " markers of a quoted block stay out of the TeX.
// A line holding only the trimmed prefix (">") counts as blank.
func stripContainerPrefix(source, prefix string) string {
	if prefix == "" || !strings.Contains(source, "\n") {
		return source
	}
	short := strings.TrimRight(prefix, " \t")
	lines := strings.Split(source, "\n")
	for j := 1; j < len(lines); j++ {
		switch {
		case strings.HasPrefix(lines[j], prefix):
			lines[j] = lines[j][len(prefix):]
		case short != "" && strings.HasPrefix(lines[j], short):
			lines[j] = lines[j][len(short):]
		}
	}
	return strings.Join(lines, "\n")
}

func writeToken(b *strings.Builder, idx int) {
	b.WriteString(MathStartPlaceholder)
	b.WriteString(strconv.Itoa(idx))
	b.WriteString(MathEndPlaceholder)
}

// findDisplayEnd returns the index of the closing $$ at or after from,
// or -1. Code ranges and escaped dollars are skipped.
func findDisplayEnd(content string, from int, protected map[int]int) int {
	for j := from; j < len(content)-1; j++ {
		if end, ok := protected[j]; ok {
			j = end - 1
			continue
		}
		if content[j] == '\\' {
			j++
			continue
		}
		if content[j] == '$' && content[j+1] == '$' {
			return j
		}
	}
	return -1
}

// findInlineEnd returns the index of the closing $ of an inline span that
// opened just before from, or -1.
func findInlineEnd(content string, from int, protected map[int]int) int {
	if from >= len(content) || isSpace(content[from]) || content[from] == '$' {
		return -1
	}
	for j := from; j < len(content); j++ {
		if _, ok := protected[j]; ok {
			return -1
		}
		switch content[j] {
		case '\n':
			return -1
		case '\\':
			j++
		case '$':
			if isSpace(content[j-1]) {
				continue
			}
			if j+1 < len(content) && content[j+1] >= '0' && content[j+1] <= '9' {
				continue
			}
			return j
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// codeRanges maps the start offset of every fenced code block and inline
// code span to its end offset (exclusive).
func codeRanges(content string) map[int]int {
	ranges := make(map[int]int)

	var fence fenceState
	offset := 0
	fenceStart := -1
	for _, line := range strings.SplitAfter(content, "\n") {
		wasOpen := fence.open()
		switch inFence := fence.step(line); {
		case !inFence:
			inlineCodeRanges(content, offset, offset+len(line), ranges)
		case !wasOpen:
			fenceStart = offset
		}
		if wasOpen && !fence.open() {
			ranges[fenceStart] = offset + len(line)
			fenceStart = -1
		}
		offset += len(line)
	}
	if fenceStart >= 0 {
		ranges[fenceStart] = len(content)
	}
	return ranges
}

// inlineCodeRanges records `code` spans within content[start:end].
// A span opened by N backticks closes at the next run of exactly N backticks.
func inlineCodeRanges(content string, start, end int, ranges map[int]int) {
	for i := start; i < end; {
		if content[i] != '`' {
			i++
			continue
		}
		run := backtickRun(content, i, end)
		closeAt := -1
		for j := i + run; j < end; {
			if content[j] != '`' {
				j++
				continue
			}
			n := backtickRun(content, j, end)
			if n == run {
				closeAt = j
				break
			}
			j += n
		}
		if closeAt < 0 {
			i += run
			continue
		}
		ranges[i] = closeAt + run
		i = closeAt + run
	}
}

func backtickRun(content string, i, end int) int {
	n := 0
	for i+n < end && content[i+n] == '`' {
		n++
	}
	return n
}

// RestoreMath replaces placeholder tokens in HTML with the span sources,
// HTML-escaped and wrapped in MathJax delimiters:
// <span class="math display">\[...\]</span> or <span class="math inline">\(...\)</span>.
// Tokens without a matching span are left as-is.
func RestoreMath(htmlContent string, spans []MathSpan) string {
	if len(spans) == 0 {
		return htmlContent
	}
	return mathToken.ReplaceAllStringFunc(htmlContent, func(tok string) string {
		idx, err := strconv.Atoi(tok[len(MathStartPlaceholder) : len(tok)-len(MathEndPlaceholder)])
		if err != nil || idx < 0 || idx >= len(spans) {
			return tok
		}
		span := spans[idx]
		if span.Display {
			return `<span class="math display">\[` + html.EscapeString(span.Source) + `\]</span>`
		}
		return `<span class="math inline">\(` + html.EscapeString(span.Source) + `\)</span>`
	})
}
