// Package pipeline implements the Markdown-to-HTML stages behind mdmath.Converter.
//
// Stages, in order:
//   - Markdown preprocessing (line endings, blank lines, optional $$ block fixing)
//   - Math extraction into placeholder tokens, so Goldmark never sees TeX
//   - Markdown to HTML conversion via Goldmark
//   - Math restoration as MathJax-delimited spans
//   - CSS, title and MathJax script injection into <head>
//   - Relative link rebasing for a different output directory
//
// The pre-filter chain runs between extraction and restoration, in the root
// package. This package never changes math source.
package pipeline
