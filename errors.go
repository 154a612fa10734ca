package mdmath

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Normalizer and startup errors.
	ErrInvalidMacro   = errors.New("invalid wrapper macro")
	ErrInvalidPackage = errors.New("invalid TeX package name")
	ErrStartup        = errors.New("startup ready hook failed")

	// Converter option errors.
	ErrInvalidMode           = errors.New("invalid render mode")
	ErrInvalidLoaderURL      = errors.New("invalid MathJax loader URL")
	ErrScriptRender          = errors.New("MathJax config rendering failed")
	ErrUnknownHighlightTheme = errors.New("unknown highlight theme")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
