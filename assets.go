package mdmath

import (
	"errors"

	"github.com/alnah/go-mdmath/internal/assets"
	"github.com/alnah/go-mdmath/internal/pipeline"
)

// DefaultStyle is the name of the built-in CSS style.
const DefaultStyle = assets.DefaultStyleName

// StyleNames lists the built-in styles accepted by WithStyle.
func StyleNames() []string {
	return assets.StyleNames()
}

// DefaultHighlightTheme is the chroma theme used for fenced code blocks.
const DefaultHighlightTheme = pipeline.DefaultHighlightTheme

// HighlightThemes lists the theme names accepted by WithHighlightTheme.
func HighlightThemes() []string {
	return pipeline.HighlightThemes()
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	case errors.Is(err, assets.ErrInvalidAssetDir):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrOutsideAssetDir):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error keeps the original message and matches the sentinel
// with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
