package main

import (
	"errors"
	"os"

	mdmath "github.com/alnah/go-mdmath"
	"github.com/alnah/go-mdmath/internal/config"
	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/navs"
)

// Exit codes for the mdmath CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, failed files, pending fixes
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, fileutil.ErrNoMarkdownFiles) ||
		errors.Is(err, navs.ErrDocsDirNotFound) ||
		errors.Is(err, navs.ErrIndexNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mdmath.ErrEmptyMarkdown) ||
		errors.Is(err, mdmath.ErrInvalidMacro) ||
		errors.Is(err, mdmath.ErrInvalidPackage) ||
		errors.Is(err, mdmath.ErrInvalidMode) ||
		errors.Is(err, mdmath.ErrInvalidLoaderURL) ||
		errors.Is(err, mdmath.ErrStyleNotFound) ||
		errors.Is(err, mdmath.ErrUnknownHighlightTheme) ||
		errors.Is(err, mdmath.ErrInvalidAssetPath) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
