package assets

import "errors"

// Sentinel errors for asset lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")

	// Asset directory errors.
	ErrInvalidAssetDir = errors.New("invalid asset directory")
	ErrOutsideAssetDir = errors.New("asset resolves outside asset directory")
)
