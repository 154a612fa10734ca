package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// AssetLoader loads CSS styles and MathJax script templates by name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadScript returns scripts/{name}.js.tmpl, or ErrScriptNotFound.
	LoadScript(name string) (string, error)
}

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// MathJaxConfigScript is the name of the browser-side MathJax configuration template.
const MathJaxConfigScript = "mathjax-config"

// kind describes where one type of asset lives inside an asset tree.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind  = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	scriptKind = kind{dir: "scripts", ext: ".js.tmpl", notFound: ErrScriptNotFound}
)

// path returns the slash-separated location of name inside an asset tree.
func (k kind) path(name string) string {
	return k.dir + "/" + name + k.ext
}

// ValidateAssetName rejects names that could escape the asset directory or
// change the file extension: empty names and names containing '/', '\' or '.'.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// readAsset validates name and reads it from fsys.
// Missing files map to the kind's not-found sentinel.
func readAsset(fsys fs.FS, k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(fsys, k.path(name))
	if err != nil {
		if isMissing(err) {
			return "", fmt.Errorf("%w: %q", k.notFound, name)
		}
		return "", fmt.Errorf("reading %s: %w", k.path(name), err)
	}
	return string(data), nil
}

// isMissing reports whether err means the asset file does not exist.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
