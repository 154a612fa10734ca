package assets

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed styles/*.css scripts/*.js.tmpl
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in CSS style.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(builtin, styleKind, name)
}

// LoadScript loads a built-in script template.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return readAsset(builtin, scriptKind, name)
}

// StyleNames lists the built-in style names, sorted.
func (e *EmbeddedLoader) StyleNames() []string {
	entries, err := fs.ReadDir(builtin, styleKind.dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	slices.Sort(names)
	return names
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
