package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirLoader serves assets from a directory laid out like the embedded tree.
// Symlinks are followed only while they stay inside the directory.
type DirLoader struct {
	root string
	fsys fs.FS
}

// NewDirLoader opens dir as an asset tree.
// Returns ErrInvalidAssetDir unless dir is an existing, readable directory.
func NewDirLoader(dir string) (*DirLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidAssetDir)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetDir, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	info, err := os.Stat(root)
	switch {
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetDir, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidAssetDir, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetDir, err)
	}

	return &DirLoader{root: root, fsys: os.DirFS(root)}, nil
}

// LoadStyle loads {dir}/styles/{name}.css.
func (d *DirLoader) LoadStyle(name string) (string, error) {
	return d.load(styleKind, name)
}

// LoadScript loads {dir}/scripts/{name}.js.tmpl.
func (d *DirLoader) LoadScript(name string) (string, error) {
	return d.load(scriptKind, name)
}

func (d *DirLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if err := d.contain(k.path(name)); err != nil {
		return "", err
	}
	return readAsset(d.fsys, k, name)
}

// contain fails when rel resolves, through symlinks, to a file outside root.
// Missing files pass; the read reports them.
func (d *DirLoader) contain(rel string) error {
	resolved, err := filepath.EvalSymlinks(filepath.Join(d.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil
	}
	if !strings.HasPrefix(resolved, d.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideAssetDir, rel)
	}
	return nil
}

var _ AssetLoader = (*DirLoader)(nil)
