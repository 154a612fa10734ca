package assets

import "errors"

// Resolver looks an asset up in each layer in turn. A layer that does not
// have the asset passes to the next one; any other error stops the lookup.
type Resolver struct {
	layers []AssetLoader
}

// NewResolver stacks an asset directory over the embedded assets, so the
// directory can override single files. An empty dir uses embedded assets only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{}
	if dir != "" {
		d, err := NewDirLoader(dir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, d)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the first layer's style with this name.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadScript returns the first layer's script template with this name.
func (r *Resolver) LoadScript(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

func (r *Resolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrScriptNotFound) {
			return "", err
		}
	}
	return "", err
}

var _ AssetLoader = (*Resolver)(nil)
