package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// StyleNames lists the built-in style names.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
