// Package assets provides the CSS styles and the MathJax config template
// placed into rendered pages.
//
// Three loaders implement AssetLoader. EmbeddedLoader serves the files
// compiled into the binary. DirLoader serves a directory on disk. Resolver
// stacks a directory over the embedded files, so a directory holding only
// scripts/mathjax-config.js.tmpl still gets the built-in styles.
//
// An asset tree looks like:
//
//	styles/{name}.css
//	scripts/{name}.js.tmpl
//
// The mathjax-config template receives .Macro, .Packages and .Filter.
//
// Names may not contain separators or dots. DirLoader refuses files whose
// symlinks resolve outside the directory.
package assets
