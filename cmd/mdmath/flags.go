package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// mathFlags holds normalizer and MathJax loading flags.
// The *Set fields record whether a boolean was given explicitly, so that
// false on the command line can override true in the config.
type mathFlags struct {
	macro        string
	packages     []string
	mode         string
	mathjaxURL   string
	fixBlocks    bool
	fixBlocksSet bool
	noScript     bool
	noScriptSet  bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    string
	workers   int
	title     string
	style     string
	highlight string
	assetPath string
	math      mathFlags
}

// fixFlags holds flags for the fix command.
type fixFlags struct {
	common commonFlags
	check  bool
}

// navsFlags holds flags for the navs command.
type navsFlags struct {
	common     commonFlags
	docsDir    string
	mkdocs     string
	exclude    []string
	excludeSet bool
	dryRun     bool
	noCheck    bool
}

// snippetFlags holds flags for the snippet command.
type snippetFlags struct {
	common     commonFlags
	macro      string
	packages   []string
	mathjaxURL string
	output     string
	assetPath  string
	noFilter   bool
	html       bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addMathFlags adds normalizer flags to a FlagSet.
func addMathFlags(fs *flag.FlagSet, f *mathFlags) {
	fs.StringVar(&f.macro, "macro", "", "display wrapper macro (default displaylines)")
	fs.StringSliceVar(&f.packages, "package", nil, "TeX extension to load (repeatable, e.g. mathtools)")
	fs.StringVar(&f.mode, "mode", "", "normalize in Go (prerender) or in MathJax (browser)")
	fs.StringVar(&f.mathjaxURL, "mathjax-url", "", "MathJax loader script URL")
	fs.BoolVar(&f.fixBlocks, "fix-blocks", false, "fix $$ block layout before rendering")
	fs.BoolVar(&f.noScript, "no-script", false, "omit MathJax scripts from the output")
}

// newFlagSet creates a FlagSet that reports parse errors to stderr and
// prints usage to stdout on -h.
func newFlagSet(name string, stdout, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stdout) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, env *Environment) (*renderFlags, []string, error) {
	fs := newFlagSet("render", env.Stdout, env.Stderr, printRenderUsage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.title, "title", "", "document title (default: first heading)")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or CSS content")
	fs.StringVar(&f.highlight, "highlight", "", "chroma theme for code blocks")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)
	addMathFlags(fs, &f.math)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.math.fixBlocksSet = fs.Changed("fix-blocks")
	f.math.noScriptSet = fs.Changed("no-script")

	return f, fs.Args(), nil
}

// parseFixFlags parses fix command flags and returns positional args.
func parseFixFlags(args []string, env *Environment) (*fixFlags, []string, error) {
	fs := newFlagSet("fix", env.Stdout, env.Stderr, printFixUsage)
	f := &fixFlags{}

	fs.BoolVar(&f.check, "check", false, "report files needing fixes without writing")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseNavsFlags parses navs command flags and returns positional args.
func parseNavsFlags(args []string, env *Environment) (*navsFlags, []string, error) {
	fs := newFlagSet("navs", env.Stdout, env.Stderr, printNavsUsage)
	f := &navsFlags{}

	fs.StringVarP(&f.docsDir, "docs-dir", "d", "", "mkdocs docs directory")
	fs.StringVar(&f.mkdocs, "mkdocs", "", "mkdocs.yml path")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "directories that are not categories")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "report changes without writing")
	fs.BoolVar(&f.noCheck, "no-check", false, "skip the mkdocs.yml blogging check")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.excludeSet = fs.Changed("exclude")

	return f, fs.Args(), nil
}

// parseSnippetFlags parses snippet command flags and returns positional args.
func parseSnippetFlags(args []string, env *Environment) (*snippetFlags, []string, error) {
	fs := newFlagSet("snippet", env.Stdout, env.Stderr, printSnippetUsage)
	f := &snippetFlags{}

	fs.StringVar(&f.macro, "macro", "", "display wrapper macro (default displaylines)")
	fs.StringSliceVar(&f.packages, "package", nil, "TeX extension to load (repeatable)")
	fs.StringVar(&f.mathjaxURL, "mathjax-url", "", "MathJax loader script URL (with --html)")
	fs.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding scripts/mathjax-config.js.tmpl")
	fs.BoolVar(&f.noFilter, "no-filter", false, "omit the display-lines pre-filter")
	fs.BoolVar(&f.html, "html", false, "wrap in <script> tags with the loader")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
