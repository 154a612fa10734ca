package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-mdmath/internal/config"
	"github.com/alnah/go-mdmath/internal/hints"
	"github.com/alnah/go-mdmath/internal/navs"
)

// runNavs regenerates category index pages and checks mkdocs.yml.
func runNavs(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseNavsFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: navs takes one docs directory, got %d", ErrTooManyArgs, len(positional))
	}

	cfg, err := resolveConfig(flags.common.config, loadEnvConfig(), env)
	if err != nil {
		return err
	}
	mergeNavsFlags(flags, positional, cfg)

	cats, err := navs.Categories(cfg.Docs.Dir, cfg.Docs.ExcludeDirs)
	if err != nil {
		var hint string
		if errors.Is(err, navs.ErrDocsDirNotFound) {
			hint = hints.ForDocsDir(cfg.Docs.Dir)
		}
		return fmt.Errorf("listing categories: %w%s", err, hint)
	}

	failed := 0
	for _, cat := range cats {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := navs.Update(cat, flags.dryRun)
		if err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", cat.Name, err)
			failed++
			continue
		}
		if res.MarkerAdded {
			fmt.Fprintf(env.Stderr, "warning: %s has no %s line, appended one\n", cat.Index, navs.TOCMarker)
		}
		printNavsResult(res, cat, flags, env)
	}

	if !flags.noCheck {
		checkMkdocs(cfg.Docs.MkdocsFile, navs.Names(cats), flags.common.verbose, env)
	}

	if failed > 0 {
		return fmt.Errorf("%d category index(es) failed", failed)
	}
	return nil
}

// mergeNavsFlags merges CLI flags and the positional docs dir into config.
func mergeNavsFlags(flags *navsFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Docs.Dir = positional[0]
	}
	if flags.docsDir != "" {
		cfg.Docs.Dir = flags.docsDir
	}
	if flags.mkdocs != "" {
		cfg.Docs.MkdocsFile = flags.mkdocs
	}
	if flags.excludeSet {
		cfg.Docs.ExcludeDirs = flags.exclude
	}
}

func printNavsResult(res navs.Result, cat navs.Category, flags *navsFlags, env *Environment) {
	if flags.common.quiet {
		return
	}
	switch {
	case !res.Changed:
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "Unchanged %s (%d entries)\n", cat.Index, res.Entries)
		}
	case flags.dryRun:
		fmt.Fprintf(env.Stdout, "Would update %s (%d entries)\n", cat.Index, res.Entries)
	default:
		fmt.Fprintf(env.Stdout, "Updated %s (%d entries)\n", cat.Index, res.Entries)
	}
}

// checkMkdocs warns when the blogging plugin's dirs differ from the
// categories. Problems are reported, never fatal.
func checkMkdocs(path string, categories []string, verbose bool, env *Environment) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if verbose || !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(env.Stderr, "warning: skipping mkdocs check: %v\n", err)
		}
		return
	}

	m, err := navs.CheckBlogDirs(data, categories)
	if err != nil {
		fmt.Fprintf(env.Stderr, "warning: %s: %v\n", path, err)
		return
	}
	if !m.OK() {
		fmt.Fprintf(env.Stderr, "warning: %s blogging dirs do not match categories%s\n",
			path, hints.ForBlogDirsMismatch(m.Missing, m.Extra))
	}
}
