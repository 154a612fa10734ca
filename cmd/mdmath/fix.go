package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/hints"
	"github.com/alnah/go-mdmath/internal/pipeline"
)

// ErrChangesNeeded is returned by fix --check when a file would change.
var ErrChangesNeeded = errors.New("files need math block fixes")

// fixSummary counts per-file outcomes of the fix command.
type fixSummary struct {
	Fixed     int
	Unchanged int
	Skipped   int
	Failed    int
}

// runFix rewrites $$ block layout in markdown files.
func runFix(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseFixFlags(args, env)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common.config, loadEnvConfig(), env)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if cfg.Input.DefaultDir == "" {
			return ErrNoInput
		}
		paths = []string{cfg.Input.DefaultDir}
	}

	files, err := fileutil.CollectMarkdown(paths)
	if err != nil {
		return err
	}

	var summary fixSummary
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		fixFile(file, flags, env, &summary)
	}

	if !flags.common.quiet {
		verb := "fixed"
		if flags.check {
			verb = "to fix"
		}
		fmt.Fprintf(env.Stdout, "\n%d %s, %d unchanged, %d skipped, %d failed\n",
			summary.Fixed, verb, summary.Unchanged, summary.Skipped, summary.Failed)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}
	if flags.check && summary.Fixed > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrChangesNeeded, summary.Fixed)
	}
	return nil
}

// fixFile applies the block fixer to one file and records the outcome.
// Files with an unclosed $$ block are skipped: fixing them would move
// the rest of the document into math.
func fixFile(file string, flags *fixFlags, env *Environment, summary *fixSummary) {
	data, err := os.ReadFile(file) // #nosec G304 -- collected path
	if err != nil {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", file, err)
		summary.Failed++
		return
	}
	content := string(data)

	if line := pipeline.UnclosedMathBlockLine(content); line > 0 {
		fmt.Fprintf(env.Stderr, "SKIPPED %s: unclosed $$ block%s\n", file, hints.ForUnbalancedMath(line))
		summary.Skipped++
		return
	}

	fixed := pipeline.FixMathBlocks(content)
	if fixed == content {
		summary.Unchanged++
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "Unchanged %s\n", file)
		}
		return
	}

	summary.Fixed++
	if flags.check {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Would fix %s\n", file)
		}
		return
	}

	if _, err := fileutil.WriteIfChanged(file, fixed, filePermissions); err != nil {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", file, err)
		summary.Fixed--
		summary.Failed++
		return
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Fixed %s\n", file)
	}
}
