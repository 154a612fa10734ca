package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	mdmath "github.com/alnah/go-mdmath"
	"github.com/alnah/go-mdmath/internal/config"
	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteHTML          = errors.New("failed to write HTML file")
	ErrConverterInit      = errors.New("failed to initialize converter")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdmath.Input) (*mdmath.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdmath.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
}

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// RenderResult holds the outcome of a single rendering.
type RenderResult struct {
	InputPath   string
	OutputPath  string
	Expressions int
	Rewritten   int
	Err         error
	Duration    time.Duration
}

// renderParams groups parameters shared across batch/file rendering.
type renderParams struct {
	title string
	now   func() time.Time
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes one input, got %d", ErrTooManyArgs, len(positional))
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	opts := converterOptions(cfg)
	factory := func() (CLIConverter, error) {
		return mdmath.NewConverter(opts...)
	}

	// Build one converter first so invalid options fail before any file is read
	if _, err := factory(); err != nil {
		var hint string
		switch {
		case errors.Is(err, mdmath.ErrStyleNotFound):
			hint = hints.ForStyleNotFound(mdmath.StyleNames())
		case errors.Is(err, mdmath.ErrUnknownHighlightTheme):
			hint = hints.ForHighlightTheme()
		}
		return fmt.Errorf("configuring converter: %w%s", err, hint)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	pool := NewConverterPool(resolvePoolSize(workers), factory)
	defer pool.Close()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d, mode: %s\n", pool.Size(), modeOf(cfg))
	}

	params := &renderParams{title: flags.title, now: env.Now}
	results := renderBatch(ctx, pool, files, params)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d rendering(s) failed", failed)
	}
	return nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	if flags.style != "" {
		cfg.CSS.Style = flags.style
	}
	if flags.highlight != "" {
		cfg.CSS.Highlight = flags.highlight
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.math.macro != "" {
		cfg.Math.Macro = flags.math.macro
	}
	if len(flags.math.packages) > 0 {
		cfg.Math.Packages = flags.math.packages
	}
	if flags.math.mode != "" {
		cfg.Math.Mode = flags.math.mode
	}
	if flags.math.mathjaxURL != "" {
		cfg.Math.MathJaxURL = flags.math.mathjaxURL
	}
	if flags.math.fixBlocksSet {
		cfg.Math.FixBlocks = flags.math.fixBlocks
	}
	if flags.math.noScriptSet {
		cfg.Math.NoScript = flags.math.noScript
	}
}

// converterOptions translates config into converter options.
func converterOptions(cfg *config.Config) []mdmath.Option {
	opts := []mdmath.Option{
		mdmath.WithNormalizer(mdmath.NormalizerOptions{
			Macro:    cfg.Math.Macro,
			Packages: cfg.Math.Packages,
		}),
		mdmath.WithMode(modeOf(cfg)),
		mdmath.WithFixBlocks(cfg.Math.FixBlocks),
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, mdmath.WithStyle(cfg.CSS.Style))
	}
	if cfg.CSS.Highlight != "" {
		opts = append(opts, mdmath.WithHighlightTheme(cfg.CSS.Highlight))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdmath.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Math.MathJaxURL != "" {
		opts = append(opts, mdmath.WithMathJaxURL(cfg.Math.MathJaxURL))
	}
	if cfg.Math.NoScript {
		opts = append(opts, mdmath.WithNoScript())
	}
	return opts
}

// modeOf returns the configured mode, prerender when unset.
func modeOf(cfg *config.Config) mdmath.Mode {
	if cfg.Math.Mode == "" {
		return mdmath.ModePrerender
	}
	return mdmath.Mode(cfg.Math.Mode)
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// discoverFiles finds all markdown files to render.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", fileutil.ErrNotMarkdown, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	paths, err := fileutil.CollectMarkdown([]string{inputPath})
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, inputPath)
	}

	files := make([]FileToRender, 0, len(paths))
	for _, p := range paths {
		files = append(files, FileToRender{
			InputPath:  p,
			OutputPath: resolveOutputPath(p, outputDir, inputPath),
		})
	}
	return files, nil
}

// resolveOutputPath determines the HTML output path for a markdown file.
// The directory layout below baseInputDir is mirrored into outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if baseInputDir == "" && strings.HasSuffix(outputDir, ".html") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// firstHeadingPattern matches the first # heading in markdown content.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// extractFirstHeading extracts the first # heading from markdown content.
// Returns empty string if no heading is found.
func extractFirstHeading(markdown string) string {
	matches := firstHeadingPattern.FindStringSubmatch(markdown)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1])
}

// documentTitle picks the flag title, the first heading, or the file stem.
func documentTitle(flagTitle, markdown, inputPath string) string {
	if flagTitle != "" {
		return flagTitle
	}
	if h := extractFirstHeading(markdown); h != "" {
		return h
	}
	return strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
}

// renderBatch processes files concurrently using the converter pool.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, conv CLIConverter, f FileToRender, params *renderParams) RenderResult {
	start := params.now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	markdown := string(content)

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return finish(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	res, err := conv.Convert(ctx, mdmath.Input{
		Markdown:  markdown,
		Title:     documentTitle(params.title, markdown, f.InputPath),
		SourceDir: filepath.Dir(f.InputPath),
		OutputDir: outDir,
	})
	if err != nil {
		return finish(err)
	}
	result.Expressions = res.Expressions
	result.Rewritten = res.Rewritten

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}
	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed renderings.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renderings.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs rendering results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d math, %d wrapped, %v)\n",
				r.InputPath, r.OutputPath, r.Expressions, r.Rewritten, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
