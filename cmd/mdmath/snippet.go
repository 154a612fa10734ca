package main

import (
	"context"
	"fmt"

	mdmath "github.com/alnah/go-mdmath"
	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/pipeline"
)

// runSnippet prints the browser-side MathJax configuration.
func runSnippet(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseSnippetFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: snippet takes no arguments", ErrTooManyArgs)
	}

	cfg, err := resolveConfig(flags.common.config, loadEnvConfig(), env)
	if err != nil {
		return err
	}

	opts := mdmath.ScriptOptions{
		Macro:     cfg.Math.Macro,
		Packages:  cfg.Math.Packages,
		Filter:    !flags.noFilter,
		AssetPath: cfg.Assets.BasePath,
	}
	if flags.macro != "" {
		opts.Macro = flags.macro
	}
	if len(flags.packages) > 0 {
		opts.Packages = flags.packages
	}
	if flags.assetPath != "" {
		opts.AssetPath = flags.assetPath
	}

	script, err := mdmath.ConfigScript(opts)
	if err != nil {
		return err
	}

	out := script
	if flags.html {
		loaderURL := cfg.Math.MathJaxURL
		if flags.mathjaxURL != "" {
			loaderURL = flags.mathjaxURL
		}
		if !fileutil.IsURL(loaderURL) {
			return fmt.Errorf("%w: %q", mdmath.ErrInvalidLoaderURL, loaderURL)
		}
		injector := &pipeline.ScriptInjection{}
		out = injector.InjectScripts(ctx, "", &pipeline.ScriptData{
			Config:    script,
			LoaderURL: loaderURL,
		})
	}

	if flags.output == "" {
		fmt.Fprint(env.Stdout, out)
		if out != "" && out[len(out)-1] != '\n' {
			fmt.Fprintln(env.Stdout)
		}
		return nil
	}

	if _, err := fileutil.WriteIfChanged(flags.output, out, filePermissions); err != nil {
		return fmt.Errorf("writing snippet: %w", err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}
