package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmath <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown files with math to HTML")
	fmt.Fprintln(w, "  fix        Fix $$ math block layout in markdown files")
	fmt.Fprintln(w, "  navs       Regenerate category index pages of an mkdocs tree")
	fmt.Fprintln(w, "  snippet    Print the MathJax configuration script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdmath help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmath render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML. Math containing \\\\ is wrapped in")
	fmt.Fprintln(w, "\\displaylines{...} so MathJax breaks lines in display and inline math.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --title <s>           Document title (default: first heading)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Math:")
	fmt.Fprintln(w, "      --macro <name>        Display wrapper macro (default: displaylines)")
	fmt.Fprintln(w, "      --package <name>      TeX extension to load, repeatable (e.g. mathtools)")
	fmt.Fprintln(w, "      --mode <s>            prerender (normalize in Go) or browser (in MathJax)")
	fmt.Fprintln(w, "      --mathjax-url <url>   MathJax loader script URL")
	fmt.Fprintln(w, "      --fix-blocks          Fix $$ block layout before rendering")
	fmt.Fprintln(w, "      --no-script           Omit MathJax config and loader scripts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or CSS content")
	fmt.Fprintln(w, "      --highlight <theme>   Chroma theme for code blocks (default: github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles/ and scripts/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and math counts")
}

// printFixUsage prints usage for the fix command.
func printFixUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmath fix <path>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Surround $$ blocks with blank lines, turn $$ inside text lines into $,")
	fmt.Fprintln(w, "and round indentation up to 4 spaces. Files are rewritten in place.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --check               Report files needing fixes, exit 1 if any")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             List unchanged files too")
}

// printNavsUsage prints usage for the navs command.
func printNavsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmath navs [docs-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize the front matter and regenerate the table of contents of")
	fmt.Fprintln(w, "every category index.md, then check mkdocs.yml blogging dirs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --docs-dir <dir>      Docs directory (default: docs)")
	fmt.Fprintln(w, "      --mkdocs <path>       mkdocs.yml path (default: mkdocs.yml)")
	fmt.Fprintln(w, "      --exclude <dirs>      Non-category directories (default: assets,css,js)")
	fmt.Fprintln(w, "  -n, --dry-run             Report changes without writing")
	fmt.Fprintln(w, "      --no-check            Skip the mkdocs.yml check")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printSnippetUsage prints usage for the snippet command.
func printSnippetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmath snippet [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the window.MathJax configuration that registers the")
	fmt.Fprintln(w, "display-lines pre-filter. Load it before the MathJax script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --macro <name>        Display wrapper macro (default: displaylines)")
	fmt.Fprintln(w, "      --package <name>      TeX extension to load, repeatable (e.g. mathtools)")
	fmt.Fprintln(w, "      --no-filter           Omit the pre-filter (packages only)")
	fmt.Fprintln(w, "      --html                Emit <script> tags including the loader")
	fmt.Fprintln(w, "      --mathjax-url <url>   Loader script URL used with --html")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding the embedded config template")
	fmt.Fprintln(w, "  -o, --output <path>       Write to file instead of stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "fix":
		printFixUsage(env.Stdout)
	case "navs":
		printNavsUsage(env.Stdout)
	case "snippet":
		printSnippetUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdmath version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdmath help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
