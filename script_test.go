package mdmath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdmath/internal/assets"
)

func TestConfigScript_FullShape(t *testing.T) {
	t.Parallel()

	got, err := ConfigScript(ScriptOptions{Filter: true, Packages: []string{MathToolsPackage}})
	if err != nil {
		t.Fatalf("ConfigScript() error = %v", err)
	}

	want := "window.MathJax = {\n" +
		"  startup: {\n" +
		"    ready() {\n" +
		"      MathJax.startup.defaultReady();\n" +
		"      MathJax.startup.document.inputJax[0].preFilters.add(({math}) => {\n" +
		"        if (math.math.match(/\\\\\\\\/)) {\n" +
		"          math.math = `\\\\displaylines{${math.math}}`;\n" +
		"        }\n" +
		"      });\n" +
		"    }\n" +
		"  },\n" +
		"  loader: {load: ['[tex]/mathtools']},\n" +
		"  tex: {packages: {'[+]': ['mathtools']}}\n" +
		"};\n"
	if got != want {
		t.Errorf("ConfigScript() =\n%s\nwant\n%s", got, want)
	}
}

func TestConfigScript_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     ScriptOptions
		contains []string
		excludes []string
	}{
		{
			name:     "plain startup without filter",
			opts:     ScriptOptions{},
			contains: []string{"MathJax.startup.defaultReady();", "ready() {"},
			excludes: []string{"preFilters", "loader:", "tex:"},
		},
		{
			name:     "filter without packages",
			opts:     ScriptOptions{Filter: true},
			contains: []string{"preFilters.add(({math}) =>", "`\\\\displaylines{${math.math}}`"},
			excludes: []string{"loader:", "mathtools"},
		},
		{
			name:     "custom macro",
			opts:     ScriptOptions{Filter: true, Macro: "multlined"},
			contains: []string{"`\\\\multlined{${math.math}}`"},
			excludes: []string{"displaylines"},
		},
		{
			name:     "several packages",
			opts:     ScriptOptions{Packages: []string{"mathtools", "cancel"}},
			contains: []string{"load: ['[tex]/mathtools', '[tex]/cancel']", "'[+]': ['mathtools', 'cancel']"},
			excludes: []string{"preFilters"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ConfigScript(tt.opts)
			if err != nil {
				t.Fatalf("ConfigScript() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ConfigScript() missing %q in\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("ConfigScript() should not contain %q in\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestConfigScript_InvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := ConfigScript(ScriptOptions{Macro: "x'}); alert(1); //"}); !errors.Is(err, ErrInvalidMacro) {
		t.Errorf("ConfigScript() error = %v, want ErrInvalidMacro", err)
	}
	if _, err := ConfigScript(ScriptOptions{Packages: []string{"a']"}}); !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("ConfigScript() error = %v, want ErrInvalidPackage", err)
	}
}

func TestConfigScript_AssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	if err := os.MkdirAll(scripts, 0o750); err != nil {
		t.Fatal(err)
	}
	tmpl := "window.MathJax = {filter: {{.Filter}}};\n"
	if err := os.WriteFile(filepath.Join(scripts, "mathjax-config.js.tmpl"), []byte(tmpl), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ConfigScript(ScriptOptions{Filter: true, AssetPath: dir})
	if err != nil {
		t.Fatalf("ConfigScript() error = %v", err)
	}
	if got != "window.MathJax = {filter: true};\n" {
		t.Errorf("ConfigScript() = %q, want directory template", got)
	}

	conv := mustConverter(t, WithAssetPath(dir), WithMode(ModeBrowser))
	if conv.ConfigScript() != got {
		t.Errorf("converter script %q differs from ConfigScript %q", conv.ConfigScript(), got)
	}

	_, err = ConfigScript(ScriptOptions{AssetPath: filepath.Join(dir, "missing")})
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("ConfigScript(missing dir) error = %v, want ErrInvalidAssetPath", err)
	}
}

type stubScriptLoader struct {
	script string
	err    error
}

func (s *stubScriptLoader) LoadStyle(string) (string, error) { return "", nil }

func (s *stubScriptLoader) LoadScript(string) (string, error) { return s.script, s.err }

func TestRenderConfigScript_LoaderErrors(t *testing.T) {
	t.Parallel()

	_, err := renderConfigScript(&stubScriptLoader{err: assets.ErrScriptNotFound}, ScriptOptions{})
	if !errors.Is(err, ErrScriptRender) || !errors.Is(err, assets.ErrScriptNotFound) {
		t.Errorf("renderConfigScript() error = %v, want ErrScriptRender wrapping ErrScriptNotFound", err)
	}

	_, err = renderConfigScript(&stubScriptLoader{script: "{{.Missing"}, ScriptOptions{})
	if !errors.Is(err, ErrScriptRender) {
		t.Errorf("renderConfigScript() error = %v, want ErrScriptRender", err)
	}

	got, err := renderConfigScript(&stubScriptLoader{script: "m={{.Macro}}"}, ScriptOptions{})
	if err != nil {
		t.Fatalf("renderConfigScript() error = %v", err)
	}
	if got != "m=displaylines" {
		t.Errorf("renderConfigScript() = %q, want default macro", got)
	}
}
