package main

// Notes:
// - runMain: we test exit codes and stream routing for each command. Actual
//   rendering, fixing and navs generation are covered in their own files.
// - setMaxProcs is not tested: it only adjusts the runtime.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdmath/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
		Config: config.DefaultConfig(),
	}, &stdout, &stderr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"mdmath", "render", "-v", "a.md"}, true},
		{[]string{"mdmath", "render", "--verbose"}, true},
		{[]string{"mdmath", "render", "a.md"}, false},
		{[]string{"mdmath", "render", "-vq"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	writeFile(t, doc, "# Doc\n\n$$a \\\\ b$$\n")
	empty := filepath.Join(dir, "empty.md")
	writeFile(t, empty, "")

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"mdmath"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: mdmath"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"mdmath", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"mdmath dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"mdmath", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdmath", "Commands:"},
		},
		{
			name:         "help render shows render help",
			args:         []string{"mdmath", "help", "render"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdmath render"},
		},
		{
			name:         "render -h shows render help",
			args:         []string{"mdmath", "render", "-h"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdmath render", "--mode"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"mdmath", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "unknown flag exits with ExitGeneral",
			args:         []string{"mdmath", "render", "--bogus"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"unknown flag: --bogus"},
		},
		{
			name:         "missing input exits with ExitIO",
			args:         []string{"mdmath", "render", filepath.Join(dir, "missing.md")},
			wantCode:     ExitIO,
			wantInStderr: []string{"error:"},
		},
		{
			name:         "render without input exits with ExitIO",
			args:         []string{"mdmath", "render"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no input specified"},
		},
		{
			name:         "invalid mode exits with ExitUsage",
			args:         []string{"mdmath", "render", "--mode", "server", doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid render mode"},
		},
		{
			name:         "invalid macro exits with ExitUsage",
			args:         []string{"mdmath", "render", "--macro", `\displaylines`, doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid wrapper macro"},
		},
		{
			name:         "unknown style lists available styles",
			args:         []string{"mdmath", "render", "--style", "nope", doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"hint: available:"},
		},
		{
			name:         "too many workers exits with ExitUsage",
			args:         []string{"mdmath", "render", "-w", "99", doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "missing config exits with ExitUsage",
			args:         []string{"mdmath", "render", "-c", "no-such-config", doc},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint:"},
		},
		{
			name:         "empty markdown fails the file",
			args:         []string{"mdmath", "render", "-o", filepath.Join(dir, "out", "empty.html"), empty},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"FAILED", "markdown content cannot be empty"},
		},
		{
			name:         "snippet prints config",
			args:         []string{"mdmath", "snippet"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"window.MathJax"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}
