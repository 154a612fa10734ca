package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunFix
// ---------------------------------------------------------------------------

const (
	unfixed = "text\n$$\nx \\\\ y\n$$\nmore\n"
	fixed   = "text\n\n$$\nx \\\\ y\n$$\n\nmore\n"
)

func TestRunFix(t *testing.T) {
	t.Parallel()

	t.Run("rewrites files in place", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.md")
		b := filepath.Join(dir, "sub", "b.md")
		writeFile(t, a, unfixed)
		writeFile(t, b, fixed)

		env, stdout, _ := newTestEnv()
		if err := runFix(context.Background(), []string{dir}, env); err != nil {
			t.Fatalf("runFix() error: %v", err)
		}
		if got := readFile(t, a); got != fixed {
			t.Errorf("a.md = %q, want %q", got, fixed)
		}
		if !strings.Contains(stdout.String(), "Fixed "+a) {
			t.Errorf("stdout = %q", stdout.String())
		}
		if !strings.Contains(stdout.String(), "1 fixed, 1 unchanged, 0 skipped, 0 failed") {
			t.Errorf("stdout missing summary: %q", stdout.String())
		}
	})

	t.Run("check reports without writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.md")
		writeFile(t, a, unfixed)

		env, stdout, _ := newTestEnv()
		err := runFix(context.Background(), []string{"--check", a}, env)
		if !errors.Is(err, ErrChangesNeeded) {
			t.Fatalf("error = %v, want ErrChangesNeeded", err)
		}
		if exitCodeFor(err) != ExitGeneral {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitGeneral)
		}
		if got := readFile(t, a); got != unfixed {
			t.Error("--check must not modify files")
		}
		if !strings.Contains(stdout.String(), "Would fix "+a) {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("check passes on clean files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.md"), fixed)

		env, _, _ := newTestEnv()
		if err := runFix(context.Background(), []string{"--check", "-q", dir}, env); err != nil {
			t.Errorf("runFix() error: %v", err)
		}
	})

	t.Run("unclosed block skipped with hint", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.md")
		content := "intro\n$$\nx\nmore\n"
		writeFile(t, a, content)

		env, _, stderr := newTestEnv()
		if err := runFix(context.Background(), []string{a}, env); err != nil {
			t.Fatalf("runFix() error: %v", err)
		}
		if got := readFile(t, a); got != content {
			t.Error("file with unclosed block must not change")
		}
		if !strings.Contains(stderr.String(), "SKIPPED") || !strings.Contains(stderr.String(), "line 2") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("no markdown files", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		err := runFix(context.Background(), []string{t.TempDir()}, env)
		if exitCodeFor(err) != ExitIO {
			t.Errorf("exit code = %d, want %d (err %v)", exitCodeFor(err), ExitIO, err)
		}
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		if err := runFix(context.Background(), nil, env); !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("input dir from config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.md")
		writeFile(t, a, unfixed)

		env, _, _ := newTestEnv()
		env.Config.Input.DefaultDir = dir
		if err := runFix(context.Background(), []string{"-q"}, env); err != nil {
			t.Fatalf("runFix() error: %v", err)
		}
		if got := readFile(t, a); got != fixed {
			t.Errorf("a.md = %q, want %q", got, fixed)
		}
	})
}
