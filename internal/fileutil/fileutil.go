// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrNotMarkdown     = errors.New("file must have .md or .markdown extension")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./print.css" -> true (relative path)
//   - "/absolute/path.css" -> true (absolute)
//   - "C:\windows\path.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsCSS returns true if the string looks like inline CSS rather than a name or path.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}

// IsMarkdown reports whether path has a .md or .markdown extension.
func IsMarkdown(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}

// CollectMarkdown expands files and directories into a sorted, deduplicated
// list of markdown files. Directories are walked recursively. Explicit files
// without a markdown extension are skipped, as are missing paths.
// Returns ErrNoMarkdownFiles when nothing matched.
func CollectMarkdown(paths []string) ([]string, error) {
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}

		if !info.IsDir() {
			if IsMarkdown(p) {
				files = append(files, filepath.Clean(p))
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() && IsMarkdown(path) {
				files = append(files, filepath.Clean(path))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	files = slices.Compact(files)

	if len(files) == 0 {
		return nil, ErrNoMarkdownFiles
	}
	return files, nil
}

// WriteIfChanged writes content to path only when it differs from the
// current file content. Returns true if the file was written.
func WriteIfChanged(path, content string, perm fs.FileMode) (bool, error) {
	current, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err == nil && string(current) == content {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
