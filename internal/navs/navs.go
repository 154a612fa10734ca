// Package navs maintains the category index pages of an mkdocs docs tree:
// fixed front matter, a generated table of contents, and the blogging
// plugin's directory list in mkdocs.yml.
package navs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-mdmath/internal/fileutil"
	"github.com/alnah/go-mdmath/internal/yamlutil"
)

// Sentinel errors for navigation operations.
var (
	ErrDocsDirNotFound = errors.New("docs directory not found")
	ErrIndexNotFound   = errors.New("category index.md not found")
	ErrNoBlogging      = errors.New("mkdocs.yml has no blogging plugin")
)

// FixedFrontMatter replaces the front matter of every category index.
const FixedFrontMatter = "---\n" +
	"icon: material/dots-grid\n" +
	"comments: false\n" +
	"nostatistics: true\n" +
	"---"

// TOCMarker starts the generated table of contents. Everything after it is
// regenerated.
const TOCMarker = `!!! abstract "Table of Contents"`

// IndexFile is the category landing page.
const IndexFile = "index.md"

// DefaultExcludeDirs are docs subdirectories that hold assets, not categories.
var DefaultExcludeDirs = []string{"assets", "css", "js"}

var frontMatter = regexp.MustCompile(`(?s)^---\n.*?\n---`)

// Category is one direct subdirectory of the docs tree.
type Category struct {
	Name  string // Directory name
	Dir   string // Directory path
	Index string // Path of its index.md
}

// Categories lists the category directories of docsDir, sorted by name.
// Directories named in exclude are skipped.
func Categories(docsDir string, exclude []string) ([]Category, error) {
	if !fileutil.DirExists(docsDir) {
		return nil, fmt.Errorf("%w: %s", ErrDocsDirNotFound, docsDir)
	}
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", docsDir, err)
	}

	var cats []Category
	for _, e := range entries {
		if !e.IsDir() || slices.Contains(exclude, e.Name()) {
			continue
		}
		dir := filepath.Join(docsDir, e.Name())
		cats = append(cats, Category{
			Name:  e.Name(),
			Dir:   dir,
			Index: filepath.Join(dir, IndexFile),
		})
	}
	return cats, nil
}

// Names returns the category names.
func Names(cats []Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

// FormatFrontMatter replaces the leading front matter block of text with
// FixedFrontMatter, or prepends it when text has none.
func FormatFrontMatter(text string) string {
	if loc := frontMatter.FindStringIndex(text); loc != nil {
		return FixedFrontMatter + text[loc[1]:]
	}
	return FixedFrontMatter + "\n" + text
}

// TOCEntries returns one list line per Markdown file below dir, recursively,
// index.md excluded, sorted by file name. Each line is indented four spaces
// and links the file stem to its slash-separated path relative to dir.
func TOCEntries(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".md" || d.Name() == IndexFile {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	slices.SortStableFunc(files, func(a, b string) int {
		return strings.Compare(filepath.Base(a), filepath.Base(b))
	})

	lines := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, err
		}
		stem := strings.TrimSuffix(filepath.Base(f), ".md")
		lines = append(lines, fmt.Sprintf("    - [%s](%s)", stem, filepath.ToSlash(rel)))
	}
	return lines, nil
}

// ReplaceTOC rewrites everything from TOCMarker to the end of text with the
// marker followed by entries. When text has no marker, one is appended after
// a blank line and added reports true.
func ReplaceTOC(text string, entries []string) (result string, added bool) {
	idx := strings.Index(text, TOCMarker)
	if idx < 0 {
		added = true
		text = strings.TrimRight(text, " \t\r\n") + "\n\n"
		idx = len(text)
	}
	return text[:idx] + TOCMarker + "\n" + strings.Join(entries, "\n"), added
}

// Result reports what Update did to one category index.
type Result struct {
	Category    string
	Entries     int  // Table of contents lines written
	MarkerAdded bool // TOCMarker was missing and has been appended
	Changed     bool // index.md content differs from before
}

// Update normalizes the front matter and regenerates the table of contents
// of cat's index.md. With dryRun set the file is left untouched.
func Update(cat Category, dryRun bool) (Result, error) {
	res := Result{Category: cat.Name}

	data, err := os.ReadFile(cat.Index) // #nosec G304 -- path built from docs dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, fmt.Errorf("%w: %s", ErrIndexNotFound, cat.Index)
		}
		return res, fmt.Errorf("reading %s: %w", cat.Index, err)
	}
	original := string(data)

	entries, err := TOCEntries(cat.Dir)
	if err != nil {
		return res, err
	}
	res.Entries = len(entries)

	text := FormatFrontMatter(original)
	text, res.MarkerAdded = ReplaceTOC(text, entries)
	res.Changed = text != original

	if dryRun || !res.Changed {
		return res, nil
	}
	if _, err := fileutil.WriteIfChanged(cat.Index, text, 0o644); err != nil {
		return res, err
	}
	return res, nil
}

// Mismatch lists the differences between the blogging plugin's dirs and the
// category directories.
type Mismatch struct {
	Missing []string // Categories absent from blogging.dirs
	Extra   []string // blogging.dirs entries without a category
}

// OK reports whether both sets are equal.
func (m Mismatch) OK() bool {
	return len(m.Missing) == 0 && len(m.Extra) == 0
}

// BlogDirs returns the dirs list of the blogging plugin in mkdocs.yml data.
func BlogDirs(mkdocs []byte) ([]string, error) {
	var plugins []any
	if err := yamlutil.UnmarshalPath(mkdocs, "$.plugins", &plugins); err != nil {
		if errors.Is(err, yamlutil.ErrPathNotFound) {
			return nil, ErrNoBlogging
		}
		return nil, err
	}

	for i, p := range plugins {
		m, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["blogging"]; !ok {
			continue
		}
		var dirs []string
		path := fmt.Sprintf("$.plugins[%d].blogging.dirs", i)
		if err := yamlutil.UnmarshalPath(mkdocs, path, &dirs); err != nil {
			if errors.Is(err, yamlutil.ErrPathNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return dirs, nil
	}
	return nil, ErrNoBlogging
}

// CheckBlogDirs compares the blogging plugin's dirs in mkdocs.yml data with
// the category names.
func CheckBlogDirs(mkdocs []byte, categories []string) (Mismatch, error) {
	dirs, err := BlogDirs(mkdocs)
	if err != nil {
		return Mismatch{}, err
	}

	var m Mismatch
	for _, c := range categories {
		if !slices.Contains(dirs, c) {
			m.Missing = append(m.Missing, c)
		}
	}
	for _, d := range dirs {
		if !slices.Contains(categories, d) && !slices.Contains(m.Extra, d) {
			m.Extra = append(m.Extra, d)
		}
	}
	slices.Sort(m.Missing)
	slices.Sort(m.Extra)
	return m, nil
}
