// Package loader discovers and reads the source files of one system
// directory. It is a thin consumer-side concern: the pipeline itself only
// ever sees file names and contents.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/matlang/go-matlang/compile"
)

// DefaultExtension is the canonical source file extension.
const DefaultExtension = ".martial"

// Finder locates system source files in a directory.
type Finder struct {
	extension string
	exclude   []glob.Glob
}

// NewFinder creates a finder for the given extension (DefaultExtension when
// empty) and exclude patterns, matched against base file names.
func NewFinder(extension string, exclude []string) (*Finder, error) {
	if extension == "" {
		extension = DefaultExtension
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	f := &Finder{extension: extension}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

func (f *Finder) excluded(name string) bool {
	for _, g := range f.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Find reads every matching file in dir (non-recursive), sorted by name for
// deterministic merge order. It fails when the directory holds no matching
// files: an empty system is a caller mistake, not a valid input.
func (f *Finder) Find(dir string) ([]compile.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != f.extension || f.excluded(name) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", f.extension, dir)
	}
	sort.Strings(names)

	files := make([]compile.SourceFile, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files = append(files, compile.SourceFile{Name: name, Content: string(content)})
	}
	return files, nil
}

// SystemName derives the system's name from its directory: the base name of
// the cleaned path. The name is an opaque label, never validated.
func SystemName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}
