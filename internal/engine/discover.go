package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

// discoverSources walks root for source files matching the configured include
// globs (and not matching an exclude glob) and reads them. Text is
// CRLF-normalized on read; the analysis layer assumes \n-terminated lines.
func discoverSources(root string, files config.FilesConfig) ([]model.SourceUnit, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(files.Include, rel) || matchesAny(files.Exclude, rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	units := make([]model.SourceUnit, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		units = append(units, model.SourceUnit{
			Path: filepath.ToSlash(path),
			Text: strings.ReplaceAll(string(b), "\r\n", "\n"),
		})
	}
	return units, nil
}

func matchesAny(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
