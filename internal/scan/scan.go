package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// HeaderExtensions are the files indexed under a search root.
var HeaderExtensions = []string{".h", ".hpp"}

// SourceExtensions are the files whose includes get rewritten.
var SourceExtensions = []string{".cpp", ".cxx", ".cc", ".c", ".h", ".hpp"}

var skippedDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	".idea":        true,
	".vscode":      true,
	".cache":       true,
}

// Files walks root and returns, in walk order, the files with one of the
// given extensions whose root-relative path matches none of the exclude
// globs. Version control and editor directories are skipped.
func Files(ctx context.Context, root string, extensions []string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && (skippedDirs[d.Name()] || Excluded(rel, exclude)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !HasExtension(path, extensions) || Excluded(rel, exclude) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// HasExtension reports whether path ends in one of extensions.
func HasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Excluded reports whether the slash-separated relative path matches any of
// the doublestar patterns. Invalid patterns never match.
func Excluded(rel string, patterns []string) bool {
	rel = strings.TrimPrefix(rel, "./")
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// SkippedDir reports whether a directory with this name is never scanned.
func SkippedDir(name string) bool {
	return skippedDirs[name]
}
