package headers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/LegacyCodeHQ/incfix/internal/scan"
)

// Build indexes the headers beneath every root. The index is complete before
// it is returned and is never updated afterwards.
func Build(ctx context.Context, roots []include.SearchRoot, exclude []string, log *slog.Logger) (*include.Index, error) {
	idx := include.NewIndex()
	for _, root := range roots {
		hdrs, err := scan.Files(ctx, root.Path, scan.HeaderExtensions, exclude)
		if err != nil {
			return nil, fmt.Errorf("failed to index headers in %s: %w", root.Path, err)
		}

		log.Info("indexed headers", "root", root.Path, "system", root.System, "headers", len(hdrs))
		for _, h := range hdrs {
			log.Debug("header", "root", root.Path, "path", relOrSelf(root.Path, h))
		}

		idx.AddRoot(root, hdrs)
	}
	return idx, nil
}

// Rename is a header moved to the .hpp extension.
type Rename struct {
	From string
	To   string
}

// RenameToHPP gives every indexed header the .hpp extension and returns the
// index rewritten to the new names. Nothing is moved on disk when dryRun is
// set. A header whose .hpp twin already exists is left alone.
func RenameToHPP(idx *include.Index, dryRun bool, log *slog.Logger) (*include.Index, []Rename, error) {
	renamed := make(map[string]string)
	var renames []Rename

	for _, entry := range idx.Entries() {
		from := entry.Path
		if _, done := renamed[from]; done {
			continue
		}

		to := replaceExtension(from, ".hpp")
		if to == from {
			continue
		}
		if _, err := os.Stat(to); err == nil {
			log.Warn("rename target exists, keeping header", "header", from, "target", to)
			continue
		}

		if !dryRun {
			if err := os.Rename(from, to); err != nil {
				return nil, renames, fmt.Errorf("failed to rename %s: %w", from, err)
			}
		}

		renamed[from] = to
		renames = append(renames, Rename{From: from, To: to})
	}

	return idx.WithRenamed(renamed), renames, nil
}

func replaceExtension(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

func relOrSelf(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
