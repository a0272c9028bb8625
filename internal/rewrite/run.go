package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/LegacyCodeHQ/incfix/internal/scan"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Options configures a rewrite run.
type Options struct {
	Resolver *include.Resolver
	// Reader loads file content. FilesystemReader is used when nil.
	Reader ContentReader
	// DryRun computes every change without touching the disk.
	DryRun bool
	// Jobs bounds the number of files processed at once. Zero or less
	// processes one file at a time.
	Jobs int
	Log  *slog.Logger
}

// DirStats are the statistics of the files directly inside one directory.
type DirStats struct {
	Dir   string
	Stats Stats
}

// Report is the outcome of a run. Files keep the order they were given in.
type Report struct {
	Files       []FileResult
	Total       Stats
	Directories []DirStats
}

// Sources returns the source files below dir whose includes may be rewritten.
func Sources(ctx context.Context, dir string, exclude []string) ([]string, error) {
	return scan.Files(ctx, dir, scan.SourceExtensions, exclude)
}

// Run rewrites every file. Each file is processed fully in memory and written
// at most once, and only when its content changed. An unresolvable include
// never stops the run; a file that cannot be read or written does.
func Run(ctx context.Context, files []string, opts Options) (Report, error) {
	if opts.Resolver == nil {
		return Report{}, fmt.Errorf("resolver is required")
	}
	read := opts.Reader
	if read == nil {
		read = FilesystemReader
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := processFile(file, read, opts)
			if err != nil {
				return err
			}
			log.Debug("processed file", "file", file, "includes", res.Stats.Total, "written", res.Written)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return newReport(results), nil
}

func processFile(file string, read ContentReader, opts Options) (FileResult, error) {
	content, err := read(file)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", file, err)
	}

	updated, res := RewriteContent(file, content, opts.Resolver)
	if opts.DryRun || xxhash.Sum64(updated) == xxhash.Sum64(content) {
		return res, nil
	}

	if err := writeFile(file, updated); err != nil {
		return FileResult{}, err
	}
	res.Written = true
	return res, nil
}

// writeFile replaces path with data through a temporary file in the same
// directory, so a failed write never leaves a partial file behind.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".incfix-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func newReport(results []FileResult) Report {
	report := Report{Files: results}
	byDir := make(map[string]Stats)
	for _, res := range results {
		report.Total = report.Total.Add(res.Stats)
		dir := filepath.Dir(res.Path)
		byDir[dir] = byDir[dir].Add(res.Stats)
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		report.Directories = append(report.Directories, DirStats{Dir: dir, Stats: byDir[dir]})
	}

	return report
}
