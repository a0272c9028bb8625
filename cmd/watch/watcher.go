package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/LegacyCodeHQ/incfix/internal/scan"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

func watchAndRerun(ctx context.Context, dirs []string, exclude []string, run func(context.Context), log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := addWatchDirs(watcher, dir, exclude); err != nil {
			return fmt.Errorf("failed to watch directories: %w", err)
		}
	}

	// A stopped timer. Its channel only fires after a relevant change.
	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name, exclude)
			}
			if !isRelevantChange(event) {
				continue
			}

			log.Debug("change detected", "file", event.Name, "op", event.Op.String())
			debounce.Reset(debounceInterval)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)

		case <-debounce.C:
			run(ctx)
		}
	}
}

func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return scan.HasExtension(event.Name, scan.SourceExtensions)
}

func addWatchDirs(watcher *fsnotify.Watcher, root string, exclude []string) error {
	return addWatchDirsWithAdder(root, exclude, watcher.Add)
}

func addWatchDirsWithAdder(root string, exclude []string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			if scan.SkippedDir(d.Name()) || scan.Excluded(filepath.ToSlash(rel), exclude) {
				return filepath.SkipDir
			}
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string, exclude []string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path, exclude)
	}
}
