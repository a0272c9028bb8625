package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LegacyCodeHQ/incfix/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRelevantChange(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "source written", event: fsnotify.Event{Name: "/p/main.cpp", Op: fsnotify.Write}, want: true},
		{name: "header created", event: fsnotify.Event{Name: "/p/a.hpp", Op: fsnotify.Create}, want: true},
		{name: "header removed", event: fsnotify.Event{Name: "/p/a.h", Op: fsnotify.Remove}, want: true},
		{name: "header renamed", event: fsnotify.Event{Name: "/p/a.h", Op: fsnotify.Rename}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: "/p/a.h", Op: fsnotify.Chmod}, want: false},
		{name: "other file", event: fsnotify.Event{Name: "/p/README.md", Op: fsnotify.Write}, want: false},
		{name: "temp file", event: fsnotify.Event{Name: "/p/.incfix-123", Op: fsnotify.Create}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelevantChange(tt.event))
		})
	}
}

func TestAddWatchDirsWithAdder_SkipsIgnoredAndExcludedDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"core", ".git/objects", "generated/deep", "core/impl"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}

	var added []string
	adder := func(path string) error {
		added = append(added, path)
		return nil
	}

	require.NoError(t, addWatchDirsWithAdder(root, []string{"generated"}, adder))

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "core"),
		filepath.Join(root, "core", "impl"),
	}, added)
}

func TestAddWatchDirsWithAdder_IgnoresMissingDirectories(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "missing-dir")
	require.NoError(t, os.MkdirAll(target, 0o755))

	adder := func(path string) error {
		if path == target {
			return fs.ErrNotExist
		}
		return nil
	}

	assert.NoError(t, addWatchDirsWithAdder(root, nil, adder))
	assert.NoError(t, addWatchDirsWithAdder(filepath.Join(root, "nope"), nil, adder))
}

func TestWatchAndRerun_RunsAfterRelevantChange(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchAndRerun(ctx, []string{root}, nil, func(context.Context) { runs <- struct{}{} }, logging.Discard())
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.cpp"), []byte("int main() {}\n"), 0o644))

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a run after writing main.cpp")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
