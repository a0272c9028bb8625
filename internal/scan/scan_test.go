package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+f+"\n"), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestFiles_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.h",
		"b.hpp",
		"c.cpp",
		"sub/d.h",
		"sub/e.txt",
		".git/f.h",
	)

	files, err := Files(context.Background(), root, HeaderExtensions, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.h", "b.hpp", "sub/d.h"}, relAll(t, root, files))
}

func TestFiles_Exclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"keep/a.cpp",
		"generated/b.cpp",
		"keep/c_test.cpp",
	)

	files, err := Files(context.Background(), root, SourceExtensions, []string{"generated/**", "**/*_test.cpp"})

	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.cpp"}, relAll(t, root, files))
}

func TestFiles_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.h")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Files(ctx, root, HeaderExtensions, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFiles_MissingRoot(t *testing.T) {
	_, err := Files(context.Background(), filepath.Join(t.TempDir(), "missing"), HeaderExtensions, nil)
	assert.Error(t, err)
}

func TestExcluded(t *testing.T) {
	assert.True(t, Excluded("third_party/zlib/zlib.h", []string{"third_party/**"}))
	assert.True(t, Excluded("./a/b.h", []string{"a/*.h"}))
	assert.False(t, Excluded("src/a.h", []string{"third_party/**"}))
	assert.False(t, Excluded("src/a.h", []string{"[bad"}))
	assert.False(t, Excluded("src/a.h", nil))
}
