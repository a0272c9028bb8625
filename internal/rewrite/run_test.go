package rewrite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct {
	root     string
	resolver *include.Resolver
}

func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	write(t, filepath.Join(root, "include", "core", "engine.hpp"), "#pragma once\n")
	write(t, filepath.Join(root, "include", "util", "strings.hpp"), "#pragma once\n")

	idx := include.NewIndex()
	idx.AddRoot(include.SearchRoot{Path: filepath.Join(root, "include")}, []string{
		filepath.Join(root, "include", "core", "engine.hpp"),
		filepath.Join(root, "include", "util", "strings.hpp"),
	})
	return project{
		root:     root,
		resolver: include.NewResolver(idx, include.Config{Fuzzy: 8}),
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_WritesChangedFilesOnly(t *testing.T) {
	p := newProject(t)
	changed := filepath.Join(p.root, "src", "a.cpp")
	unchanged := filepath.Join(p.root, "src", "b.cpp")
	write(t, changed, "#include \"engine.h\"\n")
	write(t, unchanged, "#include \"util/strings.hpp\"\n")
	require.NoError(t, os.Chmod(changed, 0o600))

	report, err := Run(context.Background(), []string{changed, unchanged}, Options{Resolver: p.resolver, Jobs: 2})

	require.NoError(t, err)
	assert.Equal(t, "#include \"core/engine.hpp\"\n", read(t, changed))
	assert.Equal(t, "#include \"util/strings.hpp\"\n", read(t, unchanged))

	require.Len(t, report.Files, 2)
	assert.Equal(t, changed, report.Files[0].Path)
	assert.True(t, report.Files[0].Written)
	assert.False(t, report.Files[1].Written)
	assert.Equal(t, Stats{Total: 2, Replaced: 1, Untouched: 1}, report.Total)

	info, err := os.Stat(changed)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(p.root, "src"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestRun_DryRunLeavesFiles(t *testing.T) {
	p := newProject(t)
	file := filepath.Join(p.root, "src", "a.cpp")
	write(t, file, "#include \"engine.h\"\n")

	report, err := Run(context.Background(), []string{file}, Options{Resolver: p.resolver, DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, "#include \"engine.h\"\n", read(t, file))
	assert.Equal(t, 1, report.Total.Replaced)
	assert.False(t, report.Files[0].Written)
}

func TestRun_KeepsInputOrderAndGroupsDirectories(t *testing.T) {
	p := newProject(t)
	var files []string
	for i := 0; i < 20; i++ {
		dir := "x"
		if i%2 == 0 {
			dir = "y"
		}
		file := filepath.Join(p.root, "src", dir, fmt.Sprintf("f%02d.cpp", i))
		write(t, file, "#include \"engine.h\"\n#include \"nope_nope_nope_nope.h\"\n")
		files = append(files, file)
	}

	report, err := Run(context.Background(), files, Options{Resolver: p.resolver, Jobs: 4, DryRun: true})

	require.NoError(t, err)
	for i, res := range report.Files {
		assert.Equal(t, files[i], res.Path)
	}
	assert.Equal(t, Stats{Total: 40, Replaced: 20, Failed: 20}, report.Total)
	require.Len(t, report.Directories, 2)
	assert.Equal(t, filepath.Join(p.root, "src", "x"), report.Directories[0].Dir)
	assert.Equal(t, Stats{Total: 20, Replaced: 10, Failed: 10}, report.Directories[0].Stats)
	assert.Equal(t, filepath.Join(p.root, "src", "y"), report.Directories[1].Dir)
}

func TestRun_ReadErrorStopsRun(t *testing.T) {
	p := newProject(t)
	boom := errors.New("boom")
	reader := func(string) ([]byte, error) { return nil, boom }

	_, err := Run(context.Background(), []string{"/p/src/a.cpp"}, Options{Resolver: p.resolver, Reader: reader})

	assert.ErrorIs(t, err, boom)
}

func TestRun_RequiresResolver(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	p := newProject(t)
	write(t, filepath.Join(p.root, "src", "a.cpp"), "")
	write(t, filepath.Join(p.root, "src", "a.h"), "")
	write(t, filepath.Join(p.root, "src", "README.md"), "")
	write(t, filepath.Join(p.root, "src", "gen", "b.cc"), "")

	files, err := Sources(context.Background(), filepath.Join(p.root, "src"), []string{"gen/**"})

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(p.root, "src", "a.cpp"),
		filepath.Join(p.root, "src", "a.h"),
	}, files)
}
