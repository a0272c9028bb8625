package includegraph

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	inc := filepath.Join(dir, "include")
	a := filepath.Join(inc, "a.h")
	b := filepath.Join(inc, "b.h")
	c := filepath.Join(inc, "c.h")
	main := filepath.Join(dir, "src", "main.cpp")
	writeFile(t, a, "#include \"b.h\"\n")
	writeFile(t, b, "#include \"a.h\"\n#include \"c.h\"\n")
	writeFile(t, c, "#include <stdio.h>\n")
	writeFile(t, main, "#include \"a.h\"\n#include \"missing.h\"\n#include \"a.h\"\n")

	idx := include.NewIndex()
	idx.AddRoot(include.SearchRoot{Path: inc}, []string{a, b, c})
	resolver := include.NewResolver(idx, include.Config{})

	g, err := Build([]string{main, a, b, c}, dir, resolver, nil)
	require.NoError(t, err)

	edges, err := g.Edges()
	require.NoError(t, err)
	assert.Equal(t, [][2]string{
		{a, b},
		{b, a},
		{b, c},
		{main, a},
	}, edges)

	assert.Equal(t, []Unresolved{{File: main, Line: 2, Path: "missing.h"}}, g.Unresolved)

	cycles, err := g.Cycles()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{a, b}}, cycles)

	assert.Equal(t, "src/main.cpp", g.Label(main))

	var dot bytes.Buffer
	require.NoError(t, g.WriteDOT(&dot))
	assert.Contains(t, dot.String(), "digraph")
	assert.Contains(t, dot.String(), "src/main.cpp")
}

func TestBuild_SystemIncludesFollowedWhenProcessed(t *testing.T) {
	dir := t.TempDir()
	sys := filepath.Join(dir, "sys")
	zlib := filepath.Join(sys, "zlib.h")
	main := filepath.Join(dir, "main.cpp")
	writeFile(t, zlib, "")
	writeFile(t, main, "#include <zlib.h>\n")

	idx := include.NewIndex()
	idx.AddRoot(include.SearchRoot{Path: sys, System: true}, []string{zlib})

	ignoring, err := Build([]string{main}, dir, include.NewResolver(idx, include.Config{}), nil)
	require.NoError(t, err)
	edges, err := ignoring.Edges()
	require.NoError(t, err)
	assert.Empty(t, edges)

	following, err := Build([]string{main}, dir, include.NewResolver(idx, include.Config{Policy: include.Policy{ProcessSystem: true}}), nil)
	require.NoError(t, err)
	edges, err = following.Edges()
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{main, zlib}}, edges)
}
