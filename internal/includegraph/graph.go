package includegraph

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/LegacyCodeHQ/incfix/include"
	"github.com/LegacyCodeHQ/incfix/internal/rewrite"
	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// Unresolved is an include the resolver found no header for.
type Unresolved struct {
	File string
	Line int
	Path string
}

// Graph is the include graph of a source tree: an edge from A to B means A
// includes B once includes are resolved the way fix would resolve them.
type Graph struct {
	g          graphlib.Graph[string, string]
	baseDir    string
	Unresolved []Unresolved
}

// Build parses every file and resolves its includes. System includes are only
// followed when the resolver's policy processes them.
func Build(files []string, baseDir string, resolver *include.Resolver, read rewrite.ContentReader) (*Graph, error) {
	if read == nil {
		read = rewrite.FilesystemReader
	}

	out := &Graph{
		g:       graphlib.New(graphlib.StringHash, graphlib.Directed()),
		baseDir: baseDir,
	}
	processSystem := resolver.Policy().ProcessSystem

	for _, file := range files {
		if err := out.addVertex(file); err != nil {
			return nil, err
		}

		content, err := read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		includes, err := ParseIncludes(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse includes in %s: %w", file, err)
		}

		for _, inc := range includes {
			if inc.System && !processSystem {
				continue
			}

			outcome, ok := resolver.Fix(include.Statement{Path: inc.Path, System: inc.System, File: file})
			if !ok {
				out.Unresolved = append(out.Unresolved, Unresolved{File: file, Line: inc.Line, Path: inc.Path})
				continue
			}

			target := filepath.Join(outcome.Winner.Root.Path, filepath.FromSlash(outcome.Winner.Header))
			if err := out.addVertex(target); err != nil {
				return nil, err
			}
			if err := out.g.AddEdge(file, target); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", file, target, err)
			}
		}
	}

	return out, nil
}

func (g *Graph) addVertex(path string) error {
	err := g.g.AddVertex(path, graphlib.VertexAttribute("label", g.label(path)))
	if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add %s: %w", path, err)
	}
	return nil
}

// Edges returns every edge as a sorted list of from/to pairs.
func (g *Graph) Edges() ([][2]string, error) {
	edges, err := g.g.Edges()
	if err != nil {
		return nil, err
	}

	out := make([][2]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, [2]string{e.Source, e.Target})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out, nil
}

// Cycles returns the groups of files that include each other, each sorted,
// ordered by their first file.
func (g *Graph) Cycles() ([][]string, error) {
	components, err := graphlib.StronglyConnectedComponents(g.g)
	if err != nil {
		return nil, err
	}

	var cycles [][]string
	for _, c := range components {
		if len(c) < 2 {
			continue
		}
		cycle := append([]string(nil), c...)
		sort.Strings(cycle)
		cycles = append(cycles, cycle)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles, nil
}

// WriteDOT renders the graph in Graphviz DOT format.
func (g *Graph) WriteDOT(w io.Writer) error {
	return draw.DOT(g.g, w, draw.GraphAttribute("rankdir", "LR"))
}

// Label returns the name a file is displayed with.
func (g *Graph) Label(path string) string {
	return g.label(path)
}

func (g *Graph) label(path string) string {
	if g.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(g.baseDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
