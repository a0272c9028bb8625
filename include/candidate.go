package include

import (
	"path"
	"path/filepath"
	"strings"
)

// filenameWeight makes filename similarity dominate path similarity. It holds
// as long as path distances between competing candidates differ by less than
// this amount, which is true for realistic include paths.
const filenameWeight = 200

// NoPathMatch is the path distance of a candidate for which no relative form
// could be compared against the statement.
const NoPathMatch = 1 << 30

// Candidate is a proposed replacement path for one include statement.
type Candidate struct {
	// Root is the search root the header is expressed against.
	Root SearchRoot
	// Header is the slash-separated header path relative to Root.
	Header string

	FilenameDistance int
	PathDistance     int

	// Local marks a header found next to the including file.
	Local bool
}

// Score is the ranking key: lower is better.
func (c Candidate) Score() int {
	return c.FilenameDistance*filenameWeight + c.PathDistance
}

// Options configures candidate generation.
type Options struct {
	// Fuzzy is the largest filename distance accepted for a non-exact match.
	// Zero disables fuzzy matching.
	Fuzzy int
	// PreferRelativeToRoot re-expresses headers found next to the including
	// file relative to a user search root when possible.
	PreferRelativeToRoot bool
	// FileExists reports whether a file is present on disk. When nil, the
	// local directory of the including file is never consulted.
	FileExists func(path string) bool
}

// Generate returns every plausible replacement for stmt, in root order and
// then header discovery order. An empty result means the include cannot be
// resolved.
func Generate(stmt Statement, idx *Index, opts Options) []Candidate {
	var cands []Candidate

	if !stmt.System {
		if c, ok := localCandidate(stmt, idx, opts); ok {
			cands = append(cands, c)
		}
	}

	written := filepath.ToSlash(stmt.Path)
	name := path.Base(written)

	for _, entry := range idx.Entries() {
		root := idx.Root(entry.Root)
		header, ok := relativeTo(root.Path, entry.Path)
		if !ok {
			continue
		}

		distance := 0
		if entry.Name() != name {
			if opts.Fuzzy <= 0 {
				continue
			}
			distance = min(Distance(entry.Name(), name), Distance(entry.Name(), written))
			if distance > opts.Fuzzy {
				continue
			}
		}

		cands = append(cands, Candidate{
			Root:             root,
			Header:           header,
			FilenameDistance: distance,
			PathDistance:     PathDistance(stmt, root, header),
		})
	}

	return cands
}

func localCandidate(stmt Statement, idx *Index, opts Options) (Candidate, bool) {
	if opts.FileExists == nil {
		return Candidate{}, false
	}

	dir := filepath.Dir(stmt.File)
	local := filepath.Join(dir, filepath.FromSlash(stmt.Path))
	if !opts.FileExists(local) {
		return Candidate{}, false
	}

	if opts.PreferRelativeToRoot {
		var best Candidate
		found := false
		for _, root := range idx.Roots() {
			if root.System {
				continue
			}
			rel, ok := relativeTo(root.Path, local)
			if !ok {
				continue
			}
			if !found || len(rel) < len(best.Header) {
				best = Candidate{Root: root, Header: rel, Local: true}
				found = true
			}
		}
		if found {
			return best, true
		}
	}

	return Candidate{
		Root:   SearchRoot{Path: dir},
		Header: stmt.Path,
		Local:  true,
	}, true
}

// PathDistance compares the statement text with the header expressed relative
// to the including file's directory and relative to its own root, and returns
// the smaller distance. The file-relative form only counts when it stays
// inside that directory.
func PathDistance(stmt Statement, root SearchRoot, header string) int {
	written := filepath.ToSlash(stmt.Path)
	best := NoPathMatch

	full := filepath.Join(root.Path, filepath.FromSlash(header))
	if rel, ok := relativeTo(filepath.Dir(stmt.File), full); ok {
		best = Distance(rel, written)
	}
	if header != "" {
		best = min(best, Distance(header, written))
	}

	return best
}

// relativeTo expresses target relative to base with forward slashes. It fails
// when the relative form would climb out of base.
func relativeTo(base, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", false
	}
	return rel, true
}
