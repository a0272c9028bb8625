package include

import "path/filepath"

// SearchRoot is a directory that include paths may be resolved against.
type SearchRoot struct {
	Path   string
	System bool
}

func (r SearchRoot) String() string {
	if r.System {
		return "<" + r.Path + ">"
	}
	return r.Path
}

// HeaderEntry is one header file discovered under a search root.
type HeaderEntry struct {
	// Path is the absolute path of the header.
	Path string
	// Root is the position of the owning root in the index.
	Root int
}

// Name returns the header's filename.
func (e HeaderEntry) Name() string {
	return filepath.Base(e.Path)
}

// Index maps each search root to the headers found beneath it. Roots keep
// their insertion order and headers keep their discovery order so that
// ranking ties resolve the same way on every run.
//
// An Index must not be modified once resolution starts.
type Index struct {
	roots   []SearchRoot
	headers [][]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// AddRoot appends a root and its headers. Roots are never merged, even when
// two of them overlap on disk.
func (idx *Index) AddRoot(root SearchRoot, headers []string) {
	idx.roots = append(idx.roots, root)
	idx.headers = append(idx.headers, append([]string(nil), headers...))
}

// Roots returns the configured roots in insertion order.
func (idx *Index) Roots() []SearchRoot {
	return append([]SearchRoot(nil), idx.roots...)
}

// Root returns the root at position i.
func (idx *Index) Root(i int) SearchRoot {
	return idx.roots[i]
}

// Headers returns the headers of the root at position i.
func (idx *Index) Headers(i int) []string {
	return append([]string(nil), idx.headers[i]...)
}

// Entries returns every header in root order, then discovery order.
func (idx *Index) Entries() []HeaderEntry {
	entries := make([]HeaderEntry, 0, idx.Len())
	for i, hdrs := range idx.headers {
		for _, h := range hdrs {
			entries = append(entries, HeaderEntry{Path: h, Root: i})
		}
	}
	return entries
}

// Len returns the total number of indexed headers.
func (idx *Index) Len() int {
	n := 0
	for _, hdrs := range idx.headers {
		n += len(hdrs)
	}
	return n
}

// WithRenamed returns a copy of the index where every header found in
// renamed is replaced by its new path. Order is unchanged.
func (idx *Index) WithRenamed(renamed map[string]string) *Index {
	out := NewIndex()
	for i, root := range idx.roots {
		hdrs := make([]string, len(idx.headers[i]))
		for j, h := range idx.headers[i] {
			if to, ok := renamed[h]; ok {
				h = to
			}
			hdrs[j] = h
		}
		out.AddRoot(root, hdrs)
	}
	return out
}
