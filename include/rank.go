package include

import "sort"

// Rank returns a copy of cands ordered by ascending score. Equal scores keep
// their generation order, so the first root and the first discovered header
// win ties.
func Rank(cands []Candidate) []Candidate {
	ranked := append([]Candidate(nil), cands...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() < ranked[j].Score()
	})
	return ranked
}
