package include

import "unicode"

const (
	insertCost     = 4
	changeCost     = 2
	capitalizeCost = 1
)

// Distance returns the weighted edit distance that turns key into query.
//
// key is the dictionary side (a header filename or a candidate path) and query
// is the text written in the include statement; callers keep that order. The
// first row and column of the table are seeded with plain indices rather than
// multiples of insertCost, which makes leading insertions cheap:
// Distance("a", "ba") is 1.
func Distance(key, query string) int {
	k := []rune(key)
	q := []rune(query)

	column := make([]int, len(k)+1)
	for y := range column {
		column[y] = y
	}

	for x := 1; x <= len(q); x++ {
		column[0] = x
		lastDiagonal := x - 1
		for y := 1; y <= len(k); y++ {
			oldDiagonal := column[y]
			column[y] = min(
				column[y]+insertCost,
				column[y-1]+insertCost,
				lastDiagonal+substitutionCost(k[y-1], q[x-1]),
			)
			lastDiagonal = oldDiagonal
		}
	}

	return column[len(k)]
}

func substitutionCost(a, b rune) int {
	switch {
	case a == b:
		return 0
	case unicode.ToLower(a) == unicode.ToLower(b):
		return capitalizeCost
	default:
		return changeCost
	}
}
