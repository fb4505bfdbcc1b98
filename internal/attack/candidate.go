package attack

import (
	"math"
	"sort"
)

// Candidate is one hypothesis produced during an attack. Candidates are
// immutable once produced; the engine only orders and filters them.
type Candidate struct {
	Columns   int     `json:"columns"`
	Perm      []int   `json:"perm"`
	KeyLength int     `json:"key_length"`
	Key       string  `json:"key"`
	Plaintext string  `json:"plaintext"`
	Score     float64 `json:"score"`
	Validated bool    `json:"validated,omitempty"`
}

// rankByScore orders candidates by ascending fit score. Ties fall back to
// (columns, key length, permutation) so the ordering is deterministic
// regardless of which worker produced a candidate first.
func rankByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !almostEqual(a.Score, b.Score) {
			return a.Score < b.Score
		}
		return branchLess(a, b)
	})
}

// rankByBranch orders candidates by their search branch alone, for the
// known-plaintext mode where no fit score exists.
func rankByBranch(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return branchLess(candidates[i], candidates[j])
	})
}

func branchLess(a, b Candidate) bool {
	if a.Columns != b.Columns {
		return a.Columns < b.Columns
	}
	if c := comparePerms(a.Perm, b.Perm); c != 0 {
		return c < 0
	}
	return a.KeyLength < b.KeyLength
}

func comparePerms(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
