// Package editdistance provides Levenshtein distances over characters and
// tokens, and the symmetric word error rate built on the token distance.
package editdistance

import (
	"github.com/agnivade/levenshtein"

	"github.com/baditaflorin/go_sts_similarity/internal/pool"
)

var rowPool = pool.NewIntBufferPool(64)

// Chars returns the Levenshtein distance between the raw strings, counted in
// runes, with unit cost for insertion, deletion and substitution.
func Chars(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Tokens returns the Levenshtein distance between two token sequences.
func Tokens(a, b []string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prevBuf := rowPool.Get(len(b) + 1)
	currBuf := rowPool.Get(len(b) + 1)
	defer rowPool.Put(prevBuf)
	defer rowPool.Put(currBuf)
	prev, curr := *prevBuf, *currBuf

	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// WordErrorRate returns the token distance divided by the combined length of
// both sequences, which keeps it symmetric. Two empty sequences score 0.
func WordErrorRate(a, b []string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return float64(Tokens(a, b)) / float64(total)
}
