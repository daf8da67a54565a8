// Package lcs computes the Ratcliff/Obershelp similarity ratio: the longest
// common substring is matched first, then the unmatched text on either side
// of it is matched recursively.
package lcs

import "sort"

// autojunkMin is the length of b from which very frequent elements of b are
// ignored when seeding matches.
const autojunkMin = 200

// Match is a block of Size equal runes starting at A in a and B in b.
type Match struct {
	A, B, Size int
}

// Matcher finds matching blocks between two rune sequences. It is directional:
// index tables are built over b.
type Matcher struct {
	a, b    []rune
	b2j     map[rune][]int
	matches []Match
}

// NewMatcher prepares a matcher for a and b.
func NewMatcher(a, b string) *Matcher {
	m := &Matcher{a: []rune(a), b: []rune(b)}
	m.indexB()
	return m
}

func (m *Matcher) indexB() {
	m.b2j = make(map[rune][]int)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}
	n := len(m.b)
	if n < autojunkMin {
		return
	}
	// Elements occurring in more than 1% of b are too common to seed a match.
	ntest := n/100 + 1
	for r, idx := range m.b2j {
		if len(idx) > ntest {
			delete(m.b2j, r)
		}
	}
}

// LongestMatch returns the longest block of equal runes in a[alo:ahi] and
// b[blo:bhi]. Ties go to the block that starts earliest in a, then in b.
// A zero Size means there is no common rune.
func (m *Matcher) LongestMatch(alo, ahi, blo, bhi int) Match {
	besti, bestj, bestsize := alo, blo, 0
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Popular runes never seed a match but may still extend one.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}
	return Match{A: besti, B: bestj, Size: bestsize}
}

// MatchingBlocks returns the non-overlapping matching blocks in increasing
// order, with adjacent blocks merged.
func (m *Matcher) MatchingBlocks() []Match {
	if m.matches != nil {
		return m.matches
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var found []Match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		x := m.LongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if x.Size == 0 {
			continue
		}
		found = append(found, x)
		if s.alo < x.A && s.blo < x.B {
			queue = append(queue, span{s.alo, x.A, s.blo, x.B})
		}
		if x.A+x.Size < s.ahi && x.B+x.Size < s.bhi {
			queue = append(queue, span{x.A + x.Size, s.ahi, x.B + x.Size, s.bhi})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].A != found[j].A {
			return found[i].A < found[j].A
		}
		return found[i].B < found[j].B
	})

	merged := make([]Match, 0, len(found))
	for _, x := range found {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.A+last.Size == x.A && last.B+last.Size == x.B {
				last.Size += x.Size
				continue
			}
		}
		merged = append(merged, x)
	}
	m.matches = merged
	return merged
}

// Ratio returns 2*M/T where M is the number of matched runes and T the total
// number of runes in both sequences. Two empty sequences score 0.
func (m *Matcher) Ratio() float64 {
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 0
	}
	matched := 0
	for _, x := range m.MatchingBlocks() {
		matched += x.Size
	}
	return 2 * float64(matched) / float64(total)
}
