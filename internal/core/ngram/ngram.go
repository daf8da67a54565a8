// Package ngram counts contiguous token n-grams in first-occurrence order.
package ngram

import (
	"strconv"
	"strings"
)

// Key returns the map key of an n-gram. Every token is written as
// "<byte length>:<token>", so keys stay unambiguous whatever the tokens contain.
func Key(tokens []string) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(strconv.Itoa(len(t)))
		sb.WriteByte(':')
		sb.WriteString(t)
	}
	return sb.String()
}

// Prefix returns the key of the n-gram without its last token.
// It reports false for unigrams and malformed keys.
func Prefix(key string) (string, bool) {
	pos, last := 0, -1
	for pos < len(key) {
		colon := strings.IndexByte(key[pos:], ':')
		if colon < 0 {
			return "", false
		}
		n, err := strconv.Atoi(key[pos : pos+colon])
		if err != nil || n < 0 || pos+colon+1+n > len(key) {
			return "", false
		}
		last = pos
		pos += colon + 1 + n
	}
	if last <= 0 {
		return "", false
	}
	return key[:last], true
}

// Counts is a multiset of n-grams that remembers insertion order so that
// sums over it are deterministic.
type Counts struct {
	keys   []string
	counts map[string]int
	total  int
}

// NewCounts returns an empty multiset.
func NewCounts() *Counts {
	return &Counts{counts: make(map[string]int)}
}

// Add increments the count of key.
func (c *Counts) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
	c.total++
}

// Get returns the count of key.
func (c *Counts) Get(key string) int {
	return c.counts[key]
}

// Total returns the number of n-grams added.
func (c *Counts) Total() int {
	return c.total
}

// Each calls fn for every distinct n-gram in insertion order.
func (c *Counts) Each(fn func(key string, count int)) {
	for _, k := range c.keys {
		fn(k, c.counts[k])
	}
}

// Count returns the n-grams of exactly order n. Sequences shorter than n
// yield an empty multiset.
func Count(tokens []string, n int) *Counts {
	c := NewCounts()
	if n <= 0 {
		return c
	}
	for i := 0; i+n <= len(tokens); i++ {
		c.Add(Key(tokens[i : i+n]))
	}
	return c
}

// CountUpTo returns the n-grams of every order from 1 to maxOrder in one multiset.
func CountUpTo(tokens []string, maxOrder int) *Counts {
	c := NewCounts()
	for n := 1; n <= maxOrder; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			c.Add(Key(tokens[i : i+n]))
		}
	}
	return c
}

// ClippedOverlap calls fn for every n-gram of candidate that also occurs in
// reference, with its count clipped to the reference count.
func ClippedOverlap(candidate, reference *Counts, fn func(key string, count int)) {
	candidate.Each(func(key string, count int) {
		if ref := reference.Get(key); ref > 0 {
			fn(key, min(count, ref))
		}
	})
}
