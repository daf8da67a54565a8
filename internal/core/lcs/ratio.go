package lcs

import "unicode/utf8"

// Ratio returns the matching-block similarity of the raw strings a and b.
//
// The block search breaks ties by position, so the directional Matcher can
// give slightly different ratios for (a, b) and (b, a). Ratio always matches
// the pair in a canonical order (shorter first, then lexically smaller first)
// so that the result does not depend on argument order.
func Ratio(a, b string) float64 {
	if swapPair(a, b) {
		a, b = b, a
	}
	return NewMatcher(a, b).Ratio()
}

func swapPair(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la != lb {
		return la > lb
	}
	return a > b
}
