package lcs

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatcherRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"Both empty", "", "", 0},
		{"One empty", "abc", "", 0},
		{"Identical", "a cat sat", "a cat sat", 1},
		{"Disjoint", "abc", "xyz", 0},
		{"Kitten", "kitten", "sitting", 8.0 / 13.0},
		{"Directional forward", "a cat sat", "a dog ran", 1.0 / 3.0},
		{"Directional backward", "a dog ran", "a cat sat", 4.0 / 9.0},
		{"Case sensitive", "ABC", "abc", 0},
		{"Prefix", "The quick brown fox", "The quick brown fox jumps", 38.0 / 44.0},
		{"Popular runes never seed", "x" + strings.Repeat("ab", 120), strings.Repeat("ab", 120) + "y", 0},
		{"Popular runes extend", strings.Repeat("hello world ", 20), strings.Repeat("hello there ", 20), 0.025},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewMatcher(tc.a, tc.b).Ratio()
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Ratio() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchingBlocks(t *testing.T) {
	got := NewMatcher("kitten", "sitting").MatchingBlocks()
	want := []Match{{A: 1, B: 1, Size: 3}, {A: 5, B: 5, Size: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MatchingBlocks() mismatch (-want +got):\n%s", diff)
	}

	got = NewMatcher("abxcd", "abcd").MatchingBlocks()
	want = []Match{{A: 0, B: 0, Size: 2}, {A: 3, B: 2, Size: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MatchingBlocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestLongestMatch(t *testing.T) {
	m := NewMatcher(" abcd", "abcd abcd")
	got := m.LongestMatch(0, 5, 0, 9)
	want := Match{A: 0, B: 4, Size: 5}
	if got != want {
		t.Errorf("LongestMatch() = %+v, want %+v", got, want)
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"a cat sat", "a dog ran"},
		{"kitten", "sitting"},
		{"A man is playing a guitar.", "A woman plays the violin."},
		{"", "abc"},
		{"naïve café", "naive cafe"},
	}
	for _, p := range pairs {
		ab, ba := Ratio(p[0], p[1]), Ratio(p[1], p[0])
		if ab != ba {
			t.Errorf("Ratio(%q, %q) = %v but swapped = %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Ratio(%q, %q) = %v out of [0, 1]", p[0], p[1], ab)
		}
	}
	if got := Ratio("a cat sat", "a dog ran"); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("Ratio(a cat sat, a dog ran) = %v, want 1/3", got)
	}
}
