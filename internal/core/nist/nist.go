// Package nist implements the NIST n-gram co-occurrence score for a single
// reference (Doddington, 2002).
package nist

import (
	"errors"
	"math"

	"github.com/baditaflorin/go_sts_similarity/internal/core/ngram"
)

// DefaultMaxOrder is the highest n-gram order scored by default.
const DefaultMaxOrder = 5

// Config holds configuration for the NIST scorer.
type Config struct {
	MaxOrder int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{MaxOrder: DefaultMaxOrder}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxOrder < 1 {
		return errors.New("nist: max order must be at least 1")
	}
	return nil
}

// Scorer computes NIST scores.
type Scorer struct {
	config Config
}

// NewScorer creates a NIST scorer.
func NewScorer(config Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{config: config}, nil
}

// Score returns the NIST score of candidate against reference.
//
// The score is 0 when the reference is empty or when the candidate has no
// n-grams of some order up to MaxOrder, i.e. it is shorter than MaxOrder
// tokens. Both cases would otherwise divide by zero.
func (s *Scorer) Score(reference, candidate []string) float64 {
	maxOrder := s.config.MaxOrder
	if len(reference) == 0 || len(candidate) < maxOrder {
		return 0
	}

	weights := informationWeights(reference, maxOrder)

	var precision float64
	for n := 1; n <= maxOrder; n++ {
		hyp := ngram.Count(candidate, n)
		ref := ngram.Count(reference, n)

		var info float64
		ngram.ClippedOverlap(hyp, ref, func(key string, count int) {
			info += weights[key] * float64(count)
		})
		precision += info / float64(hyp.Total())
	}

	return precision * LengthPenalty(len(reference), len(candidate))
}

// informationWeights computes Info(w1..wn) = log2(count(w1..wn-1) / count(w1..wn))
// over the reference, with the reference length standing in for the count of
// the empty prefix.
func informationWeights(reference []string, maxOrder int) map[string]float64 {
	freq := ngram.CountUpTo(reference, maxOrder)
	weights := make(map[string]float64)
	freq.Each(func(key string, count int) {
		numerator := len(reference)
		if prefix, ok := ngram.Prefix(key); ok {
			numerator = freq.Get(prefix)
		}
		weights[key] = math.Log2(float64(numerator) / float64(count))
	})
	return weights
}

// LengthPenalty is the NIST brevity penalty. It is 1 when the candidate is
// at least as long as the reference, 0.5 when it is two thirds as long, and
// decays smoothly below that. A zero-length reference yields 0.
func LengthPenalty(refLen, hypLen int) float64 {
	if refLen == 0 {
		return 0
	}
	ratio := float64(hypLen) / float64(refLen)
	if ratio > 0 && ratio < 1 {
		const ratioX, scoreX = 1.5, 0.5
		beta := math.Log(scoreX) / math.Pow(math.Log(ratioX), 2)
		return math.Exp(beta * math.Pow(math.Log(ratio), 2))
	}
	return math.Max(math.Min(ratio, 1), 0)
}
