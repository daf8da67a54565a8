// Package bleu implements sentence-level BLEU against a single reference,
// without smoothing.
package bleu

import (
	"errors"
	"math"

	"github.com/baditaflorin/go_sts_similarity/internal/core/ngram"
)

// DefaultMaxOrder is the conventional BLEU-4 order.
const DefaultMaxOrder = 4

// Config holds configuration for the BLEU scorer.
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
		return errors.New("bleu: max order must be at least 1")
	}
	return nil
}

// Scorer computes BLEU scores with uniform n-gram weights.
type Scorer struct {
	config Config
}

// NewScorer creates a BLEU scorer.
func NewScorer(config Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{config: config}, nil
}

// Score returns the BLEU score of candidate against reference.
//
// Modified precision at each order clips candidate counts to the reference
// counts and divides by max(1, candidate n-gram count). Without smoothing a
// zero precision at any order makes the geometric mean, and the score, 0.
func (s *Scorer) Score(reference, candidate []string) float64 {
	if len(candidate) == 0 {
		return 0
	}

	weight := 1 / float64(s.config.MaxOrder)
	var logSum float64
	for n := 1; n <= s.config.MaxOrder; n++ {
		numerator, denominator := ModifiedPrecision(reference, candidate, n)
		if numerator == 0 {
			return 0
		}
		logSum += weight * math.Log(float64(numerator)/float64(denominator))
	}

	return BrevityPenalty(len(reference), len(candidate)) * math.Exp(logSum)
}

// ModifiedPrecision returns the clipped match count and the denominator
// max(1, total candidate n-grams) for order n.
func ModifiedPrecision(reference, candidate []string, n int) (numerator, denominator int) {
	hyp := ngram.Count(candidate, n)
	ref := ngram.Count(reference, n)
	ngram.ClippedOverlap(hyp, ref, func(_ string, count int) {
		numerator += count
	})
	return numerator, max(1, hyp.Total())
}

// BrevityPenalty penalizes candidates shorter than the reference.
func BrevityPenalty(refLen, hypLen int) float64 {
	switch {
	case hypLen > refLen:
		return 1
	case hypLen == 0:
		return 0
	default:
		return math.Exp(1 - float64(refLen)/float64(hypLen))
	}
}
