package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), logger.NewNopLogger(), tokenizer.NewTreebankTokenizer())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func compute(t *testing.T, e *Engine, a, b string) domain.Scores {
	t.Helper()
	s, err := e.Compute(context.Background(), domain.SentencePair{A: a, B: b})
	if err != nil {
		t.Fatalf("Compute(%q, %q): %v", a, b, err)
	}
	return s
}

func TestComputeIdenticalPair(t *testing.T) {
	e := newTestEngine(t)
	s := compute(t, e, "A man is playing a large flute.", "A man is playing a large flute.")

	if s.EditDistance != 0 {
		t.Errorf("EditDistance = %d, want 0", s.EditDistance)
	}
	if s.LcsRatio != 1 {
		t.Errorf("LcsRatio = %v, want 1", s.LcsRatio)
	}
	if s.WordErrorRate != 0 {
		t.Errorf("WordErrorRate = %v, want 0", s.WordErrorRate)
	}
	if s.BLEU != 1 {
		t.Errorf("BLEU = %v, want 1", s.BLEU)
	}
	if s.NIST <= 0 {
		t.Errorf("NIST = %v, want > 0", s.NIST)
	}
}

func TestComputeEmptyPair(t *testing.T) {
	e := newTestEngine(t)
	s := compute(t, e, "", "")
	if s != (domain.Scores{}) {
		t.Errorf("Compute(\"\", \"\") = %+v, want all zero", s)
	}
}

func TestComputeShortPairs(t *testing.T) {
	e := newTestEngine(t)

	same := compute(t, e, "a cat sat", "a cat sat")
	other := compute(t, e, "a cat sat", "a dog ran")

	if same.EditDistance != 0 || other.EditDistance <= 0 {
		t.Errorf("EditDistance = [%d, %d], want [0, >0]", same.EditDistance, other.EditDistance)
	}
	if same.WordErrorRate != 0 || other.WordErrorRate <= 0 {
		t.Errorf("WordErrorRate = [%v, %v], want [0, >0]", same.WordErrorRate, other.WordErrorRate)
	}
	// Three tokens are shorter than both n-gram orders.
	for _, s := range []domain.Scores{same, other} {
		if s.NIST != 0 || s.BLEU != 0 {
			t.Errorf("NIST/BLEU = %v/%v, want 0/0 for three-token sentences", s.NIST, s.BLEU)
		}
	}
}

func TestComputeDisjointPair(t *testing.T) {
	e := newTestEngine(t)
	a, b := "abcdef", "uvwxyz"
	s := compute(t, e, a, b)
	if s.EditDistance < len(a) {
		t.Errorf("EditDistance = %d, want >= %d", s.EditDistance, len(a))
	}
	if s.LcsRatio != 0 {
		t.Errorf("LcsRatio = %v, want 0", s.LcsRatio)
	}
	if s.WordErrorRate != 0.5 {
		t.Errorf("WordErrorRate = %v, want 0.5", s.WordErrorRate)
	}
}

func TestComputeSymmetricMetrics(t *testing.T) {
	e := newTestEngine(t)
	a := "A woman is slicing an onion."
	b := "A man is cutting onions on the table."

	ab := compute(t, e, a, b)
	ba := compute(t, e, b, a)

	if ab.EditDistance != ba.EditDistance {
		t.Errorf("EditDistance not symmetric: %d vs %d", ab.EditDistance, ba.EditDistance)
	}
	if ab.LcsRatio != ba.LcsRatio {
		t.Errorf("LcsRatio not symmetric: %v vs %v", ab.LcsRatio, ba.LcsRatio)
	}
	if ab.WordErrorRate != ba.WordErrorRate {
		t.Errorf("WordErrorRate not symmetric: %v vs %v", ab.WordErrorRate, ba.WordErrorRate)
	}
}

func TestComputeControlCharacters(t *testing.T) {
	e := newTestEngine(t)
	text := "x\x1fy is here now ok"
	s := compute(t, e, text, text)

	// tokens x y is here now ok are all distinct, so only unigrams carry information
	if want := math.Log2(6); math.Abs(s.NIST-want) > 1e-9 {
		t.Errorf("NIST = %v, want %v", s.NIST, want)
	}
	if s.BLEU != 1 || s.WordErrorRate != 0 || s.LcsRatio != 1 || s.EditDistance != 0 {
		t.Errorf("Compute(identical) = %+v", s)
	}
}

func TestComputeCancelled(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Compute(ctx, domain.SentencePair{A: "a", B: "b"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Compute() error = %v, want context.Canceled", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{NISTOrder: 0, BLEUOrder: 4}, logger.NewNopLogger(), tokenizer.NewTreebankTokenizer())
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}
