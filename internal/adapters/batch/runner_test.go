package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/google/go-cmp/cmp"
)

// lengthScorer reports the byte length of sentence A as its edit distance.
type lengthScorer struct {
	failOn string
}

func (s lengthScorer) Compute(ctx context.Context, pair domain.SentencePair) (domain.Scores, error) {
	if err := ctx.Err(); err != nil {
		return domain.Scores{}, err
	}
	if s.failOn != "" && pair.A == s.failOn {
		return domain.Scores{}, errors.New("boom")
	}
	return domain.Scores{EditDistance: len(pair.A)}, nil
}

func makePairs(n int) []domain.SentencePair {
	pairs := make([]domain.SentencePair, n)
	for i := range pairs {
		pairs[i] = domain.SentencePair{A: fmt.Sprintf("%0*d", i+1, 0), B: "x"}
	}
	return pairs
}

func TestRunPreservesOrder(t *testing.T) {
	pairs := makePairs(50)
	want := make([]domain.Scores, len(pairs))
	for i := range want {
		want[i] = domain.Scores{EditDistance: i + 1}
	}

	for _, workers := range []int{1, 4, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			r := NewRunner(lengthScorer{}, logger.NewNopLogger(), workers)
			got, err := r.Run(context.Background(), pairs)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Run() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunPropagatesError(t *testing.T) {
	pairs := makePairs(10)
	r := NewRunner(lengthScorer{failOn: pairs[3].A}, logger.NewNopLogger(), 3)
	if _, err := r.Run(context.Background(), pairs); err == nil {
		t.Fatal("expected error from failing pair")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(lengthScorer{}, logger.NewNopLogger(), 1)
	_, err := r.Run(ctx, makePairs(3))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunEmpty(t *testing.T) {
	r := NewRunner(lengthScorer{}, logger.NewNopLogger(), 2)
	got, err := r.Run(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("Run(nil) = %v, %v; want empty, nil", got, err)
	}
}
