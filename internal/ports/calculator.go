package ports

import (
	"context"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
)

// PairScorer computes the five metric scores for one sentence pair.
type PairScorer interface {
	Compute(ctx context.Context, pair domain.SentencePair) (domain.Scores, error)
}
