package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
)

// DefaultWorkers is the default number of worker goroutines.
// 0 means use runtime.NumCPU().
const DefaultWorkers = 0

// Runner scores every pair of a dataset, optionally in parallel.
// Result i always belongs to pair i.
type Runner struct {
	scorer  ports.PairScorer
	logger  ports.Logger
	workers int
}

// NewRunner creates a runner. workers <= 0 selects runtime.NumCPU().
func NewRunner(scorer ports.PairScorer, logger ports.Logger, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{scorer: scorer, logger: logger, workers: workers}
}

// Workers returns the effective worker count.
func (r *Runner) Workers() int {
	return r.workers
}

// Run scores all pairs. The first error cancels the remaining work.
func (r *Runner) Run(ctx context.Context, pairs []domain.SentencePair) ([]domain.Scores, error) {
	startTime := time.Now()
	r.logger.Info("Scoring pairs", "pairs", len(pairs), "workers", r.workers)

	results := make([]domain.Scores, len(pairs))
	var err error
	if r.workers == 1 {
		err = r.runSequential(ctx, pairs, results)
	} else {
		err = r.runParallel(ctx, pairs, results)
	}
	if err != nil {
		r.logger.Error("Scoring failed", "error", err)
		return nil, err
	}

	r.logger.Info("Scored pairs",
		"pairs", len(pairs),
		"duration", time.Since(startTime),
	)
	return results, nil
}

func (r *Runner) runSequential(ctx context.Context, pairs []domain.SentencePair, results []domain.Scores) error {
	for i, pair := range pairs {
		scores, err := r.scorer.Compute(ctx, pair)
		if err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
		results[i] = scores
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, pairs []domain.SentencePair, results []domain.Scores) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, pair := range pairs {
		g.Go(func() error {
			scores, err := r.scorer.Compute(gctx, pair)
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
			results[i] = scores
			return nil
		})
	}
	return g.Wait()
}
