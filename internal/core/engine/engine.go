package engine

import (
	"context"
	"fmt"

	"github.com/baditaflorin/go_sts_similarity/internal/core/bleu"
	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/core/editdistance"
	"github.com/baditaflorin/go_sts_similarity/internal/core/lcs"
	"github.com/baditaflorin/go_sts_similarity/internal/core/nist"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
)

// Config holds configuration for the metric engine.
type Config struct {
	NISTOrder int
	BLEUOrder int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		NISTOrder: nist.DefaultMaxOrder,
		BLEUOrder: bleu.DefaultMaxOrder,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if err := (nist.Config{MaxOrder: c.NISTOrder}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := (bleu.Config{MaxOrder: c.BLEUOrder}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Engine computes the five string metrics for a sentence pair.
//
// Sentence A is the reference and sentence B the candidate for NIST and BLEU.
// Word error rate uses the token sequences; the longest-common-substring
// ratio and edit distance use the raw, case-sensitive strings.
type Engine struct {
	config    Config
	logger    ports.Logger
	tokenizer ports.Tokenizer
	nist      *nist.Scorer
	bleu      *bleu.Scorer
}

// New creates a metric engine.
func New(config Config, logger ports.Logger, tokenizer ports.Tokenizer) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	nistScorer, err := nist.NewScorer(nist.Config{MaxOrder: config.NISTOrder})
	if err != nil {
		return nil, err
	}
	bleuScorer, err := bleu.NewScorer(bleu.Config{MaxOrder: config.BLEUOrder})
	if err != nil {
		return nil, err
	}
	return &Engine{
		config:    config,
		logger:    logger,
		tokenizer: tokenizer,
		nist:      nistScorer,
		bleu:      bleuScorer,
	}, nil
}

// Compute returns the scores for one pair. Degenerate input such as empty
// sentences yields defined values; the only error is context cancellation.
func (e *Engine) Compute(ctx context.Context, pair domain.SentencePair) (domain.Scores, error) {
	select {
	case <-ctx.Done():
		e.logger.Error("Computation cancelled", "error", ctx.Err())
		return domain.Scores{}, ctx.Err()
	default:
	}

	reference := e.tokenizer.Tokenize(pair.A)
	candidate := e.tokenizer.Tokenize(pair.B)
	e.logger.Debug("Tokenized pair",
		"reference_tokens", len(reference),
		"candidate_tokens", len(candidate),
	)

	scores := domain.Scores{
		NIST:          e.nist.Score(reference, candidate),
		BLEU:          e.bleu.Score(reference, candidate),
		WordErrorRate: editdistance.WordErrorRate(reference, candidate),
		LcsRatio:      lcs.Ratio(pair.A, pair.B),
		EditDistance:  editdistance.Chars(pair.A, pair.B),
	}

	e.logger.Debug("Computed pair scores",
		"nist", scores.NIST,
		"bleu", scores.BLEU,
		"wer", scores.WordErrorRate,
		"lcs", scores.LcsRatio,
		"edit_distance", scores.EditDistance,
	)
	return scores, nil
}
