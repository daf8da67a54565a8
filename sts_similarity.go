// sts_similarity.go
// Package stssimilarity compares sentence pairs with five string metrics and
// measures how well each metric predicts human similarity judgements.
//
// For a pair (reference, candidate) it computes NIST, BLEU, word error rate,
// the longest-common-substring ratio and the character edit distance. Over a
// labelled dataset it reports Pearson's r between every metric and the labels.
//
// This is the simple entry point; pkg/stseval exposes the full API.
package stssimilarity

import (
	"context"

	"github.com/baditaflorin/go_sts_similarity/pkg/stseval"
	"github.com/baditaflorin/l"
)

// Result holds the outcome of scoring one pair.
type Result struct {
	// Name of the metric set.
	Name string
	// Scores of the five metrics.
	Scores stseval.Scores
	// Details maps each metric name to its value.
	Details map[string]interface{}
}

// Config holds configuration options.
type Config struct {
	Workers int
	// Logger for tracing computation steps.
	Logger l.Logger
}

// Option defines a functional option for configuring the metrics.
type Option func(*Config)

// WithWorkers sets how many pairs are scored in parallel (0 = one per CPU).
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		cfg.Workers = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// STSSimilarity scores sentence pairs and evaluates metrics against labels.
type STSSimilarity struct {
	evaluator  *stseval.Evaluator
	logger     l.Logger
	ownsLogger bool
}

// New creates a new STSSimilarity. If no logger is provided, a default logger is created.
func New(opts ...Option) (*STSSimilarity, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	ownsLogger := cfg.Logger == nil
	if ownsLogger {
		logger, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = logger
	}

	ev, err := stseval.New(
		stseval.WithLogger(cfg.Logger),
		stseval.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return nil, err
	}
	return &STSSimilarity{evaluator: ev, logger: cfg.Logger, ownsLogger: ownsLogger}, nil
}

// Compute scores one pair; reference plays sentence A, candidate sentence B.
func (s *STSSimilarity) Compute(reference, candidate string) Result {
	return s.ComputeContext(context.Background(), reference, candidate)
}

// ComputeContext is Compute with a caller-supplied context. When scoring fails
// the scores are zero and Details["error"] holds the reason.
func (s *STSSimilarity) ComputeContext(ctx context.Context, reference, candidate string) Result {
	details := make(map[string]interface{}, 5)
	scores, err := s.evaluator.Score(ctx, stseval.SentencePair{A: reference, B: candidate})
	if err != nil {
		s.logger.Error("Failed to score pair", "error", err)
		details["error"] = err.Error()
		return Result{Name: "sts_similarity", Details: details}
	}

	for _, m := range []stseval.MetricName{stseval.NIST, stseval.BLEU, stseval.WordErrorRate, stseval.LcsRatio} {
		details[string(m)] = scores.Value(m)
	}
	details[string(stseval.EditDistance)] = scores.EditDistance

	s.logger.Info("Computed sts similarity", "details", details)
	return Result{
		Name:    "sts_similarity",
		Scores:  scores,
		Details: details,
	}
}

// Evaluate returns the correlation of every metric with labels.
func (s *STSSimilarity) Evaluate(ctx context.Context, pairs []stseval.SentencePair, labels []float64) (stseval.CorrelationResult, error) {
	return s.evaluator.Evaluate(ctx, pairs, labels)
}

// Close flushes the default logger. A logger passed with WithLogger is left open.
func (s *STSSimilarity) Close() error {
	if !s.ownsLogger {
		return nil
	}
	return s.logger.Close()
}
