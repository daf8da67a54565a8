// Package stseval scores sentence pairs with five string metrics (NIST, BLEU,
// word error rate, longest-common-substring ratio and edit distance) and
// correlates each metric with human similarity labels using Pearson's r.
package stseval

import (
	"context"
	"fmt"
	"time"

	"github.com/baditaflorin/go_sts_similarity/internal/adapters/batch"
	"github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_sts_similarity/internal/core/correlation"
	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/core/engine"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
	"github.com/baditaflorin/go_sts_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

type (
	// SentencePair is one (reference, candidate) pair.
	SentencePair = domain.SentencePair
	// Scores holds the five metric values of one pair.
	Scores = domain.Scores
	// MetricName names one of the five metrics.
	MetricName = domain.MetricName
	// Correlation is the coefficient of one metric.
	Correlation = domain.Correlation
	// CorrelationResult holds one coefficient per metric.
	CorrelationResult = domain.CorrelationResult
)

// Metric names, in report order.
const (
	NIST          = domain.NIST
	BLEU          = domain.BLEU
	WordErrorRate = domain.WordErrorRate
	LcsRatio      = domain.LcsRatio
	EditDistance  = domain.EditDistance
)

// Re-exported errors for errors.Is checks.
var (
	ErrLengthMismatch = domain.ErrLengthMismatch
	ErrTooFewSamples  = domain.ErrTooFewSamples
	ErrEmptyDataset   = domain.ErrEmptyDataset
	ErrInvalidConfig  = domain.ErrInvalidConfig
)

// Option defines a functional option for configuring an Evaluator.
type Option func(*evaluatorConfig)

type evaluatorConfig struct {
	NISTOrder    int
	BLEUOrder    int
	Workers      int
	Logger       ports.Logger
	Tokenizer    ports.Tokenizer
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *evaluatorConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithLogSink sets an already adapted logger.
func WithLogSink(lg ports.Logger) Option {
	return func(cfg *evaluatorConfig) {
		cfg.Logger = lg
	}
}

// WithQuietLogger discards all log output.
func WithQuietLogger() Option {
	return func(cfg *evaluatorConfig) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// WithTokenizer replaces the default Treebank tokenizer.
func WithTokenizer(t ports.Tokenizer) Option {
	return func(cfg *evaluatorConfig) {
		cfg.Tokenizer = t
	}
}

// WithWorkers sets the number of pairs scored in parallel. 0 means one per CPU.
func WithWorkers(n int) Option {
	return func(cfg *evaluatorConfig) {
		cfg.Workers = n
	}
}

// WithNISTOrder sets the highest n-gram order used by NIST.
func WithNISTOrder(n int) Option {
	return func(cfg *evaluatorConfig) {
		cfg.NISTOrder = n
	}
}

// WithBLEUOrder sets the highest n-gram order used by BLEU.
func WithBLEUOrder(n int) Option {
	return func(cfg *evaluatorConfig) {
		cfg.BLEUOrder = n
	}
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *evaluatorConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *evaluatorConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// Evaluator runs the metric engine over a dataset and correlates the results.
// It is safe for concurrent use.
type Evaluator struct {
	engine     *engine.Engine
	runner     *batch.Runner
	correlator *correlation.Evaluator
	tokenizer  ports.Tokenizer
	logger     ports.Logger
	ownsLogger bool
}

// New creates an Evaluator.
func New(opts ...Option) (*Evaluator, error) {
	defaults := engine.DefaultConfig()
	config := &evaluatorConfig{
		NISTOrder:    defaults.NISTOrder,
		BLEUOrder:    defaults.BLEUOrder,
		Workers:      batch.DefaultWorkers,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must not be negative", domain.ErrInvalidConfig)
	}

	ownsLogger := false
	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		ownsLogger = true
	}
	if config.Tokenizer == nil {
		config.Tokenizer = tokenizer.NewTreebankTokenizer()
	}

	eng, err := engine.New(engine.Config{
		NISTOrder: config.NISTOrder,
		BLEUOrder: config.BLEUOrder,
	}, config.Logger, config.Tokenizer)
	if err != nil {
		return nil, err
	}

	ev := &Evaluator{
		engine:     eng,
		runner:     batch.NewRunner(eng, config.Logger, config.Workers),
		correlator: correlation.NewEvaluator(config.Logger),
		tokenizer:  config.Tokenizer,
		logger:     config.Logger,
		ownsLogger: ownsLogger,
	}

	if config.WarmUp {
		ev.WarmUp(context.Background(), config.WarmUpConfig)
	}
	return ev, nil
}

// Workers returns the number of pairs scored in parallel.
func (e *Evaluator) Workers() int {
	return e.runner.Workers()
}

// Score computes the five metrics for one pair. Sentence A is the reference.
func (e *Evaluator) Score(ctx context.Context, pair SentencePair) (Scores, error) {
	return e.engine.Compute(ctx, pair)
}

// ScoreAll computes the metrics of every pair; result i belongs to pair i.
func (e *Evaluator) ScoreAll(ctx context.Context, pairs []SentencePair) ([]Scores, error) {
	return e.runner.Run(ctx, pairs)
}

// Evaluate scores every pair and returns Pearson's r of each metric against
// labels. pairs and labels must be aligned and hold at least two entries.
// A metric whose scores are all equal gets a NaN coefficient.
func (e *Evaluator) Evaluate(ctx context.Context, pairs []SentencePair, labels []float64) (CorrelationResult, error) {
	switch {
	case len(pairs) == 0:
		return nil, domain.WrapError("evaluate", domain.ErrEmptyDataset)
	case len(pairs) != len(labels):
		return nil, domain.WrapError("evaluate",
			fmt.Errorf("%w: %d pairs, %d labels", domain.ErrLengthMismatch, len(pairs), len(labels)))
	case len(pairs) < 2:
		return nil, domain.WrapError("evaluate", domain.ErrTooFewSamples)
	}

	startTime := time.Now()
	scores, err := e.runner.Run(ctx, pairs)
	if err != nil {
		return nil, domain.WrapError("evaluate", err)
	}
	result, err := e.correlator.Evaluate(domain.Collect(scores), labels)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Evaluation completed",
		"pairs", len(pairs),
		"duration", time.Since(startTime),
	)
	return result, nil
}

// WarmUp exercises the tokenizer and engine so that pools and compiled
// state are ready before the first request.
func (e *Evaluator) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	mgr := warmup.NewManager(e.logger, config)
	mgr.RegisterTokenizer(e.tokenizer)
	mgr.RegisterScorer(e.engine)
	mgr.WarmUp(ctx)
}

// Close flushes the logger if the Evaluator created it.
func (e *Evaluator) Close() error {
	if e.ownsLogger {
		return e.logger.Close()
	}
	return nil
}
