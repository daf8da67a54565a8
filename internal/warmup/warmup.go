package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 200,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger     ports.Logger
	scorers    []ports.PairScorer
	tokenizers []ports.Tokenizer
	config     WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a pair scorer to be warmed up
func (wm *Manager) RegisterScorer(s ports.PairScorer) {
	wm.scorers = append(wm.scorers, s)
}

// RegisterTokenizer adds a tokenizer to be warmed up
func (wm *Manager) RegisterTokenizer(t ports.Tokenizer) {
	wm.tokenizers = append(wm.tokenizers, t)
}

// WarmUp runs the warmup process for all registered components.
// It returns the number of pairs scored.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.scorers)+len(wm.tokenizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpTokenizers(warmupCtx)
	scored := wm.warmUpScorers(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"pairs", scored,
	)
	return scored
}

func (wm *Manager) warmUpTokenizers(ctx context.Context) {
	if len(wm.tokenizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up tokenizers", "count", len(wm.tokenizers))

	sampleText := generateSampleText(wm.config.SampleTextSize)

	wm.parallel(ctx, func(int) {
		for _, tok := range wm.tokenizers {
			_ = tok.Tokenize(sampleText)
		}
	})
}

func (wm *Manager) warmUpScorers(ctx context.Context) int {
	if len(wm.scorers) == 0 {
		return 0
	}

	wm.logger.Debug("Warming up scorers", "count", len(wm.scorers))

	// Sample pairs of different similarity levels
	original := generateSampleText(wm.config.SampleTextSize)
	pairs := []domain.SentencePair{
		{A: original, B: original},
		{A: original, B: generateSimilarText(original, 0.1)},
		{A: original, B: generateSimilarText(original, 0.5)},
	}

	var (
		mu     sync.Mutex
		scored int
	)
	wm.parallel(ctx, func(j int) {
		n := 0
		for _, s := range wm.scorers {
			if _, err := s.Compute(ctx, pairs[j%len(pairs)]); err == nil {
				n++
			}
		}
		mu.Lock()
		scored += n
		mu.Unlock()
	})
	return scored
}

// parallel runs fn Iterations times on each of Concurrency goroutines,
// stopping early when ctx is done.
func (wm *Manager) parallel(ctx context.Context, fn func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fn(j)
			}
		}()
	}
	wg.Wait()
}

// generateSampleText creates sample text of roughly the specified size,
// split into short sentences.
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua",
	}

	var sb strings.Builder
	wordsNeeded := size / 5 // Assuming average word length of 5

	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
		if i%12 == 11 {
			sb.WriteString(".")
		}
	}
	return sb.String()
}

// generateSimilarText replaces the first diffRatio share of words in original.
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	newWords := make([]string, len(words))
	copy(newWords, words)
	for i := 0; i < changeCount && i < len(newWords); i++ {
		newWords[i] = replacements[i%len(replacements)]
	}
	return strings.Join(newWords, " ")
}
