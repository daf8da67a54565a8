package stssimilarity

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	logadapter "github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/pkg/stseval"
	"github.com/baditaflorin/l"
)

func newTestLogger(t *testing.T) l.Logger {
	t.Helper()
	logger, err := logadapter.NewBackend(logadapter.Options{Output: io.Discard})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestCompute(t *testing.T) {
	s, err := New(WithLogger(newTestLogger(t)), WithWorkers(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	tests := []struct {
		name      string
		reference string
		candidate string
		wantED    int
		wantLCS   float64
	}{
		{"identical", "A cat sat.", "A cat sat.", 0, 1},
		{"empty", "", "", 0, 0},
		{"one substitution", "kitten", "sitten", 1, 5.0 / 6.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := s.Compute(tc.reference, tc.candidate)
			if res.Name != "sts_similarity" {
				t.Errorf("Name = %q", res.Name)
			}
			if res.Scores.EditDistance != tc.wantED {
				t.Errorf("EditDistance = %d, want %d", res.Scores.EditDistance, tc.wantED)
			}
			if res.Scores.LcsRatio != tc.wantLCS {
				t.Errorf("LcsRatio = %v, want %v", res.Scores.LcsRatio, tc.wantLCS)
			}
			if got := res.Details[string(stseval.EditDistance)]; got != tc.wantED {
				t.Errorf("Details[EditDistance] = %v, want %d", got, tc.wantED)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	s, err := New(WithLogger(newTestLogger(t)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	pairs := []stseval.SentencePair{
		{A: "a cat sat", B: "a cat sat"},
		{A: "a cat sat", B: "a dog ran"},
	}
	result, err := s.Evaluate(context.Background(), pairs, []float64{5, 0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if r, ok := result.Lookup(stseval.EditDistance); !ok || r != -1 {
		t.Errorf("EditDistance correlation = %v (found %v), want -1", r, ok)
	}
}

func TestComputeContextError(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logadapter.NewBackend(logadapter.Options{Output: &buf})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	s, err := New(WithLogger(logger), WithWorkers(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := s.ComputeContext(ctx, "a cat sat", "a cat sat")

	if msg, ok := res.Details["error"].(string); !ok || !strings.Contains(msg, context.Canceled.Error()) {
		t.Errorf("Details[error] = %v, want %q", res.Details["error"], context.Canceled)
	}
	if res.Scores != (stseval.Scores{}) {
		t.Errorf("Scores = %+v, want zero on failure", res.Scores)
	}
	if _, ok := res.Details[string(stseval.NIST)]; ok {
		t.Error("failed result must not report metric values")
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strings.Contains(buf.String(), "Failed to score pair") {
		t.Errorf("log output missing failure record:\n%s", buf.String())
	}
}
