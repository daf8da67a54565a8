// Package correlation measures how well metric scores track human labels.
package correlation

import (
	"fmt"
	"math"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
)

// Pearson returns the product-moment correlation coefficient of x and y.
//
// x and y must have the same length of at least two. When either sequence
// is constant the coefficient is undefined and NaN is returned.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return math.NaN(), fmt.Errorf("%w: %d scores, %d labels", domain.ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return math.NaN(), fmt.Errorf("%w: got %d", domain.ErrTooFewSamples, len(x))
	}

	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), nil
	}
	if len(x) == 2 {
		return sign(x[1]-x[0]) * sign(y[1]-y[0]), nil
	}

	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r)), nil
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Evaluator correlates every metric's score sequence with the labels.
type Evaluator struct {
	logger ports.Logger
}

// NewEvaluator creates an evaluator.
func NewEvaluator(logger ports.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// Evaluate returns one coefficient per metric, in domain.Metrics order.
// A metric missing from table or misaligned with labels is an error; a
// constant sequence yields NaN for that metric only.
func (e *Evaluator) Evaluate(table domain.ScoreTable, labels []float64) (domain.CorrelationResult, error) {
	result := make(domain.CorrelationResult, 0, len(domain.Metrics))
	for _, m := range domain.Metrics {
		scores, ok := table[m]
		if !ok {
			return nil, domain.WrapError("evaluate", fmt.Errorf("%w: no scores for %s", domain.ErrLengthMismatch, m))
		}
		r, err := Pearson(scores, labels)
		if err != nil {
			return nil, domain.WrapError("evaluate "+string(m), err)
		}
		if math.IsNaN(r) {
			e.logger.Warn("Correlation undefined for constant sequence", "metric", string(m))
		}
		e.logger.Debug("Computed correlation", "metric", string(m), "r", r, "samples", len(scores))
		result = append(result, domain.Correlation{Metric: m, R: r})
	}
	return result, nil
}
