package domain

import "math"

// MetricName identifies one of the five string metrics.
type MetricName string

const (
	NIST          MetricName = "NIST"
	BLEU          MetricName = "BLEU"
	WordErrorRate MetricName = "WordErrorRate"
	LcsRatio      MetricName = "LcsRatio"
	EditDistance  MetricName = "EditDistance"
)

// Metrics lists every metric in canonical reporting order.
var Metrics = []MetricName{NIST, BLEU, WordErrorRate, LcsRatio, EditDistance}

// DisplayName returns the human readable label used in reports.
func (m MetricName) DisplayName() string {
	switch m {
	case WordErrorRate:
		return "Word Error Rate"
	case LcsRatio:
		return "Longest common substring"
	case EditDistance:
		return "Edit Distance"
	default:
		return string(m)
	}
}

// SentencePair holds the two raw sentences of one STS record.
// A is the reference and B the candidate for the directional metrics.
type SentencePair struct {
	A string `json:"sentence_a" yaml:"sentence_a"`
	B string `json:"sentence_b" yaml:"sentence_b"`
}

// TokenSequence is the lowercase word tokenization of a sentence.
type TokenSequence []string

// Scores holds the five metric values computed for one pair.
type Scores struct {
	NIST          float64 `json:"nist"`
	BLEU          float64 `json:"bleu"`
	WordErrorRate float64 `json:"word_error_rate"`
	LcsRatio      float64 `json:"lcs_ratio"`
	EditDistance  int     `json:"edit_distance"`
}

// Value returns the score of the named metric as a float64.
func (s Scores) Value(m MetricName) float64 {
	switch m {
	case NIST:
		return s.NIST
	case BLEU:
		return s.BLEU
	case WordErrorRate:
		return s.WordErrorRate
	case LcsRatio:
		return s.LcsRatio
	case EditDistance:
		return float64(s.EditDistance)
	}
	return math.NaN()
}

// ScoreTable holds one score sequence per metric, index-aligned with the pairs.
type ScoreTable map[MetricName][]float64

// Collect turns per-pair records into aligned per-metric sequences.
func Collect(records []Scores) ScoreTable {
	table := make(ScoreTable, len(Metrics))
	for _, m := range Metrics {
		seq := make([]float64, len(records))
		for i, r := range records {
			seq[i] = r.Value(m)
		}
		table[m] = seq
	}
	return table
}

// Len returns the number of pairs in the table.
func (t ScoreTable) Len() int {
	for _, seq := range t {
		return len(seq)
	}
	return 0
}

// Correlation is the Pearson coefficient of one metric against the labels.
// R is NaN when either sequence has zero variance.
type Correlation struct {
	Metric MetricName
	R      float64
}

// Defined reports whether the coefficient is a number.
func (c Correlation) Defined() bool {
	return !math.IsNaN(c.R)
}

// CorrelationResult holds one coefficient per metric in canonical order.
type CorrelationResult []Correlation

// Lookup returns the coefficient of the named metric.
func (r CorrelationResult) Lookup(m MetricName) (float64, bool) {
	for _, c := range r {
		if c.Metric == m {
			return c.R, true
		}
	}
	return math.NaN(), false
}

// AsMap returns the result keyed by metric name.
func (r CorrelationResult) AsMap() map[MetricName]float64 {
	out := make(map[MetricName]float64, len(r))
	for _, c := range r {
		out[c.Metric] = c.R
	}
	return out
}
