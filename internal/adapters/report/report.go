// Package report renders correlation results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
)

// Format selects the rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatTable, FormatMarkdown, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown report format %q (want text, table, markdown or json)", domain.ErrInvalidConfig, s)
}

// Report is the outcome of one evaluation run.
type Report struct {
	RunID        string
	Source       string
	Pairs        int
	Workers      int
	Elapsed      time.Duration
	Correlations domain.CorrelationResult
}

// New creates a report with a fresh run ID.
func New(source string, pairs int, result domain.CorrelationResult) Report {
	return Report{
		RunID:        uuid.NewString(),
		Source:       source,
		Pairs:        pairs,
		Correlations: result,
	}
}

// FormatCoefficient prints r with three decimals, or "nan" when undefined.
func FormatCoefficient(r float64) string {
	if math.IsNaN(r) {
		return "nan"
	}
	return fmt.Sprintf("%.03f", r)
}

// Write renders the report to w.
func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatText, "":
		return r.writeText(w)
	case FormatTable:
		_, err := fmt.Fprintln(w, r.table().Render())
		return err
	case FormatMarkdown:
		_, err := fmt.Fprintln(w, r.table().RenderMarkdown())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.JSON())
	}
	_, err := ParseFormat(string(format))
	return err
}

func (r Report) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Semantic textual similarity for %s\n\n", r.Source); err != nil {
		return err
	}
	for _, c := range r.Correlations {
		if _, err := fmt.Fprintf(w, "%s correlation: %s\n", c.Metric.DisplayName(), FormatCoefficient(c.R)); err != nil {
			return err
		}
	}
	return nil
}

func (r Report) table() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Semantic textual similarity for %s (%d pairs)", r.Source, r.Pairs)
	tw.AppendHeader(table.Row{"Metric", "Pearson r"})
	for _, c := range r.Correlations {
		tw.AppendRow(table.Row{c.Metric.DisplayName(), FormatCoefficient(c.R)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return tw
}

// CorrelationJSON is the wire form of one coefficient. R is null when undefined.
type CorrelationJSON struct {
	Metric  domain.MetricName `json:"metric"`
	Display string            `json:"display_name"`
	R       *float64          `json:"r"`
}

// JSONReport is the wire form of a report.
type JSONReport struct {
	RunID        string            `json:"run_id"`
	Source       string            `json:"source,omitempty"`
	Pairs        int               `json:"pairs"`
	Workers      int               `json:"workers,omitempty"`
	Elapsed      string            `json:"elapsed,omitempty"`
	Correlations []CorrelationJSON `json:"correlations"`
}

// JSON converts the report to its wire form.
func (r Report) JSON() JSONReport {
	out := JSONReport{
		RunID:        r.RunID,
		Source:       r.Source,
		Pairs:        r.Pairs,
		Workers:      r.Workers,
		Correlations: Correlations(r.Correlations),
	}
	if r.Elapsed > 0 {
		out.Elapsed = r.Elapsed.String()
	}
	return out
}

// Correlations converts coefficients to their wire form.
func Correlations(result domain.CorrelationResult) []CorrelationJSON {
	out := make([]CorrelationJSON, 0, len(result))
	for _, c := range result {
		cj := CorrelationJSON{Metric: c.Metric, Display: c.Metric.DisplayName()}
		if c.Defined() {
			r := c.R
			cj.R = &r
		}
		out = append(out, cj)
	}
	return out
}
