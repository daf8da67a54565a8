// Package dataset reads STS-benchmark style sentence-pair files.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
)

// Column layout of an STS-benchmark row: genre, file, year, id, score,
// sentence1, sentence2, then optional source columns.
const (
	scoreColumn     = 4
	sentenceAColumn = 5
	sentenceBColumn = 6
	minColumns      = 7
)

// maxLineSize bounds a single row.
const maxLineSize = 1024 * 1024

// Dataset holds index-aligned pairs and labels.
type Dataset struct {
	Pairs  []domain.SentencePair
	Labels []float64
}

// Len returns the number of pairs.
func (d Dataset) Len() int {
	return len(d.Pairs)
}

// Load reads the dataset file at path.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, domain.WrapError("load dataset", err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return Dataset{}, domain.WrapError("load "+path, err)
	}
	return ds, nil
}

// Read parses tab-separated STS rows. Fields are not quoted; blank lines are
// skipped. A row with too few columns or a non-numeric score is rejected with
// its line number.
func Read(r io.Reader) (Dataset, error) {
	var ds Dataset
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < minColumns {
			return Dataset{}, fmt.Errorf("%w: line %d: %d columns, want at least %d",
				domain.ErrMalformedRecord, line, len(fields), minColumns)
		}
		label, err := strconv.ParseFloat(strings.TrimSpace(fields[scoreColumn]), 64)
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: line %d: score %q: %v",
				domain.ErrMalformedRecord, line, fields[scoreColumn], err)
		}
		ds.Pairs = append(ds.Pairs, domain.SentencePair{
			A: fields[sentenceAColumn],
			B: fields[sentenceBColumn],
		})
		ds.Labels = append(ds.Labels, label)
	}
	if err := scanner.Err(); err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	if ds.Len() == 0 {
		return Dataset{}, domain.ErrEmptyDataset
	}
	return ds, nil
}
