package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when score and label sequences differ in length.
	ErrLengthMismatch = errors.New("sequence length mismatch")

	// ErrTooFewSamples is returned when fewer than two samples are correlated.
	ErrTooFewSamples = errors.New("at least two samples are required")

	// ErrEmptyDataset is returned when a dataset holds no pairs.
	ErrEmptyDataset = errors.New("dataset contains no pairs")

	// ErrMalformedRecord is returned for dataset rows that cannot be parsed.
	ErrMalformedRecord = errors.New("malformed dataset record")

	// ErrInvalidConfig is returned when configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// OpError wraps an error with the operation that produced it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("sts: %v", e.Err)
	}
	return fmt.Sprintf("sts: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapError attaches op to err. A nil err stays nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}
