// logger.go
// Package stssimilarity provides shared utilities for the go_sts_similarity package.
package stssimilarity

import (
	"github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/l"
)

// createDefaultLogger creates the text logger on stdout used when no logger is given.
func createDefaultLogger() (l.Logger, error) {
	return logger.NewBackend(logger.Options{Async: true, Metrics: true})
}
