package logger

import (
	"io"
	"os"

	"github.com/baditaflorin/go_sts_similarity/internal/ports"
	"github.com/baditaflorin/l"
)

// Options selects where and how log records are written.
type Options struct {
	Output io.Writer
	JSON   bool
	// Async buffers writes in the background. Disable for short-lived CLI runs
	// whose output ordering matters.
	Async   bool
	Metrics bool
}

// StdLogger adapts l.Logger to ports.Logger.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a text logger on stdout.
func NewStdLogger() (ports.Logger, error) {
	return NewWithOptions(Options{Output: os.Stdout, Async: true})
}

// NewWithOptions creates a logger writing to opts.Output.
func NewWithOptions(opts Options) (ports.Logger, error) {
	return NewCustomStdLogger(Config(opts))
}

// NewBackend creates the underlying l.Logger for callers that expose l.Logger
// directly.
func NewBackend(opts Options) (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(Config(opts))
}

// Config translates opts into an l.Config. A nil Output means stdout.
func Config(opts Options) l.Config {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	return l.Config{
		Output:      out,
		JsonFormat:  opts.JSON,
		AsyncWrite:  opts.Async,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     opts.Metrics,
	}
}

// NewCustomStdLogger creates a logger from a full l.Config.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}
	return &StdLogger{logger: logger}, nil
}

// FromExisting wraps an already configured l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes pending records.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// nopLogger drops every record.
type nopLogger struct{}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() ports.Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }
