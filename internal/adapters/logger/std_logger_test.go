package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	cfg := Config(Options{})
	if cfg.Output != os.Stdout {
		t.Errorf("Output = %v, want os.Stdout", cfg.Output)
	}
	if cfg.JsonFormat || cfg.AsyncWrite || cfg.Metrics {
		t.Errorf("zero Options produced %+v", cfg)
	}

	var buf bytes.Buffer
	cfg = Config(Options{Output: &buf, JSON: true, Async: true, Metrics: true})
	if cfg.Output != &buf || !cfg.JsonFormat || !cfg.AsyncWrite || !cfg.Metrics {
		t.Errorf("Config() = %+v", cfg)
	}
}

func TestNewWithOptionsWrites(t *testing.T) {
	var buf bytes.Buffer
	lg, err := NewWithOptions(Options{Output: &buf})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	lg.Info("Scored pairs", "pairs", 3)
	if err := lg.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strings.Contains(buf.String(), "Scored pairs") {
		t.Errorf("log output = %q, want the message", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	lg := NewNopLogger()
	lg.Info("ignored", "k", "v")
	if err := lg.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
