package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	logadapter "github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/internal/config"
	"github.com/baditaflorin/go_sts_similarity/pkg/stseval"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

// DefaultConcurrency of 0 means use GOMAXPROCS.
const DefaultConcurrency = 0

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout, overrides config)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	logger, err := createLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting STS similarity HTTP server",
		"addr", cfg.Server.Addr,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", *concurrency,
	)

	evaluator, err := stseval.New(
		stseval.WithLogger(logger),
		stseval.WithWorkers(cfg.Workers),
		stseval.WithNISTOrder(cfg.NISTOrder),
		stseval.WithBLEUOrder(cfg.BLEUOrder),
		stseval.WithWarmUp(cfg.Server.WarmUp),
	)
	if err != nil {
		logger.Error("Failed to initialize evaluator", "error", err)
		os.Exit(1)
	}
	logger.Info("Evaluator initialized",
		"warm_up", cfg.Server.WarmUp,
		"workers", evaluator.Workers(),
		"cpus", runtime.NumCPU(),
	)

	h := newHandler(evaluator, logger, cfg.Server)
	server := &fasthttp.Server{
		Handler:               h.serve,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", cfg.Server.Addr)
	if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// createLogger creates and configures a logger
func createLogger(cfg config.LogConfig) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	return logadapter.NewBackend(logadapter.Options{
		Output:  output,
		JSON:    true,
		Async:   true,
		Metrics: true,
	})
}
