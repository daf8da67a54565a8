// stseval evaluates string-similarity metrics against STS benchmark labels.
//
// Usage:
//
//	stseval evaluate --sts-data stsbenchmark/sts-dev.csv [--format text|table|markdown|json]
//	stseval score --a "first sentence" --b "second sentence"
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_sts_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_sts_similarity/internal/config"
	"github.com/baditaflorin/go_sts_similarity/internal/ports"
	"github.com/baditaflorin/go_sts_similarity/pkg/stseval"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	configPath string
	verbose    bool
	logJSON    bool
	logFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "stseval",
		Short: "Correlate string similarity metrics with STS labels",
		Long: "stseval scores sentence pairs with NIST, BLEU, word error rate,\n" +
			"longest common substring and edit distance, and reports how well\n" +
			"each metric correlates with human similarity judgements.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log progress to stderr")
	pf.BoolVar(&flags.logJSON, "log-json", false, "Log in JSON format")
	pf.StringVar(&flags.logFile, "log-file", "", "Write logs to this file instead of stderr")

	cmd.AddCommand(newEvaluateCmd(flags))
	cmd.AddCommand(newScoreCmd(flags))
	return cmd
}

// loadConfig merges .env, the config file, STS_* variables and the global flags.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	pf := cmd.Flags()
	if pf.Changed("verbose") {
		cfg.Log.Verbose = flags.verbose
	}
	if pf.Changed("log-json") {
		cfg.Log.JSON = flags.logJSON
	}
	if pf.Changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	return cfg, nil
}

// newLogger returns a logger writing to stderr or the configured file, or a
// nop logger unless verbose logging was requested.
func newLogger(cmd *cobra.Command, cfg config.LogConfig) (ports.Logger, func(), error) {
	if !cfg.Verbose && cfg.File == "" {
		return logger.NewNopLogger(), func() {}, nil
	}
	out := cmd.ErrOrStderr()
	var file *os.File
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file, out = f, f
	}
	lg, err := logger.NewWithOptions(logger.Options{Output: out, JSON: cfg.JSON})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, nil, err
	}
	return lg, func() {
		_ = lg.Close()
		if file != nil {
			file.Close()
		}
	}, nil
}

func newEvaluator(cfg config.Config, lg ports.Logger) (*stseval.Evaluator, error) {
	return stseval.New(
		stseval.WithLogSink(lg),
		stseval.WithWorkers(cfg.Workers),
		stseval.WithNISTOrder(cfg.NISTOrder),
		stseval.WithBLEUOrder(cfg.BLEUOrder),
	)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
