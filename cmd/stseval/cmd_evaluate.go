package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_sts_similarity/internal/adapters/dataset"
	"github.com/baditaflorin/go_sts_similarity/internal/adapters/report"
	"github.com/baditaflorin/go_sts_similarity/internal/config"
)

type evaluateFlags struct {
	data    string
	workers int
	format  string
}

func newEvaluateCmd(root *rootFlags) *cobra.Command {
	flags := &evaluateFlags{}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Correlate every metric with the labels of an STS dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, root, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.data, "sts-data", "", "STS benchmark file (default "+config.DefaultDataset+")")
	f.IntVarP(&flags.workers, "workers", "w", 0, "Pairs scored in parallel (0 = one per CPU)")
	f.StringVarP(&flags.format, "format", "f", "", "Output format: text, table, markdown or json")
	return cmd
}

func runEvaluate(cmd *cobra.Command, root *rootFlags, flags *evaluateFlags) error {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	if flags.data != "" {
		cfg.Dataset = flags.data
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if flags.format != "" {
		cfg.Format = flags.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	lg, closeLogger, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return err
	}
	defer closeLogger()

	data, err := dataset.Load(cfg.Dataset)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format != report.FormatJSON {
		fmt.Fprintf(out, "Found %d STS pairs\n", data.Len())
	}

	ev, err := newEvaluator(cfg, lg)
	if err != nil {
		return err
	}
	defer ev.Close()

	start := time.Now()
	result, err := ev.Evaluate(cmd.Context(), data.Pairs, data.Labels)
	if err != nil {
		return err
	}

	rep := report.New(cfg.Dataset, data.Len(), result)
	rep.Workers = ev.Workers()
	rep.Elapsed = time.Since(start)
	return rep.Write(out, format)
}
