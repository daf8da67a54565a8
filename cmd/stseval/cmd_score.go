package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_sts_similarity/internal/core/domain"
)

type scoreFlags struct {
	a string
	b string
}

func newScoreCmd(root *rootFlags) *cobra.Command {
	flags := &scoreFlags{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the five metric scores of one sentence pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, root, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.a, "a", "", "Reference sentence (required)")
	f.StringVar(&flags.b, "b", "", "Candidate sentence (required)")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func runScore(cmd *cobra.Command, root *rootFlags, flags *scoreFlags) error {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	lg, closeLogger, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return err
	}
	defer closeLogger()

	ev, err := newEvaluator(cfg, lg)
	if err != nil {
		return err
	}
	defer ev.Close()

	scores, err := ev.Score(cmd.Context(), domain.SentencePair{A: flags.a, B: flags.b})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range domain.Metrics {
		if m == domain.EditDistance {
			fmt.Fprintf(out, "%s: %d\n", m.DisplayName(), scores.EditDistance)
			continue
		}
		fmt.Fprintf(out, "%s: %.4f\n", m.DisplayName(), scores.Value(m))
	}
	return nil
}
