package app

import (
	"github.com/spf13/cobra"

	"github.com/teilomillet/promptlift/internal/output"
)

var scoreCmd = &cobra.Command{
	Use:   "score [prompt]",
	Short: "Score a prompt without rewriting it",
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	prompt, err := promptFromArgs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	engine, cfg, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer engine.Close()

	s := engine.Scorer()
	report := s.CalculateQualityScore(prompt, cfg.DefaultStyle, cfg.DefaultPlatform)
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	output.Report(cmd.OutOrStdout(), report, s.Criteria())
	return nil
}
