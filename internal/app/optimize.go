package app

import (
	"github.com/spf13/cobra"

	"github.com/teilomillet/promptlift/internal/output"
	"github.com/teilomillet/promptlift/optimizer"
)

var optimizeFlagAlternatives bool

var optimizeCmd = &cobra.Command{
	Use:   "optimize [prompt]",
	Short: "Rewrite a prompt and show what improved",
	Long: `Optimize scores the prompt, applies the rewrite stages allowed by the
level, and prints the rewritten prompt with its score change. With no
argument, or "-", the prompt is read from stdin.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().BoolVar(&optimizeFlagAlternatives, "alternatives", false, "Also rewrite at the other two levels")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	prompt, err := promptFromArgs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, _, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	res, err := engine.Optimize(ctx, prompt, optimizer.WithGenerateAlternatives(optimizeFlagAlternatives))
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	output.Result(cmd.OutOrStdout(), res)
	return nil
}
