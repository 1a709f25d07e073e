package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/teilomillet/promptlift/internal/output"
	"github.com/teilomillet/promptlift/optimizer"
	"github.com/teilomillet/promptlift/types"
)

var (
	batchFlagFile        string
	batchFlagConcurrent  int
	batchFlagStopOnError bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Optimize every prompt in a file",
	Long: `Batch reads one prompt per line from --file (or stdin for "-"),
skipping blank lines, and optimizes them in concurrent windows.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFlagFile, "file", "f", "", "File with one prompt per line (\"-\" for stdin)")
	batchCmd.Flags().IntVar(&batchFlagConcurrent, "concurrent", 0, "Window size (default: PROMPTLIFT_BATCH_CONCURRENCY)")
	batchCmd.Flags().BoolVar(&batchFlagStopOnError, "stop-on-error", false, "Stop after the first failed window")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	prompts, err := readPrompts(batchFlagFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(prompts) == 0 {
		return fmt.Errorf("no prompts in %s", batchFlagFile)
	}

	ctx := cmd.Context()
	engine, _, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	bo := optimizer.BatchOptions{Concurrent: batchFlagConcurrent, StopOnError: batchFlagStopOnError}
	if !flagJSON && output.IsTerminal(cmd.ErrOrStderr()) {
		bar := progressbar.NewOptions(len(prompts),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("optimizing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		bo.Progress = func(n int) { _ = bar.Add(n) }
		defer bar.Finish()
	}

	res, err := engine.BatchOptimize(ctx, prompts, bo)
	var itemErr *types.BatchItemError
	if err != nil && !errors.As(err, &itemErr) {
		return err
	}

	if flagJSON {
		if werr := writeJSON(cmd.OutOrStdout(), res); werr != nil {
			return werr
		}
	} else {
		output.BatchSummary(cmd.OutOrStdout(), res)
	}
	if itemErr != nil {
		return fmt.Errorf("batch stopped: %w", itemErr)
	}
	return nil
}

func readPrompts(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var prompts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			prompts = append(prompts, line)
		}
	}
	return prompts, sc.Err()
}
