package app

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teilomillet/promptlift/export"
)

var (
	exportFlagFormat string
	exportFlagOutput string
	exportFlagSchema bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export optimization history",
	Long: `Export writes the persisted optimization history as json, csv or
markdown. History is only kept across runs with the sqlite or redis store.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagFormat, "format", "json", "Output format: json, csv, markdown")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().BoolVar(&exportFlagSchema, "schema", false, "Print the JSON schema of a history record")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	var w io.Writer = cmd.OutOrStdout()
	if exportFlagOutput != "" {
		f, err := os.Create(exportFlagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if exportFlagSchema {
		return writeJSON(w, export.Schema())
	}

	format, err := export.ParseFormat(exportFlagFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, _, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	records, err := engine.History(ctx)
	if err != nil {
		return err
	}
	return export.Write(w, format, records)
}
