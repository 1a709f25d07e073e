// Package app contains the Cobra command tree for promptlift.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teilomillet/promptlift"
	"github.com/teilomillet/promptlift/config"
	"github.com/teilomillet/promptlift/internal/output"
	"github.com/teilomillet/promptlift/optimizer"
	"github.com/teilomillet/promptlift/types"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor  bool
	flagJSON     bool
	flagEnvFiles []string
	flagLevel    string
	flagPlatform string
	flagStyle    string
)

var rootCmd = &cobra.Command{
	Use:   "promptlift",
	Short: "Score and rewrite chat prompts",
	Long: `promptlift analyzes a chat prompt, scores it on clarity, specificity,
context, structure and completeness, and rewrites it for a target platform.

Configuration is read from PROMPTLIFT_* environment variables and .env files;
flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor || !output.IsTerminal(cmd.OutOrStdout()) {
			output.SetNoColor(true)
		}
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, output.StyleError.Render("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringSliceVar(&flagEnvFiles, "env-file", nil, "Dotenv file to load (default: .env)")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Optimization level: basic, advanced, expert")
	rootCmd.PersistentFlags().StringVar(&flagPlatform, "platform", "", "Target platform: chatgpt, claude, gemini, perplexity, copilot, poe, characterai")
	rootCmd.PersistentFlags().StringVar(&flagStyle, "style", "", "Style: professional, casual, academic, creative, technical")
}

// loadConfig reads the environment and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(flagEnvFiles...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagLevel != "" {
		level, err := types.ParseLevel(flagLevel)
		if err != nil {
			return nil, err
		}
		config.ApplyOptions(cfg, config.SetLevel(level))
	}
	if flagPlatform != "" {
		platform, err := types.ParsePlatform(flagPlatform)
		if err != nil {
			return nil, err
		}
		config.ApplyOptions(cfg, config.SetPlatform(platform))
	}
	if flagStyle != "" {
		style, err := types.ParseStyle(flagStyle)
		if err != nil {
			return nil, err
		}
		config.ApplyOptions(cfg, config.SetStyle(style))
	}
	return cfg, nil
}

func newEngine(ctx context.Context) (*optimizer.Engine, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	engine, err := promptlift.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

// promptFromArgs joins args, or reads stdin when there are none or the only
// argument is "-".
func promptFromArgs(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(raw), "\n"), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
