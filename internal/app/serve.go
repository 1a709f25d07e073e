package app

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teilomillet/promptlift/server"
)

var (
	serveFlagAddr    string
	serveFlagOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the optimization API over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "Listen address (default: PROMPTLIFT_HTTP_ADDR)")
	serveCmd.Flags().StringSliceVar(&serveFlagOrigins, "allow-origin", nil, "Allowed CORS origin (can be repeated; default: any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, cfg, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()

	addr := cfg.HTTPAddr
	if serveFlagAddr != "" {
		addr = serveFlagAddr
	}

	srv := server.New(engine,
		server.WithLogger(cfg.NewLogger()),
		server.WithAllowOrigins(serveFlagOrigins...),
	)
	return srv.Run(ctx, addr)
}
