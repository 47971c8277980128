package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soclabs/socql/internal/config"
	"github.com/soclabs/socql/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the SOCQL HTTP API server",
		Long: `Serve validation, tokenization, context analysis, completion, and
schema management over HTTP. With --watch the schema file is reloaded
on change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd)
			vcfg, err := cfg.ValidatorConfig()
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			srv := server.New(server.Config{
				Listen:      cfg.Server.Listen,
				Registry:    GetRegistry(cmd),
				Validation:  vcfg,
				SchemaPath:  cfg.SchemaPath,
				WatchSchema: cfg.Server.WatchSchema,
				Logger:      logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("listen", config.DefaultListen, "listen address")
	cmd.Flags().Bool("watch", false, "reload the schema file on change")
	return cmd
}
