// Package server holds the commands that run and maintain the backend
package server

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/database"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, live updates and the daily digest",
		Long: `Run the HTTP API with server-sent live updates and, when enabled, the
daily LINE digest. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := cli.ConfigFromContext(ctx)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return &cli.UsageError{Err: err}
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	slog.Info("praweena starting", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver, "digest", cfg.Digest.Enabled)
	if err := cliInstance.App.Serve(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	slog.Info("praweena shut down gracefully")
	return nil
}

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Opening the app applies migrations
			cliInstance, err := cli.GetCLIFromContext(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := cliInstance.Close(); err != nil {
					slog.Error("failed to close CLI", "error", err)
				}
			}()

			version, err := database.SchemaVersion(ctx, cliInstance.App.Repo.DB)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
}
