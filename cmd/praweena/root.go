package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/cli/category"
	"github.com/promphitak-p/praweena/internal/cli/digest"
	"github.com/promphitak-p/praweena/internal/cli/property"
	"github.com/promphitak-p/praweena/internal/cli/purchases"
	"github.com/promphitak-p/praweena/internal/cli/server"
	"github.com/promphitak-p/praweena/internal/cli/setup"
	"github.com/promphitak-p/praweena/internal/cli/styles"
	"github.com/promphitak-p/praweena/internal/config"
	"github.com/promphitak-p/praweena/internal/logging"
)

func newRootCmd() *cobra.Command {
	var logCloser io.Closer

	cmd := &cobra.Command{
		Use:   "praweena",
		Short: "Praweena - renovation planning backend for property flips",
		Long: `Praweena runs the renovation to-do API for the property site and offers
terminal tools to inspect a property's plan, export its purchase ledger
and send the daily lead digest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := cli.ConfigFromContext(ctx); err == nil {
				return nil
			}

			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return &cli.UsageError{Err: err}
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}

			logCloser, err = logging.Init(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			styles.Init(cfg.Theme)
			cmd.SetContext(cli.WithConfig(ctx, cfg))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser == nil {
				return
			}
			if err := logCloser.Close(); err != nil {
				slog.Error("failed to close log file", "error", err)
			}
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/praweena/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(server.ServeCmd())
	cmd.AddCommand(server.MigrateCmd())
	cmd.AddCommand(property.PropertyCmd())
	cmd.AddCommand(category.CategoryCmd())
	cmd.AddCommand(purchases.ExportCmd())
	cmd.AddCommand(digest.DigestCmd())
	cmd.AddCommand(setup.ConfigCmd())

	return cmd
}
