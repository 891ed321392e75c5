// Package digest sends the daily lead summary on demand
package digest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/notify"
)

// ErrLineNotConfigured is returned when sending without LINE credentials
var ErrLineNotConfigured = errors.New("LINE is not configured; set line.access_token")

// DigestCmd returns the digest command
func DigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Send today's lead summary to LINE",
		Long: `Build the summary of leads received today (Bangkok time) and push it
to the default LINE recipient. The server sends it on its own schedule;
use this to resend or to preview it with --dry-run.`,
		Args: cobra.NoArgs,
		RunE: runDigest,
	}
	cmd.Flags().Bool("dry-run", false, "Print the summary instead of sending it")
	cmd.Flags().String("to", "", "Recipient user or group ID (default line.default_to)")
	return cmd
}

func runDigest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	to, _ := cmd.Flags().GetString("to")
	leads := cliInstance.App.Repo.Leads

	if dryRun {
		text, err := notify.NewDigest(leads, nil, to).Build(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	pusher := cliInstance.App.Pusher
	if pusher == nil {
		return &cli.UsageError{Err: ErrLineNotConfigured}
	}
	if err := notify.NewDigest(leads, pusher, to).Run(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "✓ Digest sent")
	return nil
}
