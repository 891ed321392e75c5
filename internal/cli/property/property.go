package property

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
)

// PropertyCmd returns the property parent command
func PropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Inspect and prepare a property's renovation plan",
	}

	cmd.AddCommand(OverviewCmd())
	cmd.AddCommand(TodosCmd())
	cmd.AddCommand(DefaultsCmd())
	cmd.AddCommand(ViewCmd())

	return cmd
}

func reportError(formatter *cli.OutputFormatter, code string, err error) error {
	if fmtErr := formatter.Error(code, err.Error()); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return err
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
