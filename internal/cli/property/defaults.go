package property

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/user"
)

// DefaultsCmd returns the property defaults subcommand
func DefaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults [property-id]",
		Short: "Create the standard renovation checklist",
		Long: `Create the standard renovation checklist for a property that has no
todos yet. Running it again on a property with todos does nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDefaults,
	}
	cli.AddOutputFlags(cmd.Flags())
	cmd.Flags().String("by", "", "Name recorded as creator (defaults to the current user)")
	return cmd
}

func runDefaults(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	propertyID, err := cli.GetPropertyID(cmd, args)
	if err != nil {
		return reportError(formatter, "NO_PROPERTY", err)
	}
	by, _ := cmd.Flags().GetString("by")
	if by == "" {
		by = user.GetCurrentUsername()
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return reportError(formatter, "INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	n, err := cliInstance.App.TodoService.GenerateDefaults(ctx, propertyID, by)
	if err != nil {
		return reportError(formatter, "DEFAULTS_ERROR", err)
	}

	return formatter.Success(map[string]int{"created": n}, func(w io.Writer) error {
		if n == 0 {
			_, err := fmt.Fprintln(w, "Property already has todos; nothing created")
			return err
		}
		_, err := fmt.Fprintf(w, "✓ Created %d todos\n", n)
		return err
	})
}
