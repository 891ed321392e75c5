package property

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/services/todo"
)

// ViewCmd returns the property view subcommand
func ViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "view <name> [property-id]",
		Short:     "Print one of the todo views as JSON",
		Long:      "Print one of the todo views as JSON.\n\nViews: " + strings.Join(todo.ViewNames, ", "),
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: todo.ViewNames,
		RunE:      runView,
	}
	cli.AddOutputFlags(cmd.Flags())
	cmd.Flags().Int("offset", 0, "Calendar month offset from the current month")
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	propertyID, err := cli.GetPropertyID(cmd, args[1:])
	if err != nil {
		return reportError(formatter, "NO_PROPERTY", err)
	}
	offset, _ := cmd.Flags().GetInt("offset")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return reportError(formatter, "INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	v, err := cliInstance.App.TodoService.BuildView(ctx, propertyID, todo.ViewRequest{Name: args[0], MonthOffset: offset})
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("VIEW_ERROR", err.Error(),
			"Valid views: "+strings.Join(todo.ViewNames, ", ")); fmtErr != nil {
			return fmtErr
		}
		return err
	}

	return formatter.Success(v, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}
		return nil
	})
}
