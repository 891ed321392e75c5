package property

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/cli/styles"
	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/views"
)

// TodosCmd returns the property todos subcommand
func TodosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos [property-id]",
		Short: "List todos grouped by category",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTodos,
	}
	cli.AddOutputFlags(cmd.Flags())
	return cmd
}

var statusMarks = map[models.TodoStatus]string{
	models.StatusPending:    "[ ]",
	models.StatusInProgress: "[~]",
	models.StatusCompleted:  "[x]",
	models.StatusCancelled:  "[-]",
}

func runTodos(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	propertyID, err := cli.GetPropertyID(cmd, args)
	if err != nil {
		return reportError(formatter, "NO_PROPERTY", err)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return reportError(formatter, "INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	v, err := cliInstance.App.TodoService.BuildView(ctx, propertyID, todo.ViewRequest{Name: todo.ViewList})
	if err != nil {
		return reportError(formatter, "VIEW_ERROR", err)
	}
	list := v.(views.ListView)

	if formatter.Quiet {
		// Just print IDs
		for _, g := range list.Groups {
			for _, t := range g.Todos {
				fmt.Fprintln(cmd.OutOrStdout(), t.ID)
			}
		}
		return nil
	}

	return formatter.Success(list, func(w io.Writer) error {
		if list.Empty {
			_, err := fmt.Fprintln(w, "No todos found")
			return err
		}
		for _, g := range list.Groups {
			fmt.Fprintln(w, styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Todos))))
			for _, t := range g.Todos {
				line := fmt.Sprintf("  %s %s", statusMarks[t.Status], t.Title)
				if t.Status == models.StatusCompleted {
					line = styles.DoneStyle.Render(line)
				}
				fmt.Fprintln(w, line)
			}
		}
		return nil
	})
}
