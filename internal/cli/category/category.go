// Package category manages the shared todo categories
package category

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/taxonomy"
)

// CategoryCmd returns the category parent command
func CategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage todo categories",
	}
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	return cmd
}

// ListCmd returns the category list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with their phase",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	cats, err := cliInstance.App.TodoService.ListCategories(ctx)
	if err != nil {
		return err
	}
	return formatter.Success(cats, func(w io.Writer) error {
		for _, c := range cats {
			phase := taxonomy.PhaseOf(c.Name)
			fmt.Fprintf(w, "%s %-24s %s\n", c.Icon, c.Name, taxonomy.PhaseLabel(phase))
		}
		return nil
	})
}

// CreateCmd returns the category create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Long: `Create a category. Its phase follows from the name, e.g. names
containing "ไฟฟ้า" belong to the systems phase.

Examples:
  praweena category create --name="งานระบบน้ำ" --icon="🚰" --color="#3B82F6"`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}
	cmd.Flags().String("name", "", "Category name (required)")
	cmd.Flags().String("icon", "", "Emoji icon")
	cmd.Flags().String("color", "", "Hex color #RRGGBB")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	name, _ := cmd.Flags().GetString("name")
	icon, _ := cmd.Flags().GetString("icon")
	color, _ := cmd.Flags().GetString("color")
	if color != "" {
		if err := cli.ValidateColorHex(color); err != nil {
			if fmtErr := formatter.Error("INVALID_COLOR", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return err
		}
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	cat, err := cliInstance.App.TodoService.CreateCategory(ctx, todo.CreateCategoryRequest{Name: name, Icon: icon, Color: color})
	if err != nil {
		if fmtErr := formatter.Error("CATEGORY_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if formatter.Quiet {
		fmt.Fprintln(cmd.OutOrStdout(), cat.ID)
		return nil
	}
	return formatter.Success(cat, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Created category %s (%s)\n", cat.Name, phaseOf(cat))
		return err
	})
}

func phaseOf(c *models.Category) string {
	return taxonomy.PhaseLabel(taxonomy.PhaseOf(c.Name))
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
