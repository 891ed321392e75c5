// Package purchases holds the purchase ledger commands
package purchases

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/glamour"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
)

// ExportCmd returns the ledger export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [property-id]",
		Short: "Export a property's purchases",
		Long: `Export a property's purchases as a spreadsheet-friendly CSV, or render
them as a report in the terminal.

Examples:
  # Write the CSV (replaced atomically if it exists)
  praweena export <property-id> --out purchases.csv

  # Styled report in the terminal
  praweena export <property-id> --report

  # Plain markdown for pasting elsewhere
  praweena export <property-id> --report --style=raw`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().String("property", "", "Property ID (uses PRAWEENA_PROPERTY env var if not specified)")
	cmd.Flags().StringP("out", "o", "", "CSV file to write; stdout when empty")
	cmd.Flags().Bool("report", false, "Render a report instead of CSV")
	cmd.Flags().String("title", "รายการซื้อวัสดุ", "Report title")
	cmd.Flags().String("style", "auto", "Report style: auto, dark, light, notty or raw")
	cmd.Flags().Int("width", 100, "Report word wrap width")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := &cli.OutputFormatter{Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}

	propertyID, err := cli.GetPropertyID(cmd, args)
	if err != nil {
		if fmtErr := formatter.Error("NO_PROPERTY", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()
	purchases := cliInstance.App.PurchaseService

	if report, _ := cmd.Flags().GetBool("report"); report {
		title, _ := cmd.Flags().GetString("title")
		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")

		md, err := purchases.Report(ctx, propertyID, title)
		if err != nil {
			return err
		}
		rendered, err := renderMarkdown(md, style, width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), rendered)
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return purchases.ExportCSV(ctx, propertyID, cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := purchases.ExportCSV(ctx, propertyID, &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(out, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", out)
	return nil
}

// renderMarkdown styles md for the terminal; "raw" returns it unchanged
func renderMarkdown(md, style string, width int) (string, error) {
	if style == "raw" {
		return md, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
