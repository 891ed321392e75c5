package property

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promphitak-p/praweena/internal/cli"
	"github.com/promphitak-p/praweena/internal/cli/styles"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/views"
)

// Overview is the phase progress and budget of one property
type Overview struct {
	Phases views.PhaseOverview `json:"phases"`
	Budget views.BudgetView    `json:"budget"`
	Locked bool                `json:"phase_lock_enabled"`
}

// OverviewCmd returns the property overview subcommand
func OverviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview [property-id]",
		Short: "Show phase progress and budget",
		Long: `Show how far each renovation phase has progressed and how the
recorded purchases compare with the planned budget.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runOverview,
	}
	cli.AddOutputFlags(cmd.Flags())
	return cmd
}

func runOverview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	propertyID, err := cli.GetPropertyID(cmd, args)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("NO_PROPERTY", err.Error(),
			"Set a default with: export "+cli.PropertyEnv+"=<property-id>"); fmtErr != nil {
			return fmtErr
		}
		return err
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return reportError(formatter, "INITIALIZATION_ERROR", err)
	}
	defer closeCLI(cliInstance)

	svc := cliInstance.App.TodoService
	phases, err := svc.BuildView(ctx, propertyID, todo.ViewRequest{Name: todo.ViewPhases})
	if err != nil {
		return reportError(formatter, "VIEW_ERROR", err)
	}
	budget, err := svc.BuildView(ctx, propertyID, todo.ViewRequest{Name: todo.ViewBudget})
	if err != nil {
		return reportError(formatter, "VIEW_ERROR", err)
	}
	settings, err := svc.GetPhaseSettings(ctx, propertyID)
	if err != nil {
		return reportError(formatter, "SETTINGS_ERROR", err)
	}

	o := Overview{
		Phases: phases.(views.PhaseOverview),
		Budget: budget.(views.BudgetView),
		Locked: settings.PhaseLockEnabled,
	}
	return formatter.Success(o, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, renderOverview(o))
		return err
	})
}

func renderOverview(o Overview) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("ภาพรวมงานรีโนเวท"))
	b.WriteString("\n")

	b.WriteString(styles.SectionStyle.Render("Phases"))
	b.WriteString("\n")
	if o.Phases.Empty {
		b.WriteString(styles.SubtitleStyle.Render("No todos yet"))
		b.WriteString("\n")
	}
	for _, s := range o.Phases.Phases {
		label := s.Label
		if s.Phase == o.Phases.Current {
			label = "▶ " + label
		}
		fmt.Fprintf(&b, "%-22s %s %3d%%  %s\n",
			styles.LabelStyle.Render(label),
			styles.ProgressBar(s.Percent, 20),
			s.Percent,
			styles.SubtitleStyle.Render(fmt.Sprintf("%d/%d", s.Done, s.Total)))
	}
	if o.Locked {
		b.WriteString(styles.WarningStyle.Render("Phase lock on"))
		b.WriteString("\n")
	}

	b.WriteString(styles.SectionStyle.Render("Budget"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Planned:  "), styles.ValueStyle.Render(o.Budget.Planned.StringFixed(2)))
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Actual:   "), styles.ValueStyle.Render(o.Budget.Actual.StringFixed(2)))
	remaining := styles.ValueStyle.Render(o.Budget.Remaining.StringFixed(2))
	if o.Budget.OverBudget {
		remaining = styles.ErrorStyle.Render(o.Budget.Remaining.StringFixed(2) + " over budget")
	}
	fmt.Fprintf(&b, "%s %s", styles.LabelStyle.Render("Remaining:"), remaining)

	return styles.CardStyle.Render(b.String())
}
