package views

import (
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/models"
)

// BudgetView compares planned todo budgets with recorded purchases
type BudgetView struct {
	Planned    decimal.Decimal `json:"planned"`
	Actual     decimal.Decimal `json:"actual"`
	Remaining  decimal.Decimal `json:"remaining"`
	OverBudget bool            `json:"over_budget"`
	Empty      bool            `json:"empty"`
}

// Budget sums budget_estimate over todos (planned) and quantity × unit price
// over purchases (actual). Unset budgets count as zero.
func Budget(todos []*models.Todo, purchases []*models.PurchaseItem) BudgetView {
	planned := decimal.Zero
	for _, t := range todos {
		planned = planned.Add(t.Budget())
	}
	actual := decimal.Zero
	for _, p := range purchases {
		actual = actual.Add(p.LineTotal())
	}
	return BudgetView{
		Planned:    planned,
		Actual:     actual,
		Remaining:  planned.Sub(actual),
		OverBudget: actual.GreaterThan(planned),
		Empty:      len(todos) == 0 && len(purchases) == 0,
	}
}
