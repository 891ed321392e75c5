package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Todo is a renovation work item tracked per property
type Todo struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	PropertyID     uuid.UUID           `db:"property_id" json:"property_id"`
	CategoryID     uuid.NullUUID       `db:"category_id" json:"category_id"`
	Title          string              `db:"title" json:"title"`
	Description    string              `db:"description" json:"description"`
	Status         TodoStatus          `db:"status" json:"status"`
	Priority       Priority            `db:"priority" json:"priority"`
	DueDate        *time.Time          `db:"due_date" json:"due_date,omitempty"`
	ReminderDate   *time.Time          `db:"reminder_date" json:"reminder_date,omitempty"`
	ReminderSent   bool                `db:"reminder_sent" json:"reminder_sent"`
	SortOrder      int                 `db:"sort_order" json:"sort_order"`
	ContractorID   uuid.NullUUID       `db:"contractor_id" json:"contractor_id"`
	AssigneeName   *string             `db:"assignee_name" json:"assignee_name,omitempty"`
	BudgetEstimate decimal.NullDecimal `db:"budget_estimate" json:"budget_estimate"`
	EvidenceLinks  *string             `db:"evidence_links" json:"evidence_links,omitempty"`
	BeforeLinks    *string             `db:"before_links" json:"before_links,omitempty"`
	AfterLinks     *string             `db:"after_links" json:"after_links,omitempty"`
	CreatedBy      string              `db:"created_by" json:"created_by"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
}

// GroupKey identifies the sibling set a todo is ordered within
type GroupKey struct {
	PropertyID uuid.UUID
	CategoryID uuid.NullUUID
}

// Group returns the (property, category) key of the todo
func (t *Todo) Group() GroupKey {
	return GroupKey{PropertyID: t.PropertyID, CategoryID: t.CategoryID}
}

// Budget returns the budget estimate, zero when unset
func (t *Todo) Budget() decimal.Decimal {
	if !t.BudgetEstimate.Valid {
		return decimal.Zero
	}
	return t.BudgetEstimate.Decimal
}

// Links splits a newline-delimited URL list, skipping blank lines
func Links(raw *string) []string {
	if raw == nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(*raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// TodoDependency is an edge saying TodoID cannot finish before DependsOnID
type TodoDependency struct {
	TodoID      uuid.UUID `db:"todo_id" json:"todo_id"`
	DependsOnID uuid.UUID `db:"depends_on_id" json:"depends_on_id"`
}

// OrderUpdate is a single persisted sort position
type OrderUpdate struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"sort_order"`
}
