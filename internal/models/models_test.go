package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============================================================================
// ERROR TESTS
// ============================================================================

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		expected string
	}{
		{ErrAlreadyFirstTask, "task is already at the top of the category"},
		{ErrAlreadyLastTask, "task is already at the bottom of the category"},
		{ErrNotFound, "record not found"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expected {
			t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
		}
	}

	if errors.Is(ErrAlreadyFirstTask, ErrAlreadyLastTask) {
		t.Error("ErrAlreadyFirstTask should not equal ErrAlreadyLastTask")
	}
}

// ============================================================================
// ENUM TESTS
// ============================================================================

func TestTodoStatus(t *testing.T) {
	t.Parallel()

	for _, s := range TodoStatuses {
		if !s.Valid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	if TodoStatus("done").Valid() {
		t.Error("Expected \"done\" to be invalid")
	}

	active := map[TodoStatus]bool{
		StatusPending:    true,
		StatusInProgress: true,
		StatusCompleted:  false,
		StatusCancelled:  false,
	}
	for s, want := range active {
		if s.Active() != want {
			t.Errorf("Expected %q Active() = %v", s, want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		valid bool
	}{
		{"priority urgent", PriorityUrgent.Valid()},
		{"priority critical", !Priority("critical").Valid()},
		{"purchase void", PurchaseVoid.Valid()},
		{"purchase refunded", !PurchaseStatus("refunded").Valid()},
		{"severity high", SeverityHigh.Valid()},
		{"severity empty", !Severity("").Valid()},
	}
	for _, tt := range tests {
		if !tt.valid {
			t.Errorf("%s: unexpected validity", tt.name)
		}
	}
}

// ============================================================================
// TODO HELPERS
// ============================================================================

func TestTodoGroup(t *testing.T) {
	t.Parallel()

	property := uuid.New()
	cat := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	a := &Todo{PropertyID: property, CategoryID: cat}
	b := &Todo{PropertyID: property, CategoryID: cat}
	c := &Todo{PropertyID: property}

	if a.Group() != b.Group() {
		t.Error("Expected todos in the same category to share a group")
	}
	if a.Group() == c.Group() {
		t.Error("Expected uncategorized todo to be in its own group")
	}
}

func TestTodoBudget(t *testing.T) {
	t.Parallel()

	unset := &Todo{}
	if !unset.Budget().IsZero() {
		t.Errorf("Expected zero budget when unset, got %s", unset.Budget())
	}

	set := &Todo{BudgetEstimate: decimal.NewNullDecimal(decimal.RequireFromString("12500.50"))}
	if !set.Budget().Equal(decimal.RequireFromString("12500.5")) {
		t.Errorf("Expected 12500.5, got %s", set.Budget())
	}
}

func TestLinks(t *testing.T) {
	t.Parallel()

	raw := "https://a.example/1.jpg\n\n  https://a.example/2.jpg  \n"
	got := Links(&raw)
	want := []string{"https://a.example/1.jpg", "https://a.example/2.jpg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Links mismatch (-want +got):\n%s", diff)
	}
	if Links(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestLineTotal(t *testing.T) {
	t.Parallel()

	p := &PurchaseItem{Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.RequireFromString("80")}
	if !p.LineTotal().Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected 200, got %s", p.LineTotal())
	}
}
