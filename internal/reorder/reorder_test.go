package reorder

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
)

func makeGroup(orders ...int) []*models.Todo {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	group := make([]*models.Todo, len(orders))
	for i, o := range orders {
		group[i] = &models.Todo{ID: uuid.New(), SortOrder: o, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return group
}

func ids(updates []models.OrderUpdate) []uuid.UUID {
	out := make([]uuid.UUID, len(updates))
	for _, u := range updates {
		out[u.SortOrder] = u.ID
	}
	return out
}

func TestNormalize_ClosesGapsAndDuplicates(t *testing.T) {
	t.Parallel()
	group := makeGroup(5, 2, 2, 9)

	updates := Normalize(group)
	Apply(group, updates)

	if !IsDense(group) {
		t.Fatalf("Expected dense order, got %+v", updates)
	}
	// Equal sort orders: newer created_at first
	if group[2].SortOrder != 0 || group[1].SortOrder != 1 {
		t.Errorf("Expected tie broken by newest first, got %d and %d", group[2].SortOrder, group[1].SortOrder)
	}
	if group[3].SortOrder != 3 {
		t.Errorf("Expected largest sort order last, got %d", group[3].SortOrder)
	}
}

func TestMove_UpFromMiddle(t *testing.T) {
	t.Parallel()
	group := makeGroup(0, 1, 2, 3, 4)
	target := group[2]

	updates, err := Move(group, target.ID, Up)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(updates) != 5 {
		t.Fatalf("Expected the whole group to be persisted, got %d updates", len(updates))
	}

	want := []uuid.UUID{group[0].ID, target.ID, group[1].ID, group[3].ID, group[4].ID}
	if diff := cmp.Diff(want, ids(updates)); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}
}

func TestMove_Down(t *testing.T) {
	t.Parallel()
	group := makeGroup(0, 1, 2)

	updates, err := Move(group, group[0].ID, Down)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := []uuid.UUID{group[1].ID, group[0].ID, group[2].ID}
	if diff := cmp.Diff(want, ids(updates)); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}
}

func TestMove_RenormalisesSparseGroup(t *testing.T) {
	t.Parallel()
	group := makeGroup(10, 20, 30)

	updates, err := Move(group, group[2].ID, Up)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	Apply(group, updates)
	if !IsDense(group) {
		t.Errorf("Expected dense order after move, got %+v", updates)
	}
}

func TestMove_Boundaries(t *testing.T) {
	t.Parallel()
	group := makeGroup(0, 1, 2)

	if _, err := Move(group, group[0].ID, Up); !errors.Is(err, models.ErrAlreadyFirstTask) {
		t.Errorf("Expected ErrAlreadyFirstTask, got %v", err)
	}
	if _, err := Move(group, group[2].ID, Down); !errors.Is(err, models.ErrAlreadyLastTask) {
		t.Errorf("Expected ErrAlreadyLastTask, got %v", err)
	}
	if _, err := Move(group, uuid.New(), Up); !errors.Is(err, ErrNotInGroup) {
		t.Errorf("Expected ErrNotInGroup, got %v", err)
	}
	if _, err := Move(group, group[1].ID, "sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection, got %v", err)
	}
}

func TestApplyOrder(t *testing.T) {
	t.Parallel()
	group := makeGroup(0, 1, 2, 3)
	dropped := []uuid.UUID{group[3].ID, group[0].ID, group[2].ID, group[1].ID}

	updates, err := ApplyOrder(group, dropped)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff(dropped, ids(updates)); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}

	if n := Apply(group, updates); n != 4 {
		t.Errorf("Expected 4 todos updated, got %d", n)
	}
	if !IsDense(group) {
		t.Error("Expected dense order after drag")
	}
}

func TestApplyOrder_RejectsPartialOrForeign(t *testing.T) {
	t.Parallel()
	group := makeGroup(0, 1)

	tests := []struct {
		name  string
		order []uuid.UUID
	}{
		{"missing", []uuid.UUID{group[0].ID}},
		{"duplicate", []uuid.UUID{group[0].ID, group[0].ID}},
		{"foreign", []uuid.UUID{group[0].ID, uuid.New()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ApplyOrder(group, tt.order); !errors.Is(err, ErrIncompleteOrder) {
				t.Errorf("Expected ErrIncompleteOrder, got %v", err)
			}
		})
	}
}

func TestIsDense(t *testing.T) {
	t.Parallel()
	tests := []struct {
		orders []int
		want   bool
	}{
		{nil, true},
		{[]int{0}, true},
		{[]int{1, 0, 2}, true},
		{[]int{0, 2}, false},
		{[]int{0, 0}, false},
		{[]int{-1, 0}, false},
	}
	for _, tt := range tests {
		if got := IsDense(makeGroup(tt.orders...)); got != tt.want {
			t.Errorf("IsDense(%v) = %v, want %v", tt.orders, got, tt.want)
		}
	}
}
