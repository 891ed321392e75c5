// Package reorder computes dense, zero-based sort orders for a group of
// sibling todos. It never touches storage: every function returns the full
// set of positions to persist.
package reorder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
)

// Direction of a single-step move
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

var (
	ErrNotInGroup       = errors.New("todo is not in the group")
	ErrInvalidDirection = errors.New("direction must be up or down")
	ErrIncompleteOrder  = errors.New("order must list every todo of the group exactly once")
)

// Sorted returns a copy of the group ordered by sort_order, newest first on ties
func Sorted(group []*models.Todo) []*models.Todo {
	out := make([]*models.Todo, len(group))
	copy(out, group)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Normalize renumbers the group 0..N-1 in its current display order
func Normalize(group []*models.Todo) []models.OrderUpdate {
	return indexed(Sorted(group))
}

// Move swaps the todo with its neighbour in the given direction and returns
// positions for the whole group. At either boundary it returns
// models.ErrAlreadyFirstTask or models.ErrAlreadyLastTask and no updates.
func Move(group []*models.Todo, id uuid.UUID, dir Direction) ([]models.OrderUpdate, error) {
	if dir != Up && dir != Down {
		return nil, ErrInvalidDirection
	}

	ordered := Sorted(group)
	idx := -1
	for i, t := range ordered {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotInGroup, id)
	}

	neighbour := idx - 1
	if dir == Down {
		neighbour = idx + 1
	}
	if neighbour < 0 {
		return nil, models.ErrAlreadyFirstTask
	}
	if neighbour >= len(ordered) {
		return nil, models.ErrAlreadyLastTask
	}

	ordered[idx], ordered[neighbour] = ordered[neighbour], ordered[idx]
	return indexed(ordered), nil
}

// ApplyOrder assigns sort_order = index following orderedIDs, which must be a
// permutation of the group (the order the user dropped the items in).
func ApplyOrder(group []*models.Todo, orderedIDs []uuid.UUID) ([]models.OrderUpdate, error) {
	if len(orderedIDs) != len(group) {
		return nil, ErrIncompleteOrder
	}
	members := make(map[uuid.UUID]bool, len(group))
	for _, t := range group {
		members[t.ID] = true
	}

	updates := make([]models.OrderUpdate, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		if !members[id] {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteOrder, id)
		}
		delete(members, id)
		updates = append(updates, models.OrderUpdate{ID: id, SortOrder: i})
	}
	return updates, nil
}

// Apply writes the updates onto the todos in place and reports how many matched
func Apply(todos []*models.Todo, updates []models.OrderUpdate) int {
	pos := make(map[uuid.UUID]int, len(updates))
	for _, u := range updates {
		pos[u.ID] = u.SortOrder
	}
	n := 0
	for _, t := range todos {
		if p, ok := pos[t.ID]; ok {
			t.SortOrder = p
			n++
		}
	}
	return n
}

// IsDense reports whether the group's sort orders are exactly 0..N-1
func IsDense(group []*models.Todo) bool {
	seen := make([]bool, len(group))
	for _, t := range group {
		if t.SortOrder < 0 || t.SortOrder >= len(group) || seen[t.SortOrder] {
			return false
		}
		seen[t.SortOrder] = true
	}
	return true
}

func indexed(ordered []*models.Todo) []models.OrderUpdate {
	updates := make([]models.OrderUpdate, len(ordered))
	for i, t := range ordered {
		updates[i] = models.OrderUpdate{ID: t.ID, SortOrder: i}
	}
	return updates
}
