package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/views"
)

// View names accepted by BuildView
const (
	ViewList     = "list"
	ViewKanban   = "kanban"
	ViewTimeline = "timeline"
	ViewGantt    = "gantt"
	ViewCalendar = "calendar"
	ViewCity     = "city"
	ViewFloor    = "floor"
	ViewPhases   = "phases"
	ViewCritical = "critical"
	ViewBudget   = "budget"
)

// ViewNames lists every supported view in menu order
var ViewNames = []string{
	ViewList, ViewKanban, ViewTimeline, ViewGantt, ViewCalendar,
	ViewCity, ViewFloor, ViewPhases, ViewCritical, ViewBudget,
}

// ViewRequest selects a view; MonthOffset only applies to the calendar
type ViewRequest struct {
	Name        string
	MonthOffset int
}

// BuildView projects the property's current todos into the named view
func (s *service) BuildView(ctx context.Context, propertyID uuid.UUID, req ViewRequest) (interface{}, error) {
	if propertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	if !validView(req.Name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidView, req.Name)
	}

	st, err := s.state(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	switch req.Name {
	case ViewKanban:
		return views.Kanban(st.Todos), nil
	case ViewTimeline:
		return views.Timeline(st.Todos), nil
	case ViewGantt:
		return views.Gantt(st.Todos), nil
	case ViewCalendar:
		return views.Calendar(st.Todos, s.now(), req.MonthOffset), nil
	case ViewCritical:
		return views.CriticalPath(st.Todos, st.Dependencies)
	case ViewBudget:
		purchases, err := s.stores.Purchases.ListByProperty(ctx, propertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load purchases: %w", err)
		}
		return views.Budget(st.Todos, purchases), nil
	}

	categories, err := s.stores.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	switch req.Name {
	case ViewCity:
		return views.City(st.Todos, categories), nil
	case ViewFloor:
		return views.Floor(st.Todos, categories), nil
	case ViewPhases:
		return views.Phases(st.Todos, categories), nil
	default:
		return views.List(st.Todos, categories), nil
	}
}

func validView(name string) bool {
	for _, v := range ViewNames {
		if v == name {
			return true
		}
	}
	return false
}
