package views

import (
	"sort"
	"time"

	"github.com/promphitak-p/praweena/internal/models"
)

// Gantt progress per status. A display heuristic, not measured progress.
const (
	ProgressDone       = 100
	ProgressInProgress = 60
	ProgressPending    = 20
)

// TimelineView lists todos by due date, undated last
type TimelineView struct {
	Todos []*models.Todo `json:"todos"`
	Empty bool           `json:"empty"`
}

// GanttBar is a todo with its display progress
type GanttBar struct {
	Todo     *models.Todo `json:"todo"`
	Progress int          `json:"progress"`
}

// GanttView is the timeline with progress bars
type GanttView struct {
	Bars  []GanttBar `json:"bars"`
	Empty bool       `json:"empty"`
}

// CalendarDay is one cell of the month grid
type CalendarDay struct {
	Date  time.Time      `json:"date"`
	Todos []*models.Todo `json:"todos"`
}

// CalendarView is a Sunday-first month grid
type CalendarView struct {
	Year    int           `json:"year"`
	Month   time.Month    `json:"month"`
	Leading int           `json:"leading"`
	Days    []CalendarDay `json:"days"`
	Empty   bool          `json:"empty"`
}

// Timeline sorts todos ascending by due date; todos without one sort last
func Timeline(todos []*models.Todo) TimelineView {
	return TimelineView{Todos: byDueDate(todos), Empty: len(todos) == 0}
}

// Gantt is the timeline with a progress percentage per status
func Gantt(todos []*models.Todo) GanttView {
	ordered := byDueDate(todos)
	bars := make([]GanttBar, len(ordered))
	for i, t := range ordered {
		bars[i] = GanttBar{Todo: t, Progress: Progress(t.Status)}
	}
	return GanttView{Bars: bars, Empty: len(todos) == 0}
}

// Progress maps a status to its gantt percentage
func Progress(s models.TodoStatus) int {
	switch s {
	case models.StatusCompleted, models.StatusCancelled:
		return ProgressDone
	case models.StatusInProgress:
		return ProgressInProgress
	default:
		return ProgressPending
	}
}

// Calendar builds the month that is offset months away from ref's month.
// Todos land on the day matching their due date; others are left out.
func Calendar(todos []*models.Todo, ref time.Time, offset int) CalendarView {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	daysIn := first.AddDate(0, 1, -1).Day()

	view := CalendarView{
		Year:    first.Year(),
		Month:   first.Month(),
		Leading: int(first.Weekday()),
		Days:    make([]CalendarDay, daysIn),
	}
	for d := range view.Days {
		view.Days[d] = CalendarDay{Date: first.AddDate(0, 0, d), Todos: []*models.Todo{}}
	}

	matched := 0
	for _, t := range byDueDate(todos) {
		if t.DueDate == nil {
			continue
		}
		y, m, d := t.DueDate.Date()
		if y == view.Year && m == view.Month {
			view.Days[d-1].Todos = append(view.Days[d-1].Todos, t)
			matched++
		}
	}
	view.Empty = matched == 0
	return view
}

func byDueDate(todos []*models.Todo) []*models.Todo {
	out := make([]*models.Todo, len(todos))
	copy(out, todos)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil && b == nil:
			return out[i].SortOrder < out[j].SortOrder
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}
