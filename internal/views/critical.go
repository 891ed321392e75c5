package views

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
)

// CriticalPathSize caps the number of surfaced todos
const CriticalPathSize = 6

// ErrDependencyCycle is returned when the dependency edges do not form a DAG
var ErrDependencyCycle = errors.New("todo dependencies contain a cycle")

// PathEntry is an active todo and the length of the longest chain of active
// todos it gates, itself included
type PathEntry struct {
	Todo  *models.Todo `json:"todo"`
	Depth int          `json:"depth"`
}

// CriticalPathView lists the active todos that gate the most work
type CriticalPathView struct {
	Entries []PathEntry `json:"entries"`
	Empty   bool        `json:"empty"`
}

// CriticalPath ranks active todos by dependency depth (deepest first), then
// by due date, and keeps the first CriticalPathSize. Edges touching finished
// todos are ignored.
func CriticalPath(todos []*models.Todo, deps []models.TodoDependency) (CriticalPathView, error) {
	active := make([]*models.Todo, 0, len(todos))
	for _, t := range todos {
		if t.Status.Active() {
			active = append(active, t)
		}
	}

	depths, err := Depths(active, deps)
	if err != nil {
		return CriticalPathView{}, err
	}

	ordered := byDueDate(active)
	sort.SliceStable(ordered, func(i, j int) bool {
		return depths[ordered[i].ID] > depths[ordered[j].ID]
	})
	if len(ordered) > CriticalPathSize {
		ordered = ordered[:CriticalPathSize]
	}

	entries := make([]PathEntry, len(ordered))
	for i, t := range ordered {
		entries[i] = PathEntry{Todo: t, Depth: depths[t.ID]}
	}
	return CriticalPathView{Entries: entries, Empty: len(entries) == 0}, nil
}

// Depths computes, for each todo, the number of todos on the longest
// dependency chain starting at it. A todo nothing depends on has depth 1.
// Edges whose ends are not both in todos are ignored.
func Depths(todos []*models.Todo, deps []models.TodoDependency) (map[uuid.UUID]int, error) {
	present := make(map[uuid.UUID]bool, len(todos))
	for _, t := range todos {
		present[t.ID] = true
	}

	// prerequisite -> dependents
	next := make(map[uuid.UUID][]uuid.UUID)
	indegree := make(map[uuid.UUID]int, len(todos))
	for _, d := range deps {
		if !present[d.TodoID] || !present[d.DependsOnID] {
			continue
		}
		next[d.DependsOnID] = append(next[d.DependsOnID], d.TodoID)
		indegree[d.TodoID]++
	}

	// Kahn's algorithm; todos keep their input order among equals
	queue := make([]uuid.UUID, 0, len(todos))
	for _, t := range todos {
		if indegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}
	order := make([]uuid.UUID, 0, len(todos))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, n := range next[id] {
			indegree[n]--
			if indegree[n] == 0 {
				queue = append(queue, n)
			}
		}
	}
	if len(order) != len(present) {
		return nil, ErrDependencyCycle
	}

	depths := make(map[uuid.UUID]int, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		depth := 1
		for _, n := range next[id] {
			if depths[n]+1 > depth {
				depth = depths[n] + 1
			}
		}
		depths[id] = depth
	}
	return depths, nil
}

// CreatesCycle reports whether adding "todoID depends on dependsOnID" to deps
// would close a cycle
func CreatesCycle(deps []models.TodoDependency, todoID, dependsOnID uuid.UUID) bool {
	if todoID == dependsOnID {
		return true
	}
	// A cycle appears if todoID is already a prerequisite (transitively) of dependsOnID
	prereqs := make(map[uuid.UUID][]uuid.UUID)
	for _, d := range deps {
		prereqs[d.TodoID] = append(prereqs[d.TodoID], d.DependsOnID)
	}
	seen := map[uuid.UUID]bool{dependsOnID: true}
	stack := []uuid.UUID{dependsOnID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range prereqs[id] {
			if p == todoID {
				return true
			}
			if !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
	return false
}
