package views

import (
	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/taxonomy"
)

// PhaseStat is the progress of one construction phase
type PhaseStat struct {
	Phase   taxonomy.Phase `json:"phase"`
	Label   string         `json:"label"`
	Total   int            `json:"total"`
	Done    int            `json:"done"`
	Open    int            `json:"open"`
	Percent int            `json:"percent"`
}

// Finished reports whether every todo of the phase is done
func (s PhaseStat) Finished() bool {
	return s.Done >= s.Total
}

// Settled reports whether the phase has no pending or in-progress todos.
// Cancelled todos settle a phase without counting as done.
func (s PhaseStat) Settled() bool {
	return s.Open == 0
}

// PhaseOverview is the per-phase progress of a property. Phases without
// todos are omitted; Current is empty when no phase is in progress.
type PhaseOverview struct {
	Phases  []PhaseStat    `json:"phases"`
	Current taxonomy.Phase `json:"current,omitempty"`
	Empty   bool           `json:"empty"`
}

// Stat returns the stat of a phase and whether it has any todos
func (o PhaseOverview) Stat(p taxonomy.Phase) (PhaseStat, bool) {
	for _, s := range o.Phases {
		if s.Phase == p {
			return s, true
		}
	}
	return PhaseStat{Phase: p, Label: taxonomy.PhaseLabel(p)}, false
}

// Phases counts total and completed todos per phase
func Phases(todos []*models.Todo, categories []*models.Category) PhaseOverview {
	idx := indexCategories(categories)
	totals := make(map[taxonomy.Phase]*PhaseStat, len(taxonomy.Phases))
	for _, t := range todos {
		p := taxonomy.PhaseOf(idx.nameOf(t))
		s, ok := totals[p]
		if !ok {
			s = &PhaseStat{Phase: p, Label: taxonomy.PhaseLabel(p)}
			totals[p] = s
		}
		s.Total++
		if t.Status == models.StatusCompleted {
			s.Done++
		}
		if t.Status.Active() {
			s.Open++
		}
	}

	overview := PhaseOverview{Phases: []PhaseStat{}, Empty: len(todos) == 0}
	for _, p := range taxonomy.Phases {
		s, ok := totals[p]
		if !ok {
			continue
		}
		s.Percent = s.Done * 100 / s.Total
		overview.Phases = append(overview.Phases, *s)
		if overview.Current == "" && p != taxonomy.PhaseOther && !s.Finished() {
			overview.Current = p
		}
	}
	return overview
}

// BlockingPhase returns the earliest phase before p (excluding other) that
// still has active todos. ok is false when nothing blocks p.
func BlockingPhase(o PhaseOverview, p taxonomy.Phase) (taxonomy.Phase, bool) {
	if p == taxonomy.PhaseOther {
		return "", false
	}
	for _, s := range o.Phases {
		if s.Phase.Index() >= p.Index() || s.Phase == taxonomy.PhaseOther {
			continue
		}
		if !s.Settled() {
			return s.Phase, true
		}
	}
	return "", false
}
