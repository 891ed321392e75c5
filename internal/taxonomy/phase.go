package taxonomy

// Phase is a construction stage derived from a category name
type Phase string

const (
	PhasePrep      Phase = "prep"
	PhaseStructure Phase = "structure"
	PhaseSystems   Phase = "systems"
	PhaseFinishes  Phase = "finishes"
	PhaseExterior  Phase = "exterior"
	PhaseOther     Phase = "other"
)

// Phases is the fixed display and gating order
var Phases = []Phase{PhasePrep, PhaseStructure, PhaseSystems, PhaseFinishes, PhaseExterior, PhaseOther}

// PhaseOf classifies a category name. It is total: unknown names map to PhaseOther.
func PhaseOf(categoryName string) Phase {
	return Phase(defaults.Phases.Classify(categoryName))
}

// PhaseLabel returns the Thai display label of a phase
func PhaseLabel(p Phase) string {
	return defaults.Phases.Label(string(p))
}

// Index returns the position of p in Phases, or -1
func (p Phase) Index() int {
	for i, q := range Phases {
		if q == p {
			return i
		}
	}
	return -1
}

// Zone is a floor-plan area used by the floor view
type Zone string

const ZoneOther Zone = "other"

// ZoneOf classifies a category name into a floor zone
func ZoneOf(categoryName string) Zone {
	return Zone(defaults.Zones.Classify(categoryName))
}

// Zones lists zone keys in display order
func Zones() []Zone {
	keys := defaults.Zones.Keys()
	zones := make([]Zone, len(keys))
	for i, k := range keys {
		zones[i] = Zone(k)
	}
	return zones
}

// ZoneLabel returns the Thai display label of a zone
func ZoneLabel(z Zone) string {
	return defaults.Zones.Label(string(z))
}
