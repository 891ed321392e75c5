// Package views builds the read models of the renovation board from a
// property's todos and categories. Every function is pure: it neither reads
// the store nor mutates its inputs.
package views

import (
	"sort"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/reorder"
	"github.com/promphitak-p/praweena/internal/taxonomy"
)

// UncategorizedLabel names the bucket of todos without a category
const UncategorizedLabel = "ไม่มีหมวดหมู่"

// CityPreviewSize is the number of todos shown per block in the city view
const CityPreviewSize = 4

var statusLabels = map[models.TodoStatus]string{
	models.StatusPending:    "รอดำเนินการ",
	models.StatusInProgress: "กำลังดำเนินการ",
	models.StatusCompleted:  "เสร็จแล้ว",
	models.StatusCancelled:  "ยกเลิก",
}

// StatusLabel returns the Thai label of a status
func StatusLabel(s models.TodoStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Group is a category and its todos in sort order. Category is nil for the
// uncategorized bucket.
type Group struct {
	Category *models.Category `json:"category"`
	Label    string           `json:"label"`
	Todos    []*models.Todo   `json:"todos"`
}

// ListView is the default grouped list
type ListView struct {
	Groups []Group `json:"groups"`
	Empty  bool    `json:"empty"`
}

// KanbanColumn holds the todos of one status
type KanbanColumn struct {
	Status models.TodoStatus `json:"status"`
	Label  string            `json:"label"`
	Todos  []*models.Todo    `json:"todos"`
}

// KanbanView is the four fixed status columns
type KanbanView struct {
	Columns []KanbanColumn `json:"columns"`
	Empty   bool           `json:"empty"`
}

// CityBlock is a truncated category preview
type CityBlock struct {
	Category *models.Category `json:"category"`
	Label    string           `json:"label"`
	Preview  []*models.Todo   `json:"preview"`
	Overflow int              `json:"overflow"`
	Total    int              `json:"total"`
}

// CityView groups by category with short previews
type CityView struct {
	Blocks []CityBlock `json:"blocks"`
	Empty  bool        `json:"empty"`
}

// ZoneGroup holds the todos whose category falls in one floor zone
type ZoneGroup struct {
	Zone  taxonomy.Zone  `json:"zone"`
	Label string         `json:"label"`
	Todos []*models.Todo `json:"todos"`
}

// FloorView groups todos by floor-plan zone
type FloorView struct {
	Zones []ZoneGroup `json:"zones"`
	Empty bool        `json:"empty"`
}

// categoryIndex resolves category ids to categories
type categoryIndex map[uuid.UUID]*models.Category

func indexCategories(categories []*models.Category) categoryIndex {
	idx := make(categoryIndex, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}

// of returns the category of a todo, nil when unset or unknown
func (idx categoryIndex) of(t *models.Todo) *models.Category {
	if !t.CategoryID.Valid {
		return nil
	}
	return idx[t.CategoryID.UUID]
}

// nameOf returns the category name of a todo, empty when it has none
func (idx categoryIndex) nameOf(t *models.Todo) string {
	if c := idx.of(t); c != nil {
		return c.Name
	}
	return ""
}

// groupByCategory returns category groups in category sort order, the
// uncategorized bucket last. Categories without todos are skipped.
func groupByCategory(todos []*models.Todo, categories []*models.Category) []Group {
	idx := indexCategories(categories)
	byCat := make(map[uuid.UUID][]*models.Todo)
	var loose []*models.Todo
	for _, t := range todos {
		if c := idx.of(t); c != nil {
			byCat[c.ID] = append(byCat[c.ID], t)
		} else {
			loose = append(loose, t)
		}
	}

	cats := make([]*models.Category, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].SortOrder < cats[j].SortOrder })

	groups := make([]Group, 0, len(byCat)+1)
	for _, c := range cats {
		if members, ok := byCat[c.ID]; ok {
			groups = append(groups, Group{Category: c, Label: c.Name, Todos: reorder.Sorted(members)})
		}
	}
	if len(loose) > 0 {
		groups = append(groups, Group{Label: UncategorizedLabel, Todos: reorder.Sorted(loose)})
	}
	return groups
}

// List groups todos by category
func List(todos []*models.Todo, categories []*models.Category) ListView {
	return ListView{Groups: groupByCategory(todos, categories), Empty: len(todos) == 0}
}

// Kanban splits todos into the four status columns, each in sort order
func Kanban(todos []*models.Todo) KanbanView {
	cols := make([]KanbanColumn, len(models.TodoStatuses))
	for i, s := range models.TodoStatuses {
		cols[i] = KanbanColumn{Status: s, Label: StatusLabel(s), Todos: []*models.Todo{}}
	}
	for _, t := range reorder.Sorted(todos) {
		for i := range cols {
			if cols[i].Status == t.Status {
				cols[i].Todos = append(cols[i].Todos, t)
				break
			}
		}
	}
	return KanbanView{Columns: cols, Empty: len(todos) == 0}
}

// City shows each category with at most CityPreviewSize todos and an overflow count
func City(todos []*models.Todo, categories []*models.Category) CityView {
	groups := groupByCategory(todos, categories)
	blocks := make([]CityBlock, 0, len(groups))
	for _, g := range groups {
		preview := g.Todos
		if len(preview) > CityPreviewSize {
			preview = preview[:CityPreviewSize]
		}
		blocks = append(blocks, CityBlock{
			Category: g.Category,
			Label:    g.Label,
			Preview:  preview,
			Overflow: len(g.Todos) - len(preview),
			Total:    len(g.Todos),
		})
	}
	return CityView{Blocks: blocks, Empty: len(todos) == 0}
}

// Floor groups todos by the zone of their category name. Zones without
// todos are skipped.
func Floor(todos []*models.Todo, categories []*models.Category) FloorView {
	idx := indexCategories(categories)
	byZone := make(map[taxonomy.Zone][]*models.Todo)
	for _, t := range todos {
		z := taxonomy.ZoneOf(idx.nameOf(t))
		byZone[z] = append(byZone[z], t)
	}

	zones := make([]ZoneGroup, 0, len(byZone))
	for _, z := range taxonomy.Zones() {
		if members, ok := byZone[z]; ok {
			zones = append(zones, ZoneGroup{Zone: z, Label: taxonomy.ZoneLabel(z), Todos: reorder.Sorted(members)})
		}
	}
	return FloorView{Zones: zones, Empty: len(todos) == 0}
}
