package views

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/taxonomy"
)

// ============================================================================
// FIXTURES
// ============================================================================

func category(name string, order int) *models.Category {
	return &models.Category{ID: uuid.New(), Name: name, SortOrder: order}
}

func todo(cat *models.Category, title string, status models.TodoStatus, order int) *models.Todo {
	t := &models.Todo{
		ID:        uuid.New(),
		Title:     title,
		Status:    status,
		SortOrder: order,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if cat != nil {
		t.CategoryID = uuid.NullUUID{UUID: cat.ID, Valid: true}
	}
	return t
}

func due(t *models.Todo, y int, m time.Month, d int) *models.Todo {
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	t.DueDate = &date
	return t
}

func titles(todos []*models.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}

// ============================================================================
// LIST / KANBAN / CITY / FLOOR
// ============================================================================

func TestList_GroupsByCategoryOrderUncategorizedLast(t *testing.T) {
	t.Parallel()
	electric := category("งานไฟฟ้า", 2)
	demo := category("งานรื้อถอน", 1)
	unused := category("งานสวน", 0)

	todos := []*models.Todo{
		todo(nil, "loose", models.StatusPending, 0),
		todo(electric, "e2", models.StatusPending, 1),
		todo(demo, "d1", models.StatusPending, 0),
		todo(electric, "e1", models.StatusPending, 0),
	}

	view := List(todos, []*models.Category{electric, demo, unused})
	if view.Empty {
		t.Fatal("Expected non-empty view")
	}

	var labels []string
	for _, g := range view.Groups {
		labels = append(labels, g.Label)
	}
	if diff := cmp.Diff([]string{"งานรื้อถอน", "งานไฟฟ้า", UncategorizedLabel}, labels); diff != "" {
		t.Errorf("Unexpected groups (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"e1", "e2"}, titles(view.Groups[1].Todos)); diff != "" {
		t.Errorf("Unexpected group order (-want +got):\n%s", diff)
	}
	if view.Groups[2].Category != nil {
		t.Error("Expected nil category for the uncategorized bucket")
	}
}

func TestList_Empty(t *testing.T) {
	t.Parallel()
	view := List(nil, nil)
	if !view.Empty || view.Groups == nil || len(view.Groups) != 0 {
		t.Errorf("Expected empty non-nil groups, got %+v", view)
	}
}

func TestKanban_FixedColumns(t *testing.T) {
	t.Parallel()
	todos := []*models.Todo{
		todo(nil, "a", models.StatusCompleted, 0),
		todo(nil, "b", models.StatusPending, 1),
		todo(nil, "c", models.StatusInProgress, 2),
	}

	view := Kanban(todos)
	if len(view.Columns) != 4 {
		t.Fatalf("Expected 4 columns, got %d", len(view.Columns))
	}
	want := map[models.TodoStatus]int{
		models.StatusPending:    1,
		models.StatusInProgress: 1,
		models.StatusCompleted:  1,
		models.StatusCancelled:  0,
	}
	for i, col := range view.Columns {
		if col.Status != models.TodoStatuses[i] {
			t.Errorf("Expected column %d to be %s, got %s", i, models.TodoStatuses[i], col.Status)
		}
		if len(col.Todos) != want[col.Status] {
			t.Errorf("Expected %d todos in %s, got %d", want[col.Status], col.Status, len(col.Todos))
		}
	}
}

func TestCity_PreviewAndOverflow(t *testing.T) {
	t.Parallel()
	cat := category("งานไฟฟ้า", 0)
	var todos []*models.Todo
	for i := 0; i < 7; i++ {
		todos = append(todos, todo(cat, string(rune('a'+i)), models.StatusPending, i))
	}

	view := City(todos, []*models.Category{cat})
	if len(view.Blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(view.Blocks))
	}
	b := view.Blocks[0]
	if len(b.Preview) != CityPreviewSize || b.Overflow != 3 || b.Total != 7 {
		t.Errorf("Expected 4 previewed and 3 overflow of 7, got %d/%d/%d", len(b.Preview), b.Overflow, b.Total)
	}
}

func TestFloor_GroupsByZone(t *testing.T) {
	t.Parallel()
	electric := category("งานไฟฟ้า", 0)
	bath := category("งานห้องน้ำและครัว", 1)
	paint := category("งานสีและตกแต่ง", 2)

	todos := []*models.Todo{
		todo(electric, "wire", models.StatusPending, 0),
		todo(bath, "tiles", models.StatusPending, 0),
		todo(paint, "paint", models.StatusPending, 0),
		todo(nil, "misc", models.StatusPending, 0),
	}

	view := Floor(todos, []*models.Category{electric, bath, paint})
	var zones []taxonomy.Zone
	for _, z := range view.Zones {
		zones = append(zones, z.Zone)
	}
	want := []taxonomy.Zone{"systems", "wet", "interior", taxonomy.ZoneOther}
	if diff := cmp.Diff(want, zones); diff != "" {
		t.Errorf("Unexpected zones (-want +got):\n%s", diff)
	}
}

// ============================================================================
// TIMELINE / GANTT / CALENDAR
// ============================================================================

func TestTimeline_UndatedLast(t *testing.T) {
	t.Parallel()
	todos := []*models.Todo{
		todo(nil, "undated", models.StatusPending, 0),
		due(todo(nil, "march", models.StatusPending, 1), 2026, 3, 1),
		due(todo(nil, "january", models.StatusPending, 2), 2026, 1, 15),
	}

	view := Timeline(todos)
	if diff := cmp.Diff([]string{"january", "march", "undated"}, titles(view.Todos)); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}
}

func TestGantt_Progress(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status models.TodoStatus
		want   int
	}{
		{models.StatusCompleted, 100},
		{models.StatusCancelled, 100},
		{models.StatusInProgress, 60},
		{models.StatusPending, 20},
	}
	for _, tt := range tests {
		view := Gantt([]*models.Todo{todo(nil, "x", tt.status, 0)})
		if view.Bars[0].Progress != tt.want {
			t.Errorf("Expected progress %d for %s, got %d", tt.want, tt.status, view.Bars[0].Progress)
		}
	}
}

func TestCalendar_MonthGrid(t *testing.T) {
	t.Parallel()
	ref := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	todos := []*models.Todo{
		due(todo(nil, "feb-14", models.StatusPending, 0), 2026, 2, 14),
		due(todo(nil, "jan-5", models.StatusPending, 1), 2026, 1, 5),
		todo(nil, "undated", models.StatusPending, 2),
	}

	// February 2026 starts on a Sunday and has 28 days
	view := Calendar(todos, ref, 1)
	if view.Year != 2026 || view.Month != time.February {
		t.Fatalf("Expected February 2026, got %s %d", view.Month, view.Year)
	}
	if view.Leading != 0 || len(view.Days) != 28 {
		t.Errorf("Expected 0 leading blanks and 28 days, got %d and %d", view.Leading, len(view.Days))
	}
	if diff := cmp.Diff([]string{"feb-14"}, titles(view.Days[13].Todos)); diff != "" {
		t.Errorf("Unexpected todos on the 14th (-want +got):\n%s", diff)
	}

	// January 2026 starts on a Thursday
	jan := Calendar(todos, ref, 0)
	if jan.Leading != 4 || len(jan.Days) != 31 {
		t.Errorf("Expected 4 leading blanks and 31 days, got %d and %d", jan.Leading, len(jan.Days))
	}

	// Offsets cross year boundaries
	dec := Calendar(todos, ref, -1)
	if dec.Year != 2025 || dec.Month != time.December || !dec.Empty {
		t.Errorf("Expected an empty December 2025, got %s %d empty=%v", dec.Month, dec.Year, dec.Empty)
	}
}

// ============================================================================
// PHASES
// ============================================================================

func TestPhases_CountsAndCurrent(t *testing.T) {
	t.Parallel()
	prep := category("งานเตรียมการและเอกสาร", 0)
	electric := category("งานไฟฟ้า", 1)
	garden := category("งานภายนอกและสวน", 2)

	todos := []*models.Todo{
		todo(prep, "permit", models.StatusCompleted, 0),
		todo(electric, "wire", models.StatusCompleted, 0),
		todo(electric, "panel", models.StatusPending, 1),
		todo(garden, "fence", models.StatusPending, 0),
		todo(nil, "misc", models.StatusPending, 0),
	}

	view := Phases(todos, []*models.Category{prep, electric, garden})

	var got []taxonomy.Phase
	for _, s := range view.Phases {
		got = append(got, s.Phase)
	}
	want := []taxonomy.Phase{taxonomy.PhasePrep, taxonomy.PhaseSystems, taxonomy.PhaseExterior, taxonomy.PhaseOther}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expected empty phases omitted (-want +got):\n%s", diff)
	}

	systems, _ := view.Stat(taxonomy.PhaseSystems)
	if systems.Total != 2 || systems.Done != 1 || systems.Percent != 50 {
		t.Errorf("Expected systems 1/2 (50%%), got %d/%d (%d%%)", systems.Done, systems.Total, systems.Percent)
	}
	if view.Current != taxonomy.PhaseSystems {
		t.Errorf("Expected current phase systems, got %q", view.Current)
	}

	if p, ok := BlockingPhase(view, taxonomy.PhaseExterior); !ok || p != taxonomy.PhaseSystems {
		t.Errorf("Expected exterior blocked by systems, got %q %v", p, ok)
	}
	if _, ok := BlockingPhase(view, taxonomy.PhaseSystems); ok {
		t.Error("Expected systems not to be blocked by finished prep")
	}
	if _, ok := BlockingPhase(view, taxonomy.PhaseOther); ok {
		t.Error("Expected other never to be blocked")
	}
}

func TestBlockingPhase_CancelledTodosSettleAPhase(t *testing.T) {
	t.Parallel()
	prep := category("งานเตรียมการและเอกสาร", 0)
	structure := category("งานโครงสร้าง", 1)

	todos := []*models.Todo{
		todo(prep, "permit", models.StatusCompleted, 0),
		todo(prep, "survey", models.StatusCancelled, 1),
		todo(structure, "beam", models.StatusInProgress, 0),
	}
	view := Phases(todos, []*models.Category{prep, structure})

	stat, _ := view.Stat(taxonomy.PhasePrep)
	if stat.Done != 1 || stat.Open != 0 || stat.Total != 2 {
		t.Errorf("Expected prep done=1 open=0 total=2, got done=%d open=%d total=%d", stat.Done, stat.Open, stat.Total)
	}
	if view.Current != taxonomy.PhasePrep {
		t.Errorf("Expected prep to stay current in the overview, got %q", view.Current)
	}
	if p, ok := BlockingPhase(view, taxonomy.PhaseStructure); ok {
		t.Errorf("Expected structure not to be blocked by a cancelled prep todo, got %q", p)
	}
}

func TestPhases_NoCurrentWhenAllDone(t *testing.T) {
	t.Parallel()
	electric := category("งานไฟฟ้า", 0)
	view := Phases([]*models.Todo{todo(electric, "wire", models.StatusCompleted, 0)}, []*models.Category{electric})
	if view.Current != "" {
		t.Errorf("Expected no current phase, got %q", view.Current)
	}
}

// ============================================================================
// CRITICAL PATH
// ============================================================================

func TestCriticalPath_RanksByDepthThenDueDate(t *testing.T) {
	t.Parallel()
	demo := due(todo(nil, "demolish", models.StatusPending, 0), 2026, 3, 1)
	frame := due(todo(nil, "frame", models.StatusPending, 1), 2026, 3, 10)
	wire := due(todo(nil, "wire", models.StatusInProgress, 2), 2026, 3, 20)
	paint := due(todo(nil, "paint", models.StatusPending, 3), 2026, 2, 1)
	done := todo(nil, "done", models.StatusCompleted, 4)

	deps := []models.TodoDependency{
		{TodoID: frame.ID, DependsOnID: demo.ID},
		{TodoID: wire.ID, DependsOnID: frame.ID},
		{TodoID: paint.ID, DependsOnID: done.ID},
	}

	view, err := CriticalPath([]*models.Todo{paint, wire, done, frame, demo}, deps)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"demolish", "frame", "paint", "wire"}, func() []string {
		var out []string
		for _, e := range view.Entries {
			out = append(out, e.Todo.Title)
		}
		return out
	}()); diff != "" {
		t.Errorf("Unexpected ranking (-want +got):\n%s", diff)
	}
	if view.Entries[0].Depth != 3 {
		t.Errorf("Expected demolish depth 3, got %d", view.Entries[0].Depth)
	}
}

func TestCriticalPath_CapsAtSix(t *testing.T) {
	t.Parallel()
	var todos []*models.Todo
	for i := 0; i < 9; i++ {
		todos = append(todos, todo(nil, "t", models.StatusPending, i))
	}
	view, err := CriticalPath(todos, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(view.Entries) != CriticalPathSize {
		t.Errorf("Expected %d entries, got %d", CriticalPathSize, len(view.Entries))
	}
	for _, e := range view.Entries {
		if e.Depth != 1 {
			t.Errorf("Expected depth 1 without edges, got %d", e.Depth)
		}
	}
}

func TestCriticalPath_Cycle(t *testing.T) {
	t.Parallel()
	a := todo(nil, "a", models.StatusPending, 0)
	b := todo(nil, "b", models.StatusPending, 1)
	deps := []models.TodoDependency{{TodoID: a.ID, DependsOnID: b.ID}, {TodoID: b.ID, DependsOnID: a.ID}}

	if _, err := CriticalPath([]*models.Todo{a, b}, deps); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("Expected ErrDependencyCycle, got %v", err)
	}
}

func TestCreatesCycle(t *testing.T) {
	t.Parallel()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	deps := []models.TodoDependency{{TodoID: b, DependsOnID: a}, {TodoID: c, DependsOnID: b}}

	if !CreatesCycle(deps, a, c) {
		t.Error("Expected a -> c to close a cycle")
	}
	if !CreatesCycle(deps, a, a) {
		t.Error("Expected a self dependency to be a cycle")
	}
	if CreatesCycle(deps, c, a) {
		t.Error("Expected c -> a to be allowed")
	}
}

// ============================================================================
// BUDGET
// ============================================================================

func TestBudget_PlannedVsActual(t *testing.T) {
	t.Parallel()
	a := todo(nil, "a", models.StatusPending, 0)
	a.BudgetEstimate = decimal.NewNullDecimal(decimal.RequireFromString("15000.5"))
	b := todo(nil, "b", models.StatusPending, 1)

	purchases := []*models.PurchaseItem{
		{Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(150)},
		{Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.NewFromInt(100)},
	}

	view := Budget([]*models.Todo{a, b}, purchases)
	if !view.Planned.Equal(decimal.RequireFromString("15000.5")) {
		t.Errorf("Expected planned 15000.5, got %s", view.Planned)
	}
	if !view.Actual.Equal(decimal.NewFromInt(1750)) {
		t.Errorf("Expected actual 1750, got %s", view.Actual)
	}
	if view.OverBudget {
		t.Error("Expected not over budget")
	}
}

func TestBudget_Empty(t *testing.T) {
	t.Parallel()
	view := Budget(nil, nil)
	if !view.Empty || !view.Planned.IsZero() || !view.Actual.IsZero() {
		t.Errorf("Expected empty zero budget, got %+v", view)
	}
}
