package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/events"
	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/reorder"
	"github.com/promphitak-p/praweena/internal/seed"
	"github.com/promphitak-p/praweena/internal/taxonomy"
	"github.com/promphitak-p/praweena/internal/views"
)

// Service defines all renovation todo business operations
type Service interface {
	// Categories
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) error

	// Read operations
	ListTodos(ctx context.Context, propertyID uuid.UUID) ([]*models.Todo, error)
	GetTodo(ctx context.Context, todoID uuid.UUID) (*models.Todo, error)
	BuildView(ctx context.Context, propertyID uuid.UUID, req ViewRequest) (interface{}, error)

	// Write operations
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, todoID uuid.UUID) error
	SetStatus(ctx context.Context, todoID uuid.UUID, status models.TodoStatus) (*models.Todo, error)
	CancelTodo(ctx context.Context, todoID uuid.UUID, reason string) (*models.Todo, error)
	GenerateDefaults(ctx context.Context, propertyID uuid.UUID, createdBy string) (int, error)

	// Ordering
	MoveTodo(ctx context.Context, todoID uuid.UUID, dir reorder.Direction) error
	ReorderGroup(ctx context.Context, req ReorderRequest) error

	// Dependencies
	AddDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error
	RemoveDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error

	// Phase settings
	GetPhaseSettings(ctx context.Context, propertyID uuid.UUID) (*models.PhaseSetting, error)
	SetPhaseLock(ctx context.Context, propertyID uuid.UUID, enabled bool) (*models.PhaseSetting, error)
}

// Stores are the repositories the service reads and writes
type Stores struct {
	Todos      database.TodoStore
	Categories database.CategoryStore
	Settings   database.SettingStore
	Purchases  database.PurchaseStore
}

// StoresFrom picks the service's stores out of a Repository
func StoresFrom(repo *database.Repository) Stores {
	return Stores{
		Todos:      repo.Todos,
		Categories: repo.Categories,
		Settings:   repo.Settings,
		Purchases:  repo.Purchases,
	}
}

// CreateTodoRequest encapsulates all data needed to create a todo
type CreateTodoRequest struct {
	PropertyID     uuid.UUID
	CategoryID     *uuid.UUID
	Title          string
	Description    string
	Priority       models.Priority // Optional: empty means medium
	DueDate        *time.Time
	ReminderDate   *time.Time
	ContractorID   *uuid.UUID
	AssigneeName   *string
	BudgetEstimate *decimal.Decimal
	CreatedBy      string
}

// UpdateTodoRequest encapsulates all data needed to update a todo
// Fields with pointers are optional - nil means don't update
type UpdateTodoRequest struct {
	TodoID         uuid.UUID
	CategoryID     *uuid.UUID
	ClearCategory  bool
	Title          *string
	Description    *string
	Priority       *models.Priority
	DueDate        *time.Time
	ClearDueDate   bool
	ReminderDate   *time.Time
	ContractorID   *uuid.UUID
	AssigneeName   *string
	BudgetEstimate *decimal.Decimal
	ClearBudget    bool
	EvidenceLinks  *string
	BeforeLinks    *string
	AfterLinks     *string
}

// ReorderRequest is the order of a whole group after a drag and drop
type ReorderRequest struct {
	PropertyID uuid.UUID
	CategoryID *uuid.UUID // nil is the uncategorized group
	OrderedIDs []uuid.UUID
}

// CreateCategoryRequest adds a user category
type CreateCategoryRequest struct {
	Name  string
	Icon  string
	Color string
}

// UpdateCategoryRequest changes only display fields
type UpdateCategoryRequest struct {
	CategoryID uuid.UUID
	Name       string
	Icon       string
	Color      string
}

// service implements Service interface
type service struct {
	stores      Stores
	board       *Board
	catalogue   *seed.Catalogue
	eventClient events.EventPublisher
	now         func() time.Time
}

// Option configures the service
type Option func(*service)

// WithCatalogue replaces the built-in default todo catalogue
func WithCatalogue(c *seed.Catalogue) Option {
	return func(s *service) { s.catalogue = c }
}

// WithClock overrides the time source used by views
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a new todo service
func NewService(stores Stores, eventClient events.EventPublisher, opts ...Option) Service {
	s := &service{
		stores:      stores,
		board:       NewBoard(),
		catalogue:   seed.Default(),
		eventClient: eventClient,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// CATEGORIES
// ============================================================================

func (s *service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.stores.Categories.List(ctx)
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	if utf8.RuneCountInString(name) > models.TitleMaxLength {
		return nil, ErrTitleTooLong
	}
	cat, err := s.stores.Categories.Create(ctx, &models.Category{Name: name, Icon: req.Icon, Color: req.Color})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

func (s *service) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) error {
	if req.CategoryID == uuid.Nil {
		return ErrInvalidCategoryID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrEmptyCategoryName
	}
	err := s.stores.Categories.UpdateDisplay(ctx, req.CategoryID, name, req.Icon, req.Color)
	if errors.Is(err, models.ErrNotFound) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// ============================================================================
// READS
// ============================================================================

// state returns the property's board, loading it from the store on first use
func (s *service) state(ctx context.Context, propertyID uuid.UUID) (State, error) {
	if st, ok := s.board.Get(propertyID); ok {
		return st, nil
	}
	gen := s.board.Generation(propertyID)
	todos, err := s.stores.Todos.ListByProperty(ctx, propertyID)
	if err != nil {
		return State{}, fmt.Errorf("failed to load todos: %w", err)
	}
	deps, err := s.stores.Todos.ListDependencies(ctx, propertyID)
	if err != nil {
		return State{}, fmt.Errorf("failed to load dependencies: %w", err)
	}
	loaded := State{PropertyID: propertyID, Todos: todos, Dependencies: deps}
	if !s.board.Set(loaded, gen) {
		// A write landed during the load; serve the read without caching it
		return loaded, nil
	}
	if st, ok := s.board.Get(propertyID); ok {
		return st, nil
	}
	return loaded, nil
}

func (s *service) ListTodos(ctx context.Context, propertyID uuid.UUID) ([]*models.Todo, error) {
	if propertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	st, err := s.state(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return reorder.Sorted(st.Todos), nil
}

func (s *service) GetTodo(ctx context.Context, todoID uuid.UUID) (*models.Todo, error) {
	if todoID == uuid.Nil {
		return nil, ErrInvalidTodoID
	}
	t, err := s.stores.Todos.Get(ctx, todoID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	return t, err
}

// ============================================================================
// WRITES
// ============================================================================

func (s *service) CreateTodo(ctx context.Context, req CreateTodoRequest) (*models.Todo, error) {
	if err := s.validateCreateTodo(req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	t := &models.Todo{
		PropertyID:   req.PropertyID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Status:       models.StatusPending,
		Priority:     priority,
		DueDate:      req.DueDate,
		ReminderDate: req.ReminderDate,
		AssigneeName: req.AssigneeName,
		CreatedBy:    req.CreatedBy,
		SortOrder:    -1, // end of its group
	}
	if req.CategoryID != nil {
		if _, err := s.stores.Categories.Get(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		t.CategoryID = uuid.NullUUID{UUID: *req.CategoryID, Valid: true}
	}
	if req.ContractorID != nil {
		t.ContractorID = uuid.NullUUID{UUID: *req.ContractorID, Valid: true}
	}
	if req.BudgetEstimate != nil {
		t.BudgetEstimate = decimal.NewNullDecimal(*req.BudgetEstimate)
	}

	created, err := s.stores.Todos.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.board.Invalidate(created.PropertyID)
	s.publish(ctx, events.EventTodoChanged, created.PropertyID, created.ID)
	return created, nil
}

func (s *service) UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*models.Todo, error) {
	if err := s.validateUpdateTodo(req); err != nil {
		return nil, err
	}

	current, err := s.GetTodo(ctx, req.TodoID)
	if err != nil {
		return nil, err
	}

	patch := database.TodoPatch{
		ClearCategory:  req.ClearCategory,
		Description:    req.Description,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		ClearDueDate:   req.ClearDueDate,
		ReminderDate:   req.ReminderDate,
		ContractorID:   req.ContractorID,
		AssigneeName:   req.AssigneeName,
		BudgetEstimate: req.BudgetEstimate,
		ClearBudget:    req.ClearBudget,
		EvidenceLinks:  req.EvidenceLinks,
		BeforeLinks:    req.BeforeLinks,
		AfterLinks:     req.AfterLinks,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if req.DueDate != nil && current.ReminderSent {
		// A new due date re-arms the reminder
		sent := false
		patch.ReminderSent = &sent
	}

	if req.CategoryID != nil && (!current.CategoryID.Valid || current.CategoryID.UUID != *req.CategoryID) {
		if _, err := s.stores.Categories.Get(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		patch.CategoryID = req.CategoryID
	}

	updated, err := s.stores.Todos.Update(ctx, req.TodoID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	// Changing category moves the todo between groups; keep both dense
	if updated.Group() != current.Group() {
		if err := s.renormalize(ctx, current.Group()); err != nil {
			return nil, err
		}
		if err := s.appendToGroup(ctx, updated); err != nil {
			return nil, err
		}
	}

	s.board.Invalidate(updated.PropertyID)
	s.publish(ctx, events.EventTodoChanged, updated.PropertyID, updated.ID)
	return updated, nil
}

func (s *service) DeleteTodo(ctx context.Context, todoID uuid.UUID) error {
	current, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return err
	}
	if err := s.stores.Todos.Delete(ctx, todoID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if err := s.renormalize(ctx, current.Group()); err != nil {
		return err
	}

	s.board.Invalidate(current.PropertyID)
	s.publish(ctx, events.EventTodoDeleted, current.PropertyID, todoID)
	return nil
}

// SetStatus changes a todo's status. Completing a todo is refused with
// ErrPhaseLocked while the property's phase lock is on and an earlier phase
// still has unfinished todos.
func (s *service) SetStatus(ctx context.Context, todoID uuid.UUID, status models.TodoStatus) (*models.Todo, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	current, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	if status == models.StatusCompleted {
		if err := s.checkPhaseLock(ctx, current); err != nil {
			return nil, err
		}
	}

	if _, err := s.state(ctx, current.PropertyID); err != nil {
		return nil, err
	}
	err = s.board.Update(ctx, current.PropertyID,
		func(st *State) error {
			if t := st.Find(todoID); t != nil {
				t.Status = status
			}
			return nil
		},
		func(ctx context.Context) error {
			if err := s.stores.Todos.UpdateStatus(ctx, todoID, status); err != nil {
				return fmt.Errorf("failed to update status: %w", err)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	current.Status = status
	s.publish(ctx, events.EventTodoChanged, current.PropertyID, todoID)
	return current, nil
}

// CancelTodo is the soft alternative to delete: status cancelled and the
// reason appended to the description
func (s *service) CancelTodo(ctx context.Context, todoID uuid.UUID, reason string) (*models.Todo, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyCancelReason
	}
	current, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}

	description := models.CancelReasonPrefix + reason
	if current.Description != "" {
		description = current.Description + "\n" + description
	}
	status := models.StatusCancelled
	updated, err := s.stores.Todos.Update(ctx, todoID, database.TodoPatch{Status: &status, Description: &description})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel todo: %w", err)
	}

	s.board.Invalidate(updated.PropertyID)
	s.publish(ctx, events.EventTodoChanged, updated.PropertyID, todoID)
	return updated, nil
}

// GenerateDefaults seeds the default catalogue when the property has no todos
func (s *service) GenerateDefaults(ctx context.Context, propertyID uuid.UUID, createdBy string) (int, error) {
	if propertyID == uuid.Nil {
		return 0, ErrInvalidPropertyID
	}
	n, err := s.stores.Todos.GenerateDefaultTodos(ctx, propertyID, createdBy, s.catalogue)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("generated default todos", "property_id", propertyID, "count", n)
		s.board.Invalidate(propertyID)
		s.publish(ctx, events.EventDefaultsGenerated, propertyID, uuid.Nil)
	}
	return n, nil
}

// ============================================================================
// ORDERING
// ============================================================================

// MoveTodo swaps a todo with its neighbour and persists the whole group
func (s *service) MoveTodo(ctx context.Context, todoID uuid.UUID, dir reorder.Direction) error {
	if dir != reorder.Up && dir != reorder.Down {
		return ErrInvalidDirection
	}
	current, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return err
	}
	siblings, err := s.stores.Todos.ListSiblings(ctx, current.Group())
	if err != nil {
		return fmt.Errorf("failed to load siblings: %w", err)
	}
	updates, err := reorder.Move(siblings, todoID, dir)
	if err != nil {
		return err
	}
	return s.persistOrder(ctx, current.PropertyID, updates, todoID)
}

// ReorderGroup stores the order of a group after a drag and drop
func (s *service) ReorderGroup(ctx context.Context, req ReorderRequest) error {
	if req.PropertyID == uuid.Nil {
		return ErrInvalidPropertyID
	}
	key := models.GroupKey{PropertyID: req.PropertyID}
	if req.CategoryID != nil {
		key.CategoryID = uuid.NullUUID{UUID: *req.CategoryID, Valid: true}
	}
	group, err := s.stores.Todos.ListSiblings(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}
	updates, err := reorder.ApplyOrder(group, req.OrderedIDs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncompleteOrdering, err)
	}
	return s.persistOrder(ctx, req.PropertyID, updates, uuid.Nil)
}

// persistOrder applies positions to the board optimistically and writes them in one batch
func (s *service) persistOrder(ctx context.Context, propertyID uuid.UUID, updates []models.OrderUpdate, entityID uuid.UUID) error {
	if _, err := s.state(ctx, propertyID); err != nil {
		return err
	}
	err := s.board.Update(ctx, propertyID,
		func(st *State) error {
			reorder.Apply(st.Todos, updates)
			return nil
		},
		func(ctx context.Context) error {
			return s.stores.Todos.UpdateOrder(ctx, updates)
		})
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	s.publish(ctx, events.EventOrderChanged, propertyID, entityID)
	return nil
}

func (s *service) renormalize(ctx context.Context, key models.GroupKey) error {
	group, err := s.stores.Todos.ListSiblings(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}
	if reorder.IsDense(group) {
		return nil
	}
	if err := s.stores.Todos.UpdateOrder(ctx, reorder.Normalize(group)); err != nil {
		return fmt.Errorf("failed to renumber group: %w", err)
	}
	return nil
}

// appendToGroup moves a todo that just changed group to the end of its new group
func (s *service) appendToGroup(ctx context.Context, t *models.Todo) error {
	group, err := s.stores.Todos.ListSiblings(ctx, t.Group())
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}
	others := make([]*models.Todo, 0, len(group))
	for _, g := range group {
		if g.ID != t.ID {
			others = append(others, g)
		}
	}
	updates := append(reorder.Normalize(others), models.OrderUpdate{ID: t.ID, SortOrder: len(others)})
	if err := s.stores.Todos.UpdateOrder(ctx, updates); err != nil {
		return fmt.Errorf("failed to renumber group: %w", err)
	}
	t.SortOrder = len(others)
	return nil
}

// ============================================================================
// DEPENDENCIES
// ============================================================================

func (s *service) AddDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error {
	if todoID == uuid.Nil || dependsOnID == uuid.Nil {
		return ErrInvalidTodoID
	}
	if todoID == dependsOnID {
		return ErrSelfDependency
	}
	t, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return err
	}
	prereq, err := s.GetTodo(ctx, dependsOnID)
	if err != nil {
		return err
	}
	if t.PropertyID != prereq.PropertyID {
		return ErrCrossPropertyDependency
	}

	deps, err := s.stores.Todos.ListDependencies(ctx, t.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to load dependencies: %w", err)
	}
	if views.CreatesCycle(deps, todoID, dependsOnID) {
		return ErrCircularDependency
	}
	if err := s.stores.Todos.AddDependency(ctx, todoID, dependsOnID); err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}

	s.board.Invalidate(t.PropertyID)
	s.publish(ctx, events.EventTodoChanged, t.PropertyID, todoID)
	return nil
}

func (s *service) RemoveDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error {
	t, err := s.GetTodo(ctx, todoID)
	if err != nil {
		return err
	}
	if err := s.stores.Todos.RemoveDependency(ctx, todoID, dependsOnID); err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}
	s.board.Invalidate(t.PropertyID)
	s.publish(ctx, events.EventTodoChanged, t.PropertyID, todoID)
	return nil
}

// ============================================================================
// PHASE SETTINGS
// ============================================================================

func (s *service) GetPhaseSettings(ctx context.Context, propertyID uuid.UUID) (*models.PhaseSetting, error) {
	if propertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	return s.stores.Settings.Get(ctx, propertyID)
}

func (s *service) SetPhaseLock(ctx context.Context, propertyID uuid.UUID, enabled bool) (*models.PhaseSetting, error) {
	if propertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	setting := &models.PhaseSetting{PropertyID: propertyID, PhaseLockEnabled: enabled}
	if err := s.stores.Settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventSettingsChanged, propertyID, uuid.Nil)
	return setting, nil
}

func (s *service) checkPhaseLock(ctx context.Context, t *models.Todo) error {
	setting, err := s.stores.Settings.Get(ctx, t.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to read phase settings: %w", err)
	}
	if !setting.PhaseLockEnabled {
		return nil
	}

	st, err := s.state(ctx, t.PropertyID)
	if err != nil {
		return err
	}
	categories, err := s.stores.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	phase := taxonomy.PhaseOther
	for _, c := range categories {
		if t.CategoryID.Valid && c.ID == t.CategoryID.UUID {
			phase = taxonomy.PhaseOf(c.Name)
			break
		}
	}
	if blocking, ok := views.BlockingPhase(views.Phases(st.Todos, categories), phase); ok {
		return fmt.Errorf("%w: %s", ErrPhaseLocked, taxonomy.PhaseLabel(blocking))
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *service) validateCreateTodo(req CreateTodoRequest) error {
	if req.PropertyID == uuid.Nil {
		return ErrInvalidPropertyID
	}
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.BudgetEstimate != nil && req.BudgetEstimate.IsNegative() {
		return ErrNegativeBudget
	}
	return nil
}

func (s *service) validateUpdateTodo(req UpdateTodoRequest) error {
	if req.TodoID == uuid.Nil {
		return ErrInvalidTodoID
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return ErrInvalidPriority
	}
	if req.BudgetEstimate != nil && req.BudgetEstimate.IsNegative() {
		return ErrNegativeBudget
	}
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.TitleMaxLength {
		return ErrTitleTooLong
	}
	return nil
}

// publish announces a change; failures only affect live refresh and are logged
func (s *service) publish(ctx context.Context, t events.EventType, propertyID, entityID uuid.UUID) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(ctx, s.eventClient, events.NewEvent(t, propertyID, entityID), 3); err != nil {
		slog.Warn("failed to publish todo event", "property_id", propertyID, "error", err)
	}
}
