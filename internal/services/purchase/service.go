package purchase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/events"
	"github.com/promphitak-p/praweena/internal/ledger"
	"github.com/promphitak-p/praweena/internal/models"
)

// Service defines the purchase ledger operations
type Service interface {
	ListByTodo(ctx context.Context, todoID uuid.UUID) ([]*models.PurchaseItem, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.PurchaseItem, error)
	Summary(ctx context.Context, propertyID uuid.UUID) (ledger.Summary, error)
	Upsert(ctx context.Context, req UpsertRequest) (*models.PurchaseItem, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.PurchaseStatus) (*models.PurchaseItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportCSV(ctx context.Context, propertyID uuid.UUID, w io.Writer) error
	Report(ctx context.Context, propertyID uuid.UUID, title string) (string, error)
}

// UpsertRequest creates a purchase line, or replaces it when ID is set.
// The property is taken from the todo.
type UpsertRequest struct {
	ID        uuid.UUID
	TodoID    uuid.UUID
	Title     string
	Vendor    string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Status    models.PurchaseStatus // Optional: empty means pending
	DueDate   *time.Time
	Note      string
}

type service struct {
	purchases   database.PurchaseStore
	todos       database.TodoStore
	eventClient events.EventPublisher
	now         func() time.Time
}

// NewService creates a new purchase service
func NewService(purchases database.PurchaseStore, todos database.TodoStore, eventClient events.EventPublisher) Service {
	return &service{
		purchases:   purchases,
		todos:       todos,
		eventClient: eventClient,
		now:         time.Now,
	}
}

func (s *service) ListByTodo(ctx context.Context, todoID uuid.UUID) ([]*models.PurchaseItem, error) {
	if todoID == uuid.Nil {
		return nil, ErrInvalidTodoID
	}
	return s.purchases.ListByTodo(ctx, todoID)
}

func (s *service) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.PurchaseItem, error) {
	if propertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	return s.purchases.ListByProperty(ctx, propertyID)
}

func (s *service) Summary(ctx context.Context, propertyID uuid.UUID) (ledger.Summary, error) {
	items, err := s.ListByProperty(ctx, propertyID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(items, s.now()), nil
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*models.PurchaseItem, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}

	todo, err := s.todos.Get(ctx, req.TodoID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load todo: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.PurchasePending
	}
	item, err := s.purchases.Upsert(ctx, &models.PurchaseItem{
		ID:         req.ID,
		TodoID:     todo.ID,
		PropertyID: todo.PropertyID,
		Title:      strings.TrimSpace(req.Title),
		Vendor:     strings.TrimSpace(req.Vendor),
		Quantity:   req.Quantity,
		Unit:       strings.TrimSpace(req.Unit),
		UnitPrice:  req.UnitPrice,
		Status:     status,
		DueDate:    req.DueDate,
		Note:       req.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	s.publish(ctx, item.PropertyID, item.ID)
	return item, nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status models.PurchaseStatus) (*models.PurchaseItem, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidPurchaseID
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.purchases.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to update purchase status: %w", err)
	}
	item, err := s.purchases.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload purchase: %w", err)
	}

	s.publish(ctx, item.PropertyID, item.ID)
	return item, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidPurchaseID
	}
	item, err := s.purchases.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return ErrPurchaseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load purchase: %w", err)
	}
	if err := s.purchases.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	s.publish(ctx, item.PropertyID, id)
	return nil
}

// ExportCSV writes the property's ledger as a spreadsheet-friendly CSV
func (s *service) ExportCSV(ctx context.Context, propertyID uuid.UUID, w io.Writer) error {
	items, titles, err := s.ledgerWithTitles(ctx, propertyID)
	if err != nil {
		return err
	}
	return ledger.WriteCSV(w, items, titles)
}

// Report renders the property's ledger as a markdown document
func (s *service) Report(ctx context.Context, propertyID uuid.UUID, title string) (string, error) {
	items, titles, err := s.ledgerWithTitles(ctx, propertyID)
	if err != nil {
		return "", err
	}
	return ledger.Report(title, items, titles, s.now()), nil
}

func (s *service) ledgerWithTitles(ctx context.Context, propertyID uuid.UUID) ([]*models.PurchaseItem, map[uuid.UUID]string, error) {
	items, err := s.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	todos, err := s.todos.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load todos: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(todos))
	for _, t := range todos {
		titles[t.ID] = t.Title
	}
	return items, titles, nil
}

func validateUpsert(req UpsertRequest) error {
	if req.TodoID == uuid.Nil {
		return ErrInvalidTodoID
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.TitleMaxLength {
		return ErrTitleTooLong
	}
	if req.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	if req.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if req.Status != "" && !req.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (s *service) publish(ctx context.Context, propertyID, entityID uuid.UUID) {
	if s.eventClient == nil {
		return
	}
	event := events.NewEvent(events.EventPurchaseChanged, propertyID, entityID)
	if err := events.PublishWithRetry(ctx, s.eventClient, event, 3); err != nil {
		slog.Warn("failed to publish purchase event", "property_id", propertyID, "error", err)
	}
}
