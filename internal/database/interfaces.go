// Package database defines repository interfaces for data access
package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/seed"
)

// TodoStore is the todo data access needed by the todo service.
// Implemented by *TodoRepo; tests may substitute a fake.
type TodoStore interface {
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Todo, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Todo, error)
	ListSiblings(ctx context.Context, key models.GroupKey) ([]*models.Todo, error)
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Update(ctx context.Context, id uuid.UUID, patch TodoPatch) (*models.Todo, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TodoStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateOrder(ctx context.Context, updates []models.OrderUpdate) error
	ListDependencies(ctx context.Context, propertyID uuid.UUID) ([]models.TodoDependency, error)
	AddDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error
	RemoveDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error
	GenerateDefaultTodos(ctx context.Context, propertyID uuid.UUID, createdBy string, catalogue *seed.Catalogue) (int, error)
}

// CategoryStore is the category data access
type CategoryStore interface {
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateDisplay(ctx context.Context, id uuid.UUID, name, icon, color string) error
}

// PurchaseStore is the purchase ledger data access
type PurchaseStore interface {
	ListByTodo(ctx context.Context, todoID uuid.UUID) ([]*models.PurchaseItem, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.PurchaseItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PurchaseItem, error)
	Upsert(ctx context.Context, item *models.PurchaseItem) (*models.PurchaseItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PurchaseStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// IssueStore is the issue log data access
type IssueStore interface {
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Issue, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	Create(ctx context.Context, issue *models.Issue) (*models.Issue, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.IssueStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingStore is the per-property settings data access
type SettingStore interface {
	Get(ctx context.Context, propertyID uuid.UUID) (*models.PhaseSetting, error)
	Upsert(ctx context.Context, s *models.PhaseSetting) error
}

// LeadStore reads buyer enquiries
type LeadStore interface {
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*models.Lead, error)
}

var (
	_ TodoStore     = (*TodoRepo)(nil)
	_ CategoryStore = (*CategoryRepo)(nil)
	_ PurchaseStore = (*PurchaseRepo)(nil)
	_ IssueStore    = (*IssueRepo)(nil)
	_ SettingStore  = (*PhaseSettingRepo)(nil)
	_ LeadStore     = (*LeadRepo)(nil)
)
