package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/models"
)

const purchaseTable = "todo_purchase_items"

var purchaseColumns = []string{
	"id", "todo_id", "property_id", "title", "vendor", "quantity", "unit",
	"unit_price", "status", "due_date", "note", "created_at",
}

// PurchaseRepo handles data access for purchase line items
type PurchaseRepo struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewPurchaseRepo creates a purchase repository
func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db, sb: builder(db)}
}

func (r *PurchaseRepo) list(ctx context.Context, where squirrel.Eq) ([]*models.PurchaseItem, error) {
	query, args, err := r.sb.Select(purchaseColumns...).
		From(purchaseTable).
		Where(where).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	items := []*models.PurchaseItem{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByTodo returns the purchases of one todo
func (r *PurchaseRepo) ListByTodo(ctx context.Context, todoID uuid.UUID) ([]*models.PurchaseItem, error) {
	items, err := r.list(ctx, squirrel.Eq{"todo_id": todoID})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for todo %s: %w", todoID, err)
	}
	return items, nil
}

// ListByProperty returns every purchase of a property
func (r *PurchaseRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.PurchaseItem, error) {
	items, err := r.list(ctx, squirrel.Eq{"property_id": propertyID})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for property %s: %w", propertyID, err)
	}
	return items, nil
}

// Get retrieves one purchase
func (r *PurchaseRepo) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseItem, error) {
	query, args, err := r.sb.Select(purchaseColumns...).From(purchaseTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	item := &models.PurchaseItem{}
	if err := r.db.GetContext(ctx, item, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get purchase %s: %w", id, notFound(err))
	}
	return item, nil
}

// Upsert inserts the item or, when its id exists, overwrites every mutable column
func (r *PurchaseRepo) Upsert(ctx context.Context, item *models.PurchaseItem) (*models.PurchaseItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	updates := make([]string, 0, len(purchaseColumns))
	for _, col := range purchaseColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	query, args, err := r.sb.Insert(purchaseTable).
		Columns(purchaseColumns...).
		Values(
			item.ID, item.TodoID, item.PropertyID, item.Title, item.Vendor, item.Quantity, item.Unit,
			item.UnitPrice, item.Status, item.DueDate, item.Note, item.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert purchase: %w", err)
	}
	return r.Get(ctx, item.ID)
}

// UpdateStatus changes the status of one purchase
func (r *PurchaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PurchaseStatus) error {
	query, args, err := r.sb.Update(purchaseTable).Set("status", status).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update purchase %s status: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to update purchase %s status: %w", id, err)
	}
	return nil
}

// Delete removes a purchase
func (r *PurchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM todo_purchase_items WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", id, err)
	}
	return nil
}
