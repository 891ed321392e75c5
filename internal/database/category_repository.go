package database

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/models"
)

var categoryColumns = []string{"id", "name", "icon", "color", "sort_order", "is_system"}

// CategoryRepo handles data access for todo categories
type CategoryRepo struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewCategoryRepo creates a category repository
func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db, sb: builder(db)}
}

// List returns all categories ordered for display
func (r *CategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query, args, err := r.sb.Select(categoryColumns...).
		From("renovation_todo_categories").
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	cats := []*models.Category{}
	if err := r.db.SelectContext(ctx, &cats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return cats, nil
}

// Get retrieves a category by id
func (r *CategoryRepo) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query, args, err := r.sb.Select(categoryColumns...).
		From("renovation_todo_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	cat := &models.Category{}
	if err := r.db.GetContext(ctx, cat, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, notFound(err))
	}
	return cat, nil
}

// Create inserts a user-defined category at the end of the list
func (r *CategoryRepo) Create(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &cat.SortOrder,
			"SELECT COALESCE(MAX(sort_order) + 1, 0) FROM renovation_todo_categories"); err != nil {
			return err
		}
		return insertCategory(ctx, tx, r.sb, cat)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

// UpdateDisplay changes the display fields (name, icon, color) of a category
func (r *CategoryRepo) UpdateDisplay(ctx context.Context, id uuid.UUID, name, icon, color string) error {
	query, args, err := r.sb.Update("renovation_todo_categories").
		Set("name", name).
		Set("icon", icon).
		Set("color", color).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return checkAffected(res)
}

func insertCategory(ctx context.Context, tx *sqlx.Tx, sb squirrel.StatementBuilderType, c *models.Category) error {
	query, args, err := sb.Insert("renovation_todo_categories").
		Columns(categoryColumns...).
		Values(c.ID, c.Name, c.Icon, c.Color, c.SortOrder, c.IsSystem).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// findCategoryByName looks up a system category inside a transaction
func findCategoryByName(ctx context.Context, tx *sqlx.Tx, sb squirrel.StatementBuilderType, name string) (*models.Category, error) {
	query, args, err := sb.Select(categoryColumns...).
		From("renovation_todo_categories").
		Where(squirrel.Eq{"name": name}).
		OrderBy("is_system DESC", "sort_order ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	cat := &models.Category{}
	if err := tx.GetContext(ctx, cat, query, args...); err != nil {
		return nil, notFound(err)
	}
	return cat, nil
}
