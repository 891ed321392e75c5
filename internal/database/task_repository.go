package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/models"
)

const todoTable = "renovation_todos"

var todoColumns = []string{
	"id", "property_id", "category_id", "title", "description", "status", "priority",
	"due_date", "reminder_date", "reminder_sent", "sort_order", "contractor_id",
	"assignee_name", "budget_estimate", "evidence_links", "before_links", "after_links",
	"created_by", "created_at",
}

// TodoPatch lists the fields of a partial todo update. Nil means unchanged;
// the Clear* flags set the matching nullable column to NULL.
type TodoPatch struct {
	CategoryID     *uuid.UUID
	ClearCategory  bool
	Title          *string
	Description    *string
	Status         *models.TodoStatus
	Priority       *models.Priority
	DueDate        *time.Time
	ClearDueDate   bool
	ReminderDate   *time.Time
	ReminderSent   *bool
	ContractorID   *uuid.UUID
	AssigneeName   *string
	BudgetEstimate *decimal.Decimal
	ClearBudget    bool
	EvidenceLinks  *string
	BeforeLinks    *string
	AfterLinks     *string
}

func (p TodoPatch) setMap() map[string]interface{} {
	m := make(map[string]interface{})
	if p.CategoryID != nil {
		m["category_id"] = *p.CategoryID
	} else if p.ClearCategory {
		m["category_id"] = nil
	}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.Priority != nil {
		m["priority"] = *p.Priority
	}
	if p.DueDate != nil {
		m["due_date"] = *p.DueDate
	} else if p.ClearDueDate {
		m["due_date"] = nil
	}
	if p.ReminderDate != nil {
		m["reminder_date"] = *p.ReminderDate
	}
	if p.ReminderSent != nil {
		m["reminder_sent"] = *p.ReminderSent
	}
	if p.ContractorID != nil {
		m["contractor_id"] = *p.ContractorID
	}
	if p.AssigneeName != nil {
		m["assignee_name"] = *p.AssigneeName
	}
	if p.BudgetEstimate != nil {
		m["budget_estimate"] = *p.BudgetEstimate
	} else if p.ClearBudget {
		m["budget_estimate"] = nil
	}
	if p.EvidenceLinks != nil {
		m["evidence_links"] = *p.EvidenceLinks
	}
	if p.BeforeLinks != nil {
		m["before_links"] = *p.BeforeLinks
	}
	if p.AfterLinks != nil {
		m["after_links"] = *p.AfterLinks
	}
	return m
}

// TodoRepo handles pure data access for renovation todos.
// No business logic, no events, no validation - just database operations
type TodoRepo struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewTodoRepo creates a todo repository
func NewTodoRepo(db *sqlx.DB) *TodoRepo {
	return &TodoRepo{db: db, sb: builder(db)}
}

// ============================================================================
// READS
// ============================================================================

// ListByProperty returns every todo of a property ordered by sort_order, newest first on ties
func (r *TodoRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Todo, error) {
	query, args, err := r.sb.Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("sort_order ASC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	todos := []*models.Todo{}
	if err := r.db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list todos for property %s: %w", propertyID, err)
	}
	return todos, nil
}

// Get retrieves a single todo
func (r *TodoRepo) Get(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	query, args, err := r.sb.Select(todoColumns...).From(todoTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{}
	if err := r.db.GetContext(ctx, todo, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get todo %s: %w", id, notFound(err))
	}
	return todo, nil
}

// ListSiblings returns the todos sharing the (property, category) group, ordered by sort_order
func (r *TodoRepo) ListSiblings(ctx context.Context, key models.GroupKey) ([]*models.Todo, error) {
	q := r.sb.Select(todoColumns...).
		From(todoTable).
		Where(squirrel.Eq{"property_id": key.PropertyID}).
		OrderBy("sort_order ASC", "created_at DESC")
	if key.CategoryID.Valid {
		q = q.Where(squirrel.Eq{"category_id": key.CategoryID.UUID})
	} else {
		q = q.Where(squirrel.Eq{"category_id": nil})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	todos := []*models.Todo{}
	if err := r.db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sibling todos: %w", err)
	}
	return todos, nil
}

// CountByProperty returns the number of todos of a property
func (r *TodoRepo) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		r.db.Rebind("SELECT COUNT(*) FROM renovation_todos WHERE property_id = ?"), propertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	return n, nil
}

// ============================================================================
// WRITES
// ============================================================================

// Create inserts a todo, assigning an ID, a creation time and, when sortOrder
// is negative, the next free position at the end of its group
func (r *TodoRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == uuid.Nil {
		todo.ID = uuid.New()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if todo.SortOrder < 0 {
			next, err := nextSortOrder(ctx, tx, r.sb, todo.Group())
			if err != nil {
				return err
			}
			todo.SortOrder = next
		}
		return insertTodo(ctx, tx, r.sb, todo)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// Update applies a partial update and returns the stored row
func (r *TodoRepo) Update(ctx context.Context, id uuid.UUID, patch TodoPatch) (*models.Todo, error) {
	set := patch.setMap()
	if len(set) > 0 {
		query, args, err := r.sb.Update(todoTable).SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return nil, err
		}
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update todo %s: %w", id, err)
		}
		if err := checkAffected(res); err != nil {
			return nil, fmt.Errorf("failed to update todo %s: %w", id, err)
		}
	}
	return r.Get(ctx, id)
}

// UpdateStatus sets only the status column
func (r *TodoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TodoStatus) error {
	query, args, err := r.sb.Update(todoTable).Set("status", status).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update todo %s status: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to update todo %s status: %w", id, err)
	}
	return nil
}

// Delete removes a todo; purchases cascade, issues are detached
func (r *TodoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM renovation_todos WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	return nil
}

// UpdateOrder persists a batch of sort positions as one statement:
//
//	UPDATE renovation_todos SET sort_order = CASE id WHEN ? THEN ? ... END WHERE id IN (...)
//
// The transaction is rolled back unless every id matched a row.
func (r *TodoRepo) UpdateOrder(ctx context.Context, updates []models.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	positions := squirrel.Case("id")
	ids := make([]uuid.UUID, len(updates))
	for i, u := range updates {
		positions = positions.When(squirrel.Expr("?", u.ID), squirrel.Expr("CAST(? AS INTEGER)", u.SortOrder))
		ids[i] = u.ID
	}
	positions = positions.Else(squirrel.Expr("sort_order"))

	query, args, err := r.sb.Update(todoTable).
		Set("sort_order", positions).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order update: %w", err)
	}

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if int(n) != len(updates) {
			return fmt.Errorf("%d of %d todos matched: %w", n, len(updates), models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update todo order: %w", err)
	}
	return nil
}

// ============================================================================
// DEPENDENCIES
// ============================================================================

// ListDependencies returns every dependency edge between todos of a property
func (r *TodoRepo) ListDependencies(ctx context.Context, propertyID uuid.UUID) ([]models.TodoDependency, error) {
	deps := []models.TodoDependency{}
	err := r.db.SelectContext(ctx, &deps, r.db.Rebind(`
		SELECT d.todo_id, d.depends_on_id
		FROM renovation_todo_dependencies d
		JOIN renovation_todos t ON t.id = d.todo_id
		WHERE t.property_id = ?`), propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}
	return deps, nil
}

// AddDependency records that todoID depends on dependsOnID
func (r *TodoRepo) AddDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error {
	query, args, err := r.sb.Insert("renovation_todo_dependencies").
		Columns("todo_id", "depends_on_id").
		Values(todoID, dependsOnID).
		Suffix("ON CONFLICT (todo_id, depends_on_id) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add dependency: %w", err)
	}
	return nil
}

// RemoveDependency deletes a dependency edge
func (r *TodoRepo) RemoveDependency(ctx context.Context, todoID, dependsOnID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM renovation_todo_dependencies WHERE todo_id = ? AND depends_on_id = ?"),
		todoID, dependsOnID)
	if err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to remove dependency: %w", err)
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func nextSortOrder(ctx context.Context, tx *sqlx.Tx, sb squirrel.StatementBuilderType, key models.GroupKey) (int, error) {
	q := sb.Select("COALESCE(MAX(sort_order) + 1, 0)").
		From(todoTable).
		Where(squirrel.Eq{"property_id": key.PropertyID})
	if key.CategoryID.Valid {
		q = q.Where(squirrel.Eq{"category_id": key.CategoryID.UUID})
	} else {
		q = q.Where(squirrel.Eq{"category_id": nil})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var next int
	if err := tx.GetContext(ctx, &next, query, args...); err != nil {
		return 0, fmt.Errorf("failed to get next sort_order: %w", err)
	}
	return next, nil
}

func insertTodo(ctx context.Context, tx *sqlx.Tx, sb squirrel.StatementBuilderType, t *models.Todo) error {
	query, args, err := sb.Insert(todoTable).
		Columns(todoColumns...).
		Values(
			t.ID, t.PropertyID, t.CategoryID, t.Title, t.Description, t.Status, t.Priority,
			t.DueDate, t.ReminderDate, t.ReminderSent, t.SortOrder, t.ContractorID,
			t.AssigneeName, t.BudgetEstimate, t.EvidenceLinks, t.BeforeLinks, t.AfterLinks,
			t.CreatedBy, t.CreatedAt,
		).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
