package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/seed"
)

// GenerateDefaultTodos inserts the seed catalogue for a property that has no
// todos yet. It returns the number of inserted todos; zero means the property
// already had todos and nothing was written.
func (r *TodoRepo) GenerateDefaultTodos(ctx context.Context, propertyID uuid.UUID, createdBy string, catalogue *seed.Catalogue) (int, error) {
	inserted := 0
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if r.db.DriverName() == DriverPostgres {
			// Serialise concurrent generation for the same property
			if _, err := tx.ExecContext(ctx,
				"SELECT pg_advisory_xact_lock(hashtext($1))", propertyID.String()); err != nil {
				return err
			}
		}

		var existing int
		if err := tx.GetContext(ctx, &existing,
			r.db.Rebind("SELECT COUNT(*) FROM renovation_todos WHERE property_id = ?"), propertyID); err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		now := time.Now().UTC()
		for catIndex, sc := range catalogue.Categories {
			cat, err := findCategoryByName(ctx, tx, r.sb, sc.Name)
			if errors.Is(err, models.ErrNotFound) {
				cat = &models.Category{
					ID:        uuid.New(),
					Name:      sc.Name,
					Icon:      sc.Icon,
					Color:     sc.Color,
					SortOrder: catIndex,
					IsSystem:  true,
				}
				err = insertCategory(ctx, tx, r.sb, cat)
			}
			if err != nil {
				return fmt.Errorf("category %q: %w", sc.Name, err)
			}

			for i, st := range sc.Tasks {
				todo := &models.Todo{
					ID:         uuid.New(),
					PropertyID: propertyID,
					CategoryID: uuid.NullUUID{UUID: cat.ID, Valid: true},
					Title:      st.Title,
					Status:     models.StatusPending,
					Priority:   st.Priority,
					SortOrder:  i,
					CreatedBy:  createdBy,
					CreatedAt:  now,
				}
				if err := insertTodo(ctx, tx, r.sb, todo); err != nil {
					return fmt.Errorf("todo %q: %w", st.Title, err)
				}
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to generate default todos: %w", err)
	}
	return inserted, nil
}
