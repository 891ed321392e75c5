package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/models"
)

// PhaseSettingRepo handles per-property renovation settings
type PhaseSettingRepo struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewPhaseSettingRepo creates a phase setting repository
func NewPhaseSettingRepo(db *sqlx.DB) *PhaseSettingRepo {
	return &PhaseSettingRepo{db: db, sb: builder(db)}
}

// Get returns the settings of a property; a property without a row gets the defaults
func (r *PhaseSettingRepo) Get(ctx context.Context, propertyID uuid.UUID) (*models.PhaseSetting, error) {
	query, args, err := r.sb.Select("property_id", "phase_lock_enabled", "updated_at").
		From("renovation_phase_settings").
		Where(squirrel.Eq{"property_id": propertyID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	s := &models.PhaseSetting{}
	err = r.db.GetContext(ctx, s, query, args...)
	if errors.Is(notFound(err), models.ErrNotFound) {
		return &models.PhaseSetting{PropertyID: propertyID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phase settings: %w", err)
	}
	return s, nil
}

// Upsert stores the settings of a property
func (r *PhaseSettingRepo) Upsert(ctx context.Context, s *models.PhaseSetting) error {
	s.UpdatedAt = time.Now().UTC()
	query, args, err := r.sb.Insert("renovation_phase_settings").
		Columns("property_id", "phase_lock_enabled", "updated_at").
		Values(s.PropertyID, s.PhaseLockEnabled, s.UpdatedAt).
		Suffix("ON CONFLICT (property_id) DO UPDATE SET phase_lock_enabled = excluded.phase_lock_enabled, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save phase settings: %w", err)
	}
	return nil
}
