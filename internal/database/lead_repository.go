package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/models"
)

// LeadRepo reads buyer enquiries for the daily digest
type LeadRepo struct {
	db *sqlx.DB
}

// NewLeadRepo creates a lead repository
func NewLeadRepo(db *sqlx.DB) *LeadRepo {
	return &LeadRepo{db: db}
}

// ListCreatedBetween returns leads with from <= created_at < to, oldest first
func (r *LeadRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*models.Lead, error) {
	leads := []*models.Lead{}
	err := r.db.SelectContext(ctx, &leads, r.db.Rebind(`
		SELECT l.id, l.full_name, l.phone, l.note, l.property_id, p.title AS property_title, l.created_at
		FROM leads l
		LEFT JOIN properties p ON p.id = l.property_id
		WHERE l.created_at >= ? AND l.created_at < ?
		ORDER BY l.created_at ASC`), from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}
