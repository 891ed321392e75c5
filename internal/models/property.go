package models

import (
	"time"

	"github.com/google/uuid"
)

// PhaseSetting holds per-property renovation book switches
type PhaseSetting struct {
	PropertyID       uuid.UUID `db:"property_id" json:"property_id"`
	PhaseLockEnabled bool      `db:"phase_lock_enabled" json:"phase_lock_enabled"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Lead is an enquiry left by a prospective buyer
type Lead struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	FullName      string        `db:"full_name" json:"full_name"`
	Phone         string        `db:"phone" json:"phone"`
	Note          string        `db:"note" json:"note"`
	PropertyID    uuid.NullUUID `db:"property_id" json:"property_id"`
	PropertyTitle *string       `db:"property_title" json:"property_title,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
