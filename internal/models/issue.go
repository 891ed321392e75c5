package models

import (
	"time"

	"github.com/google/uuid"
)

// Issue is a risk or problem logged against a property, optionally tied to a todo
type Issue struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	PropertyID uuid.UUID     `db:"property_id" json:"property_id"`
	TodoID     uuid.NullUUID `db:"todo_id" json:"todo_id"`
	Title      string        `db:"title" json:"title"`
	Detail     string        `db:"detail" json:"detail"`
	Severity   Severity      `db:"severity" json:"severity"`
	Status     IssueStatus   `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}
