package models

import "github.com/google/uuid"

// Category groups renovation todos (e.g. "งานไฟฟ้า").
// Only the display fields may change once todos reference it.
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon"`
	Color     string    `db:"color" json:"color"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	IsSystem  bool      `db:"is_system" json:"is_system"`
}
