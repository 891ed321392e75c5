package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem is a material line item bought for a todo
type PurchaseItem struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	TodoID     uuid.UUID       `db:"todo_id" json:"todo_id"`
	PropertyID uuid.UUID       `db:"property_id" json:"property_id"`
	Title      string          `db:"title" json:"title"`
	Vendor     string          `db:"vendor" json:"vendor"`
	Quantity   decimal.Decimal `db:"quantity" json:"quantity"`
	Unit       string          `db:"unit" json:"unit"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	Status     PurchaseStatus  `db:"status" json:"status"`
	DueDate    *time.Time      `db:"due_date" json:"due_date,omitempty"`
	Note       string          `db:"note" json:"note"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// LineTotal is quantity × unit price
func (p *PurchaseItem) LineTotal() decimal.Decimal {
	return p.Quantity.Mul(p.UnitPrice)
}
