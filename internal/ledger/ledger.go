// Package ledger aggregates and exports purchase line items. Totals are
// recomputed from the items on every call; nothing is persisted.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/models"
)

// Summary is the money rollup of a set of purchases
type Summary struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
	Count   int             `json:"count"`
}

// Summarize computes total = Σ qty × unit price, paid = Σ over paid items,
// pending = total − paid and overdue = Σ over unpaid items due before now.
// Void items count like any other so that paid + pending == total.
func Summarize(items []*models.PurchaseItem, now time.Time) Summary {
	s := Summary{Total: decimal.Zero, Paid: decimal.Zero, Overdue: decimal.Zero, Count: len(items)}
	for _, it := range items {
		line := it.LineTotal()
		s.Total = s.Total.Add(line)
		if it.Status == models.PurchasePaid {
			s.Paid = s.Paid.Add(line)
			continue
		}
		if it.DueDate != nil && it.DueDate.Before(now) {
			s.Overdue = s.Overdue.Add(line)
		}
	}
	s.Pending = s.Total.Sub(s.Paid)
	return s
}

// ByTodo summarises purchases per todo
func ByTodo(items []*models.PurchaseItem, now time.Time) map[uuid.UUID]Summary {
	grouped := make(map[uuid.UUID][]*models.PurchaseItem)
	for _, it := range items {
		grouped[it.TodoID] = append(grouped[it.TodoID], it)
	}
	out := make(map[uuid.UUID]Summary, len(grouped))
	for id, group := range grouped {
		out[id] = Summarize(group, now)
	}
	return out
}

var statusLabels = map[models.PurchaseStatus]string{
	models.PurchasePending:  "รอสั่งซื้อ",
	models.PurchaseOrdered:  "สั่งแล้ว",
	models.PurchaseReceived: "รับของแล้ว",
	models.PurchasePaid:     "จ่ายแล้ว",
	models.PurchaseVoid:     "ยกเลิก",
}

// StatusLabel returns the Thai label of a purchase status
func StatusLabel(s models.PurchaseStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}
