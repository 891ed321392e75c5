package models

// ============================================================================
// TODO STATUS
// ============================================================================

// TodoStatus is the lifecycle state of a renovation todo
type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusCompleted  TodoStatus = "completed"
	StatusCancelled  TodoStatus = "cancelled"
)

// TodoStatuses lists every status in kanban column order
var TodoStatuses = []TodoStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses
func (s TodoStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the todo still needs work
func (s TodoStatus) Active() bool {
	return s != StatusCompleted && s != StatusCancelled
}

// ============================================================================
// PRIORITY
// ============================================================================

// Priority is the urgency of a todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ============================================================================
// PURCHASE STATUS
// ============================================================================

// PurchaseStatus tracks a purchase line item from order to payment
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseOrdered  PurchaseStatus = "ordered"
	PurchaseReceived PurchaseStatus = "received"
	PurchasePaid     PurchaseStatus = "paid"
	PurchaseVoid     PurchaseStatus = "void"
)

// Valid reports whether s is one of the known purchase statuses
func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchasePending, PurchaseOrdered, PurchaseReceived, PurchasePaid, PurchaseVoid:
		return true
	}
	return false
}

// ============================================================================
// ISSUES
// ============================================================================

// Severity of a logged renovation issue
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is one of the known severities
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// IssueStatus is either open or resolved
type IssueStatus string

const (
	IssueOpen     IssueStatus = "open"
	IssueResolved IssueStatus = "resolved"
)

// ============================================================================
// ORDERING
// ============================================================================

// TitleMaxLength bounds todo, purchase and issue titles
const TitleMaxLength = 255

// CancelReasonPrefix is prepended to the reason appended on soft cancel
const CancelReasonPrefix = "ยกเลิก: "
