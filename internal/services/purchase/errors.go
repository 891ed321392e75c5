package purchase

import "errors"

// Purchase-related errors
var (
	// Validation errors
	ErrEmptyTitle        = errors.New("purchase title cannot be empty")
	ErrTitleTooLong      = errors.New("purchase title cannot exceed 255 characters")
	ErrInvalidTodoID     = errors.New("invalid todo ID")
	ErrInvalidPropertyID = errors.New("invalid property ID")
	ErrInvalidPurchaseID = errors.New("invalid purchase ID")
	ErrInvalidStatus     = errors.New("invalid purchase status")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrNegativePrice     = errors.New("unit price cannot be negative")

	// Business logic errors
	ErrTodoNotFound     = errors.New("todo not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
)
