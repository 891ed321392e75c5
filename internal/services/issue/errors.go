package issue

import "errors"

// Issue-related errors
var (
	ErrEmptyTitle        = errors.New("issue title cannot be empty")
	ErrTitleTooLong      = errors.New("issue title cannot exceed 255 characters")
	ErrInvalidPropertyID = errors.New("invalid property ID")
	ErrInvalidIssueID    = errors.New("invalid issue ID")
	ErrInvalidSeverity   = errors.New("severity must be low, medium or high")
	ErrIssueNotFound     = errors.New("issue not found")
)
