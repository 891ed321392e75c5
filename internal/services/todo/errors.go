package todo

import (
	"errors"

	"github.com/promphitak-p/praweena/internal/models"
)

// Todo-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("todo title cannot be empty")
	ErrTitleTooLong       = errors.New("todo title cannot exceed 255 characters")
	ErrInvalidTodoID      = errors.New("invalid todo ID")
	ErrInvalidPropertyID  = errors.New("invalid property ID")
	ErrInvalidStatus      = errors.New("invalid todo status")
	ErrInvalidPriority    = errors.New("invalid todo priority")
	ErrNegativeBudget     = errors.New("budget estimate cannot be negative")
	ErrEmptyCancelReason  = errors.New("cancel reason cannot be empty")
	ErrEmptyCategoryName  = errors.New("category name cannot be empty")
	ErrInvalidCategoryID  = errors.New("invalid category ID")
	ErrInvalidDirection   = errors.New("direction must be up or down")
	ErrInvalidView        = errors.New("unknown view")
	ErrIncompleteOrdering = errors.New("order must list every todo of the group exactly once")

	// Business logic errors
	ErrTodoNotFound            = errors.New("todo not found")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrSelfDependency          = errors.New("circular dependency: todo cannot depend on itself")
	ErrCircularDependency      = errors.New("circular dependency detected")
	ErrCrossPropertyDependency = errors.New("todos belong to different properties")
	ErrPhaseLocked             = errors.New("an earlier phase is not finished")
)

// Movement-related errors, shared with the reorder engine
var (
	ErrAlreadyFirstTask = models.ErrAlreadyFirstTask
	ErrAlreadyLastTask  = models.ErrAlreadyLastTask
)
