package cli

import (
	"errors"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/services/purchase"
	"github.com/promphitak-p/praweena/internal/services/todo"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing property ID, bad flag values, or an invalid config.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: An unreadable config file or a failed export write.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Unknown views, invalid priorities, or bad colors.
	ExitValidation = 5
)

// UsageError marks an error as a usage mistake
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsage
	case errors.Is(err, models.ErrNotFound), errors.Is(err, todo.ErrTodoNotFound),
		errors.Is(err, todo.ErrCategoryNotFound), errors.Is(err, purchase.ErrPurchaseNotFound):
		return ExitNotFound
	case errors.Is(err, todo.ErrInvalidView), errors.Is(err, todo.ErrInvalidPriority),
		errors.Is(err, todo.ErrInvalidPropertyID), errors.Is(err, ErrInvalidColor):
		return ExitValidation
	default:
		return ExitError
	}
}
