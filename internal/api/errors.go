package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/reorder"
	"github.com/promphitak-p/praweena/internal/services/issue"
	"github.com/promphitak-p/praweena/internal/services/purchase"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/storage"
	"github.com/promphitak-p/praweena/internal/views"
)

var badRequest = []error{
	todo.ErrEmptyTitle, todo.ErrTitleTooLong, todo.ErrInvalidTodoID, todo.ErrInvalidPropertyID,
	todo.ErrInvalidStatus, todo.ErrInvalidPriority, todo.ErrNegativeBudget, todo.ErrEmptyCancelReason,
	todo.ErrEmptyCategoryName, todo.ErrInvalidCategoryID, todo.ErrInvalidDirection, todo.ErrInvalidView,
	todo.ErrIncompleteOrdering, todo.ErrSelfDependency, todo.ErrCrossPropertyDependency,
	reorder.ErrInvalidDirection, reorder.ErrIncompleteOrder, reorder.ErrNotInGroup,
	purchase.ErrEmptyTitle, purchase.ErrTitleTooLong, purchase.ErrInvalidTodoID, purchase.ErrInvalidPropertyID,
	purchase.ErrInvalidPurchaseID, purchase.ErrInvalidStatus, purchase.ErrNegativeQuantity, purchase.ErrNegativePrice,
	issue.ErrEmptyTitle, issue.ErrTitleTooLong, issue.ErrInvalidPropertyID, issue.ErrInvalidIssueID, issue.ErrInvalidSeverity,
	storage.ErrUnsupportedType, storage.ErrEmptyFile, storage.ErrInvalidKey, storage.ErrMissingTarget,
	errInvalidDate,
}

var notFound = []error{
	todo.ErrTodoNotFound, todo.ErrCategoryNotFound, purchase.ErrTodoNotFound, purchase.ErrPurchaseNotFound,
	issue.ErrIssueNotFound, models.ErrNotFound,
}

var conflict = []error{
	todo.ErrCircularDependency, todo.ErrPhaseLocked, views.ErrDependencyCycle,
}

// statusOf maps a service error to its HTTP status
func statusOf(err error) int {
	matches := func(list []error) bool {
		for _, target := range list {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case matches(badRequest):
		return http.StatusBadRequest
	case matches(notFound):
		return http.StatusNotFound
	case matches(conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}; internal errors are logged and hidden
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
}
