package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/reorder"
	"github.com/promphitak-p/praweena/internal/services/todo"
	"github.com/promphitak-p/praweena/internal/user"
)

// ============================================================================
// CATEGORIES
// ============================================================================

func (h *handler) listCategories(c *gin.Context) {
	cats, err := h.Todos.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *handler) createCategory(c *gin.Context) {
	var body createCategoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	cat, err := h.Todos.CreateCategory(c.Request.Context(), todo.CreateCategoryRequest{Name: body.Name, Icon: body.Icon, Color: body.Color})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handler) updateCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body createCategoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	err := h.Todos.UpdateCategory(c.Request.Context(), todo.UpdateCategoryRequest{CategoryID: id, Name: body.Name, Icon: body.Icon, Color: body.Color})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// TODOS
// ============================================================================

func (h *handler) listTodos(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	todos, err := h.Todos.ListTodos(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *handler) getTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	t, err := h.Todos.GetTodo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) createTodo(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	var body createTodoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	due, err := parseDate(body.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	reminder, err := parseDate(body.ReminderDate)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	created, err := h.Todos.CreateTodo(ctx, todo.CreateTodoRequest{
		PropertyID:     propertyID,
		CategoryID:     body.CategoryID,
		Title:          body.Title,
		Description:    body.Description,
		Priority:       models.Priority(body.Priority),
		DueDate:        due,
		ReminderDate:   reminder,
		ContractorID:   body.ContractorID,
		AssigneeName:   body.AssigneeName,
		BudgetEstimate: body.BudgetEstimate,
		CreatedBy:      user.Actor(ctx),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handler) updateTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body updateTodoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	due, err := parseDate(body.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	reminder, err := parseDate(body.ReminderDate)
	if err != nil {
		respondError(c, err)
		return
	}

	req := todo.UpdateTodoRequest{
		TodoID:         id,
		CategoryID:     body.CategoryID,
		ClearCategory:  body.ClearCategory,
		Title:          body.Title,
		Description:    body.Description,
		DueDate:        due,
		ClearDueDate:   body.ClearDueDate,
		ReminderDate:   reminder,
		ContractorID:   body.ContractorID,
		AssigneeName:   body.AssigneeName,
		BudgetEstimate: body.BudgetEstimate,
		ClearBudget:    body.ClearBudget,
		EvidenceLinks:  body.EvidenceLinks,
		BeforeLinks:    body.BeforeLinks,
		AfterLinks:     body.AfterLinks,
	}
	if body.Priority != nil {
		p := models.Priority(*body.Priority)
		req.Priority = &p
	}

	updated, err := h.Todos.UpdateTodo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handler) deleteTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Todos.DeleteTodo(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) setStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := h.Todos.SetStatus(c.Request.Context(), id, models.TodoStatus(body.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) cancelTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body cancelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	t, err := h.Todos.CancelTodo(c.Request.Context(), id, body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) generateDefaults(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	n, err := h.Todos.GenerateDefaults(ctx, propertyID, user.Actor(ctx))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": n})
}

// ============================================================================
// ORDERING
// ============================================================================

func (h *handler) moveTodo(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body moveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	err := h.Todos.MoveTodo(c.Request.Context(), id, reorder.Direction(body.Direction))
	// A move past either end of the group is a no-op, not a failure
	if err != nil && !errors.Is(err, todo.ErrAlreadyFirstTask) && !errors.Is(err, todo.ErrAlreadyLastTask) {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) reorderGroup(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	var body orderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	err := h.Todos.ReorderGroup(c.Request.Context(), todo.ReorderRequest{
		PropertyID: propertyID,
		CategoryID: body.CategoryID,
		OrderedIDs: body.IDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// DEPENDENCIES / VIEWS / SETTINGS
// ============================================================================

func (h *handler) addDependency(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body dependencyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Todos.AddDependency(c.Request.Context(), id, body.DependsOnID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) removeDependency(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	dependsOn, ok := uuidParam(c, "dependsOn")
	if !ok {
		return
	}
	if err := h.Todos.RemoveDependency(c.Request.Context(), id, dependsOn); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) buildView(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	req := todo.ViewRequest{Name: c.Param("view")}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
			return
		}
		req.MonthOffset = offset
	}
	v, err := h.Todos.BuildView(c.Request.Context(), propertyID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handler) getPhaseSettings(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	s, err := h.Todos.GetPhaseSettings(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) putPhaseSettings(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	var body phaseSettingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	s, err := h.Todos.SetPhaseLock(c.Request.Context(), propertyID, *body.PhaseLockEnabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
