package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
	"github.com/promphitak-p/praweena/internal/services/issue"
	"github.com/promphitak-p/praweena/internal/services/purchase"
)

func (h *handler) listTodoPurchases(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.Purchases.ListByTodo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handler) listPropertyPurchases(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	items, err := h.Purchases.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handler) purchaseSummary(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	s, err := h.Purchases.Summary(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) exportPurchases(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	filename := fmt.Sprintf("purchases-%s-%s.csv", propertyID.String()[:8], time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := h.Purchases.ExportCSV(c.Request.Context(), propertyID, c.Writer); err != nil {
		respondError(c, err)
		return
	}
}

func (h *handler) upsertPurchase(c *gin.Context) {
	var body purchaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	due, err := parseDate(body.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	req := purchase.UpsertRequest{
		TodoID:    body.TodoID,
		Title:     body.Title,
		Vendor:    body.Vendor,
		Quantity:  body.Quantity,
		Unit:      body.Unit,
		UnitPrice: body.UnitPrice,
		Status:    models.PurchaseStatus(body.Status),
		DueDate:   due,
		Note:      body.Note,
	}
	if body.ID != nil {
		req.ID = *body.ID
	}

	item, err := h.Purchases.Upsert(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if body.ID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, item)
}

func (h *handler) setPurchaseStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var body purchaseStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.Purchases.SetStatus(c.Request.Context(), id, models.PurchaseStatus(body.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) deletePurchase(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Purchases.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// ISSUES
// ============================================================================

func (h *handler) listIssues(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	issues, err := h.Issues.List(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

func (h *handler) createIssue(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	var body issueBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	created, err := h.Issues.Create(c.Request.Context(), issue.CreateRequest{
		PropertyID: propertyID,
		TodoID:     body.TodoID,
		Title:      body.Title,
		Detail:     body.Detail,
		Severity:   models.Severity(body.Severity),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handler) resolveIssue(c *gin.Context) {
	h.issueAction(c, h.Issues.Resolve)
}

func (h *handler) deleteIssue(c *gin.Context) {
	h.issueAction(c, h.Issues.Delete)
}

func (h *handler) issueAction(c *gin.Context, action func(context.Context, uuid.UUID) error) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := action(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
