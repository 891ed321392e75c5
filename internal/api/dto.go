package api

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/promphitak-p/praweena/internal/models"
)

type createCategoryBody struct {
	Name  string `json:"name" binding:"required,max=255"`
	Icon  string `json:"icon" binding:"max=16"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type createTodoBody struct {
	CategoryID     *uuid.UUID       `json:"category_id"`
	Title          string           `json:"title" binding:"required,max=255"`
	Description    string           `json:"description"`
	Priority       string           `json:"priority" binding:"omitempty,priority"`
	DueDate        *string          `json:"due_date"`
	ReminderDate   *string          `json:"reminder_date"`
	ContractorID   *uuid.UUID       `json:"contractor_id"`
	AssigneeName   *string          `json:"assignee_name" binding:"omitempty,max=255"`
	BudgetEstimate *decimal.Decimal `json:"budget_estimate"`
}

type updateTodoBody struct {
	CategoryID     *uuid.UUID       `json:"category_id"`
	ClearCategory  bool             `json:"clear_category"`
	Title          *string          `json:"title" binding:"omitempty,max=255"`
	Description    *string          `json:"description"`
	Priority       *string          `json:"priority" binding:"omitempty,priority"`
	DueDate        *string          `json:"due_date"`
	ClearDueDate   bool             `json:"clear_due_date"`
	ReminderDate   *string          `json:"reminder_date"`
	ContractorID   *uuid.UUID       `json:"contractor_id"`
	AssigneeName   *string          `json:"assignee_name" binding:"omitempty,max=255"`
	BudgetEstimate *decimal.Decimal `json:"budget_estimate"`
	ClearBudget    bool             `json:"clear_budget"`
	EvidenceLinks  *string          `json:"evidence_links"`
	BeforeLinks    *string          `json:"before_links"`
	AfterLinks     *string          `json:"after_links"`
}

type statusBody struct {
	Status string `json:"status" binding:"required,todostatus"`
}

type cancelBody struct {
	Reason string `json:"reason" binding:"required"`
}

type moveBody struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type orderBody struct {
	CategoryID *uuid.UUID  `json:"category_id"`
	IDs        []uuid.UUID `json:"ids" binding:"required,min=1"`
}

type dependencyBody struct {
	DependsOnID uuid.UUID `json:"depends_on_id" binding:"required"`
}

type purchaseBody struct {
	ID        *uuid.UUID      `json:"id"`
	TodoID    uuid.UUID       `json:"todo_id" binding:"required"`
	Title     string          `json:"title" binding:"required,max=255"`
	Vendor    string          `json:"vendor"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    string          `json:"status" binding:"omitempty,purchasestatus"`
	DueDate   *string         `json:"due_date"`
	Note      string          `json:"note"`
}

type purchaseStatusBody struct {
	Status string `json:"status" binding:"required,purchasestatus"`
}

type issueBody struct {
	TodoID   *uuid.UUID `json:"todo_id"`
	Title    string     `json:"title" binding:"required,max=255"`
	Detail   string     `json:"detail"`
	Severity string     `json:"severity" binding:"omitempty,severity"`
}

type phaseSettingsBody struct {
	PhaseLockEnabled *bool `json:"phase_lock_enabled" binding:"required"`
}

type deleteFileBody struct {
	FileKey string `json:"fileKey"`
	FileURL string `json:"fileUrl"`
}

type notifyBody struct {
	To   string       `json:"to"`
	Text string       `json:"text"`
	Lead *models.Lead `json:"lead"`
}

var registerOnce sync.Once

// registerValidators adds the domain enum tags to gin's validator
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("todostatus", func(fl validator.FieldLevel) bool {
			return models.TodoStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			return models.Priority(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("purchasestatus", func(fl validator.FieldLevel) bool {
			return models.PurchaseStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
			return models.Severity(fl.Field().String()).Valid()
		})
	})
}

var errInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC 3339")

// parseDate accepts a calendar date or a full timestamp; nil and "" mean unset
func parseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, errInvalidDate
}
