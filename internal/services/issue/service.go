package issue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/events"
	"github.com/promphitak-p/praweena/internal/models"
)

// Service manages the per-property issue log
type Service interface {
	List(ctx context.Context, propertyID uuid.UUID) ([]*models.Issue, error)
	Create(ctx context.Context, req CreateRequest) (*models.Issue, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateRequest opens a new issue, optionally tied to a todo
type CreateRequest struct {
	PropertyID uuid.UUID
	TodoID     *uuid.UUID
	Title      string
	Detail     string
	Severity   models.Severity // Optional: empty means medium
}

type service struct {
	repo        database.IssueStore
	eventClient events.EventPublisher
}

// NewService creates a new issue service
func NewService(repo database.IssueStore, eventClient events.EventPublisher) Service {
	return &service{repo: repo, eventClient: eventClient}
}

func (s *service) List(ctx context.Context, propertyID uuid.UUID) ([]*models.Issue, error) {
	if propertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Issue, error) {
	if req.PropertyID == uuid.Nil {
		return nil, ErrInvalidPropertyID
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.TitleMaxLength {
		return nil, ErrTitleTooLong
	}
	severity := req.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !severity.Valid() {
		return nil, ErrInvalidSeverity
	}

	issue := &models.Issue{
		PropertyID: req.PropertyID,
		Title:      title,
		Detail:     strings.TrimSpace(req.Detail),
		Severity:   severity,
		Status:     models.IssueOpen,
	}
	if req.TodoID != nil {
		issue.TodoID = uuid.NullUUID{UUID: *req.TodoID, Valid: true}
	}

	created, err := s.repo.Create(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	s.publish(ctx, created.PropertyID, created.ID)
	return created, nil
}

func (s *service) Resolve(ctx context.Context, id uuid.UUID) error {
	issue, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if issue.Status == models.IssueResolved {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, id, models.IssueResolved); err != nil {
		return fmt.Errorf("failed to resolve issue: %w", err)
	}
	s.publish(ctx, issue.PropertyID, id)
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	issue, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}
	s.publish(ctx, issue.PropertyID, id)
	return nil
}

func (s *service) get(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidIssueID
	}
	issue, err := s.repo.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load issue: %w", err)
	}
	return issue, nil
}

func (s *service) publish(ctx context.Context, propertyID, issueID uuid.UUID) {
	if s.eventClient == nil {
		return
	}
	event := events.NewEvent(events.EventIssueChanged, propertyID, issueID)
	if err := events.PublishWithRetry(ctx, s.eventClient, event, 3); err != nil {
		slog.Warn("failed to publish issue event", "property_id", propertyID, "error", err)
	}
}
