package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/models"
)

var issueColumns = []string{"id", "property_id", "todo_id", "title", "detail", "severity", "status", "created_at"}

// IssueRepo handles data access for the renovation issue log
type IssueRepo struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

// NewIssueRepo creates an issue repository
func NewIssueRepo(db *sqlx.DB) *IssueRepo {
	return &IssueRepo{db: db, sb: builder(db)}
}

// ListByProperty returns open issues first, then resolved, newest first
func (r *IssueRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Issue, error) {
	query, args, err := r.sb.Select(issueColumns...).
		From("renovation_issues").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("status ASC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	issues := []*models.Issue{}
	if err := r.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, nil
}

// Create inserts an issue
func (r *IssueRepo) Create(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	if issue.ID == uuid.Nil {
		issue.ID = uuid.New()
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now().UTC()
	}
	query, args, err := r.sb.Insert("renovation_issues").
		Columns(issueColumns...).
		Values(issue.ID, issue.PropertyID, issue.TodoID, issue.Title, issue.Detail,
			issue.Severity, issue.Status, issue.CreatedAt).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return issue, nil
}

// UpdateStatus opens or resolves an issue
func (r *IssueRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IssueStatus) error {
	query, args, err := r.sb.Update("renovation_issues").Set("status", status).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update issue %s: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to update issue %s: %w", id, err)
	}
	return nil
}

// Delete removes an issue
func (r *IssueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM renovation_issues WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete issue %s: %w", id, err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete issue %s: %w", id, err)
	}
	return nil
}

// Get retrieves a single issue
func (r *IssueRepo) Get(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	query, args, err := r.sb.Select(issueColumns...).From("renovation_issues").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	issue := &models.Issue{}
	if err := r.db.GetContext(ctx, issue, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get issue %s: %w", id, notFound(err))
	}
	return issue, nil
}
