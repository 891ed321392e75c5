package database

import (
	"github.com/jmoiron/sqlx"
)

// Repository groups the domain repositories over one connection.
// The repositories share method names (Get, Create, Delete), so they are
// named fields rather than embedded.
type Repository struct {
	DB         *sqlx.DB
	Todos      *TodoRepo
	Categories *CategoryRepo
	Purchases  *PurchaseRepo
	Issues     *IssueRepo
	Settings   *PhaseSettingRepo
	Leads      *LeadRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		DB:         db,
		Todos:      NewTodoRepo(db),
		Categories: NewCategoryRepo(db),
		Purchases:  NewPurchaseRepo(db),
		Issues:     NewIssueRepo(db),
		Settings:   NewPhaseSettingRepo(db),
		Leads:      NewLeadRepo(db),
	}
}
