package app

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/promphitak-p/praweena/internal/notify"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	db     *sqlx.DB
	pusher notify.Pusher
	logger *slog.Logger
}

// WithDB uses an already opened and migrated database
func WithDB(db *sqlx.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithPusher replaces the LINE client, e.g. with a recorder in tests
func WithPusher(p notify.Pusher) Option {
	return func(cfg *appConfig) {
		cfg.pusher = p
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
