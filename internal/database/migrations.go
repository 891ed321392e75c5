package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	sql     string
}

// Column types differ between the two drivers; migrations use {{placeholders}}.
var dialectTypes = map[string]*strings.Replacer{
	DriverPostgres: strings.NewReplacer(
		"{{uuid}}", "UUID",
		"{{money}}", "NUMERIC(14,2)",
		"{{qty}}", "NUMERIC(12,3)",
		"{{timestamp}}", "TIMESTAMPTZ",
		"{{date}}", "DATE",
	),
	DriverSQLite: strings.NewReplacer(
		"{{uuid}}", "TEXT",
		"{{money}}", "TEXT",
		"{{qty}}", "TEXT",
		"{{timestamp}}", "DATETIME",
		"{{date}}", "DATE",
	),
}

var migrations = []migration{
	{version: 1, sql: `
		CREATE TABLE IF NOT EXISTS properties (
			id {{uuid}} PRIMARY KEY,
			title TEXT NOT NULL,
			created_at {{timestamp}} NOT NULL
		);

		CREATE TABLE IF NOT EXISTS renovation_todo_categories (
			id {{uuid}} PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			is_system BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS renovation_todos (
			id {{uuid}} PRIMARY KEY,
			property_id {{uuid}} NOT NULL,
			category_id {{uuid}} REFERENCES renovation_todo_categories(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			priority TEXT NOT NULL DEFAULT 'medium',
			due_date {{date}},
			reminder_date {{timestamp}},
			reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			contractor_id {{uuid}},
			assignee_name TEXT,
			budget_estimate {{money}},
			evidence_links TEXT,
			before_links TEXT,
			after_links TEXT,
			created_by TEXT NOT NULL DEFAULT '',
			created_at {{timestamp}} NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_renovation_todos_group
		ON renovation_todos(property_id, category_id, sort_order);

		CREATE TABLE IF NOT EXISTS todo_purchase_items (
			id {{uuid}} PRIMARY KEY,
			todo_id {{uuid}} NOT NULL REFERENCES renovation_todos(id) ON DELETE CASCADE,
			property_id {{uuid}} NOT NULL,
			title TEXT NOT NULL,
			vendor TEXT NOT NULL DEFAULT '',
			quantity {{qty}} NOT NULL,
			unit TEXT NOT NULL DEFAULT '',
			unit_price {{money}} NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			due_date {{date}},
			note TEXT NOT NULL DEFAULT '',
			created_at {{timestamp}} NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_todo_purchase_items_property
		ON todo_purchase_items(property_id);

		CREATE TABLE IF NOT EXISTS renovation_issues (
			id {{uuid}} PRIMARY KEY,
			property_id {{uuid}} NOT NULL,
			todo_id {{uuid}} REFERENCES renovation_todos(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'open',
			created_at {{timestamp}} NOT NULL
		);

		CREATE TABLE IF NOT EXISTS renovation_phase_settings (
			property_id {{uuid}} PRIMARY KEY,
			phase_lock_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at {{timestamp}} NOT NULL
		);

		CREATE TABLE IF NOT EXISTS leads (
			id {{uuid}} PRIMARY KEY,
			full_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT '',
			property_id {{uuid}} REFERENCES properties(id) ON DELETE SET NULL,
			created_at {{timestamp}} NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
	`},
	{version: 2, sql: `
		CREATE TABLE IF NOT EXISTS renovation_todo_dependencies (
			todo_id {{uuid}} NOT NULL REFERENCES renovation_todos(id) ON DELETE CASCADE,
			depends_on_id {{uuid}} NOT NULL REFERENCES renovation_todos(id) ON DELETE CASCADE,
			PRIMARY KEY (todo_id, depends_on_id)
		);
	`},
}

// runMigrations applies every migration newer than the recorded schema version
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	replacer, ok := dialectTypes[db.DriverName()]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}

	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := withTx(ctx, db, func(tx *sqlx.Tx) error {
			for _, stmt := range splitStatements(replacer.Replace(m.sql)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, db.Rebind("INSERT INTO schema_version (version) VALUES (?)"), m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SchemaVersion returns the latest applied migration
func SchemaVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var v int
	err := db.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	return v, err
}

func splitStatements(script string) []string {
	var out []string
	for _, s := range strings.Split(script, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
