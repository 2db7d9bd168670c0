package db

import (
	"database/sql"
	"fmt"

	"notify-svc/internal/domain/entity"
)

// schema holds the CREATE statements per dialect, in dependency order.
var schema = map[Dialect][]string{
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS handler_type (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS global_setting (
    handler_type INTEGER NOT NULL UNIQUE REFERENCES handler_type(id),
    settings     TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS handler (
    topic        TEXT PRIMARY KEY,
    handler_type INTEGER NOT NULL REFERENCES handler_type(id),
    settings     TEXT
)`,
		`CREATE TABLE IF NOT EXISTS notification_archive (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    time        INTEGER NOT NULL,
    topic       TEXT NOT NULL,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL,
    send_failed BOOLEAN NOT NULL DEFAULT 0
)`,
	},
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS handler_type (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS global_setting (
    handler_type INTEGER NOT NULL UNIQUE REFERENCES handler_type(id),
    settings     TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS handler (
    topic        TEXT PRIMARY KEY,
    handler_type INTEGER NOT NULL REFERENCES handler_type(id),
    settings     TEXT
)`,
		`CREATE TABLE IF NOT EXISTS notification_archive (
    id          BIGSERIAL PRIMARY KEY,
    time        BIGINT NOT NULL,
    topic       TEXT NOT NULL,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL,
    send_failed BOOLEAN NOT NULL DEFAULT FALSE
)`,
	},
}

// indexes are shared by both dialects.
var indexes = []string{
	// historyByTime は time DESC で並べる
	`CREATE INDEX IF NOT EXISTS idx_notification_archive_time ON notification_archive(time DESC)`,
	// トピック別履歴取得用
	`CREATE INDEX IF NOT EXISTS idx_notification_archive_topic_time ON notification_archive(topic, time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_handler_handler_type ON handler(handler_type)`,
}

// MigrateUp creates the schema and seeds the handler_type reference data.
// It is idempotent.
func MigrateUp(db *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("unsupported database driver %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	return seedHandlerTypes(db, dialect)
}

// seedHandlerTypes inserts the reference handler types with stable ids
// starting at 1. Existing rows are left untouched.
func seedHandlerTypes(db *sql.DB, dialect Dialect) error {
	query := `INSERT INTO handler_type (id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`
	if dialect == DialectPostgres {
		query = `INSERT INTO handler_type (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	}
	for i, ht := range entity.HandlerTypes() {
		if _, err := db.Exec(query, i+1, string(ht)); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops every table in reverse order of creation.
// Use with caution: this will delete all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS notification_archive`,
		`DROP TABLE IF EXISTS handler`,
		`DROP TABLE IF EXISTS global_setting`,
		`DROP TABLE IF EXISTS handler_type`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
