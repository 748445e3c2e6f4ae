package postgres

import (
	"context"
	"fmt"

	"vellum/internal/domain/repositories"
)

// EnsureSchema creates the application tables if they do not exist yet.
// Statements run in dependency order so foreign keys resolve. The audit log
// deliberately has no foreign key on document_id: its rows must survive the
// deletion of the documents they reference.
func EnsureSchema(ctx context.Context, db repositories.DBTX, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id          TEXT PRIMARY KEY,
				title       TEXT NOT NULL,
				content     TEXT NOT NULL,
				category    TEXT NOT NULL DEFAULT '',
				status      TEXT NOT NULL DEFAULT 'draft',
				author_id   TEXT NOT NULL,
				author_name TEXT NOT NULL,
				company     TEXT NOT NULL DEFAULT '',
				created_at  TIMESTAMPTZ NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL
			)
		`, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id                 TEXT PRIMARY KEY,
				document_id        TEXT NOT NULL REFERENCES %s(id),
				version_number     TEXT NOT NULL,
				content            TEXT NOT NULL,
				author_id          TEXT NOT NULL,
				author_name        TEXT NOT NULL,
				change_description TEXT,
				created_at         TIMESTAMPTZ NOT NULL
			)
		`, tables.Versions, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id           TEXT PRIMARY KEY,
				document_id  TEXT NOT NULL REFERENCES %s(id),
				author_id    TEXT NOT NULL,
				author_name  TEXT NOT NULL,
				content      TEXT NOT NULL,
				section_id   TEXT,
				section_text TEXT,
				resolved     BOOLEAN NOT NULL DEFAULT FALSE,
				created_at   TIMESTAMPTZ NOT NULL
			)
		`, tables.Comments, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id          TEXT PRIMARY KEY,
				document_id TEXT,
				user_id     TEXT NOT NULL,
				user_name   TEXT NOT NULL,
				action      TEXT NOT NULL,
				details     TEXT NOT NULL DEFAULT '',
				created_at  TIMESTAMPTZ NOT NULL
			)
		`, tables.AuditLog),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				user_id    TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Categories),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				user_id    TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Clients),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_document_created ON %s (document_id, created_at DESC)`,
			tables.Versions, tables.Versions),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created ON %s (created_at DESC)`,
			tables.AuditLog, tables.AuditLog),
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
