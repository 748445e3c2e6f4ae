package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
)

// PostgresAuditRepository implements the AuditRepository interface.
// Only INSERT and SELECT statements exist here; the audit log is append-only
// by construction, not by convention.
type PostgresAuditRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(config *RepositoryConfig) repositories.AuditRepository {
	return &PostgresAuditRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const auditColumns = "id, document_id, user_id, user_name, action, details, created_at"

// Create appends an audit entry
func (r *PostgresAuditRepository) Create(ctx context.Context, e *models.AuditEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.AuditLog, auditColumns)

	_, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		e.ID,
		e.DocumentID,
		e.UserID,
		e.UserName,
		e.Action,
		e.Details,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

// List returns audit entries newest first, optionally scoped to one document
func (r *PostgresAuditRepository) List(ctx context.Context, documentID *string) ([]models.AuditEntry, error) {
	var query string
	var args []interface{}

	if documentID == nil {
		query = fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, auditColumns, r.tables.AuditLog)
	} else {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE document_id = $1 ORDER BY created_at DESC`, auditColumns, r.tables.AuditLog)
		args = append(args, *documentID)
	}

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		err := rows.Scan(
			&e.ID,
			&e.DocumentID,
			&e.UserID,
			&e.UserName,
			&e.Action,
			&e.Details,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}
