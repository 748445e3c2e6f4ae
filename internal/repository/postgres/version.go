package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
)

// PostgresVersionRepository implements the VersionRepository interface.
// The ledger is append-only: the only destructive operation is the
// per-document cascade used when the owning document is deleted.
type PostgresVersionRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const versionColumns = "id, document_id, version_number, content, author_id, author_name, change_description, created_at"

func scanVersion(row pgx.Row) (*models.Version, error) {
	var v models.Version
	err := row.Scan(
		&v.ID,
		&v.DocumentID,
		&v.VersionNumber,
		&v.Content,
		&v.AuthorID,
		&v.AuthorName,
		&v.ChangeDescription,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create appends a new version snapshot
func (r *PostgresVersionRepository) Create(ctx context.Context, v *models.Version) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Versions, versionColumns)

	_, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		v.ID,
		v.DocumentID,
		v.VersionNumber,
		v.Content,
		v.AuthorID,
		v.AuthorName,
		v.ChangeDescription,
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create version: %w", err)
	}

	return nil
}

// GetByID retrieves a version by ID
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, versionColumns, r.tables.Versions)

	v, err := scanVersion(GetExecutor(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version: %w", err)
	}

	return v, nil
}

// Latest retrieves the most recent version for a document
func (r *PostgresVersionRepository) Latest(ctx context.Context, documentID string) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, versionColumns, r.tables.Versions)

	v, err := scanVersion(GetExecutor(ctx, r.db).QueryRow(ctx, query, documentID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("latest version for document %s: %w", documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get latest version: %w", err)
	}

	return v, nil
}

// ListByDocument lists versions for a document, newest first
func (r *PostgresVersionRepository) ListByDocument(ctx context.Context, documentID string) ([]models.Version, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC
	`, versionColumns, r.tables.Versions)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []models.Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}

	return versions, nil
}

// DeleteByDocument removes all versions of a document (cascade only)
func (r *PostgresVersionRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.Versions)

	if _, err := GetExecutor(ctx, r.db).Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete versions for document: %w", err)
	}

	return nil
}
