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

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const commentColumns = "id, document_id, author_id, author_name, content, section_id, section_text, resolved, created_at"

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.DocumentID,
		&c.AuthorID,
		&c.AuthorName,
		&c.Content,
		&c.SectionID,
		&c.SectionText,
		&c.Resolved,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Comments, commentColumns)

	_, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		c.ID,
		c.DocumentID,
		c.AuthorID,
		c.AuthorName,
		c.Content,
		c.SectionID,
		c.SectionText,
		c.Resolved,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, commentColumns, r.tables.Comments)

	c, err := scanComment(GetExecutor(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return c, nil
}

// ListByDocument lists comments for a document, newest first
func (r *PostgresCommentRepository) ListByDocument(ctx context.Context, documentID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC
	`, commentColumns, r.tables.Comments)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// SetResolved flips the resolved flag on a comment
func (r *PostgresCommentRepository) SetResolved(ctx context.Context, id string, resolved bool) error {
	query := fmt.Sprintf(`UPDATE %s SET resolved = $1 WHERE id = $2`, r.tables.Comments)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query, resolved, id)
	if err != nil {
		return fmt.Errorf("set comment resolved: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByDocument removes all comments of a document (cascade only)
func (r *PostgresCommentRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.Comments)

	if _, err := GetExecutor(ctx, r.db).Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete comments for document: %w", err)
	}

	return nil
}
