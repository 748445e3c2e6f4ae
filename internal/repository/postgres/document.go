package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = "id, title, content, category, status, author_id, author_name, company, created_at, updated_at"

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.Category,
		&doc.Status,
		&doc.AuthorID,
		&doc.AuthorName,
		&doc.Company,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create inserts a new document row
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Documents, documentColumns)

	_, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.Category,
		doc.Status,
		doc.AuthorID,
		doc.AuthorName,
		doc.Company,
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	doc, err := scanDocument(GetExecutor(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return doc, nil
}

// GetByIDForUpdate retrieves a document by ID holding a row lock, so two
// concurrent content edits serialize and cannot derive the same next version
// number. Only meaningful inside a transaction.
func (r *PostgresDocumentRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, documentColumns, r.tables.Documents)

	doc, err := scanDocument(GetExecutor(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document for update: %w", err)
	}

	return doc, nil
}

// List retrieves all documents ordered by updated_at descending
func (r *PostgresDocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY updated_at DESC`, documentColumns, r.tables.Documents)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// Search retrieves documents matching the filter, ordered by updated_at
// descending. The free-text query matches title, content and author name
// case-insensitively; the remaining filters are exact. All conditions AND
// together.
func (r *PostgresDocumentRepository) Search(ctx context.Context, filter *repositories.DocumentFilter) ([]models.Document, error) {
	builder := sq.Select(documentColumns).
		From(r.tables.Documents).
		OrderBy("updated_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"content": pattern},
			sq.ILike{"author_name": pattern},
		})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.AuthorID != "" {
		builder = builder.Where(sq.Eq{"author_id": filter.AuthorID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// Update rewrites an existing document row
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, category = $3, status = $4, company = $5, updated_at = $6
		WHERE id = $7
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query,
		doc.Title,
		doc.Content,
		doc.Category,
		doc.Status,
		doc.Company,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a document row
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountByCategory counts documents referencing a category name
func (r *PostgresDocumentRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE category = $1`, r.tables.Documents)

	var count int
	if err := GetExecutor(ctx, r.db).QueryRow(ctx, query, category).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents by category: %w", err)
	}
	return count, nil
}

// CountByCompany counts documents referencing a client (company) name
func (r *PostgresDocumentRepository) CountByCompany(ctx context.Context, company string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE company = $1`, r.tables.Documents)

	var count int
	if err := GetExecutor(ctx, r.db).QueryRow(ctx, query, company).Scan(&count); err != nil {
		return 0, fmt.Errorf("count documents by company: %w", err)
	}
	return count, nil
}

func collectDocuments(rows pgx.Rows) ([]models.Document, error) {
	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return documents, nil
}
