package repositories

import (
	"context"

	"vellum/internal/domain/models"
)

// DocumentFilter holds the repository-level filters for a document search.
// Text matching is a case-insensitive substring match over title, content and
// author name; the remaining fields are exact matches. All filters AND
// together. Visibility filtering is NOT applied here; the service layer runs
// the access policy over the result.
type DocumentFilter struct {
	Query    string
	Category string
	Status   models.DocumentStatus
	AuthorID string
}

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create inserts a new document row
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetByIDForUpdate retrieves a document by ID with a row lock, so that
	// concurrent content edits serialize on the document row. Must be called
	// inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Document, error)

	// List retrieves all documents ordered by updated_at descending
	List(ctx context.Context) ([]models.Document, error)

	// Search retrieves documents matching the filter, ordered by updated_at
	// descending
	Search(ctx context.Context, filter *DocumentFilter) ([]models.Document, error)

	// Update rewrites an existing document row
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document row
	Delete(ctx context.Context, id string) error

	// CountByCategory counts documents referencing a category name
	CountByCategory(ctx context.Context, category string) (int, error)

	// CountByCompany counts documents referencing a client (company) name
	CountByCompany(ctx context.Context, company string) (int, error)
}
