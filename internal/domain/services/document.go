package services

import (
	"context"

	"vellum/internal/domain/models"
)

// CreateDocumentRequest carries the client-supplied fields of a new document.
// Author identity is deliberately absent: it is stamped from the resolved
// principal server-side and cannot be supplied by the client.
type CreateDocumentRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Company  string `json:"company"`
}

// UpdateDocumentRequest carries a partial update. Nil fields are left
// untouched. As with creation, author identity cannot be supplied.
// ChangeDescription is attached to the version a content change produces;
// it is ignored when the content is unchanged.
type UpdateDocumentRequest struct {
	Title             *string `json:"title"`
	Content           *string `json:"content"`
	Category          *string `json:"category"`
	Status            *string `json:"status"`
	Company           *string `json:"company"`
	ChangeDescription *string `json:"changeDescription"`
}

// SearchDocumentsRequest carries search filters. Query is a case-insensitive
// substring match over title/content/author name; the rest are exact.
type SearchDocumentsRequest struct {
	Query    string
	Category string
	Status   string
	AuthorID string
}

// DocumentService defines the business logic for document operations.
// Every operation evaluates the access policy before touching storage, and
// state-changing operations leave an audit trail.
type DocumentService interface {
	// Create persists a new document together with its initial "1.0" version
	// as one transaction. Requires an editor or admin principal.
	Create(ctx context.Context, req *CreateDocumentRequest, principal *models.Principal) (*models.Document, error)

	// Get retrieves a document the principal may view. A document that does
	// not exist and a document the principal may not see are both reported
	// as not found.
	Get(ctx context.Context, id string, principal *models.Principal) (*models.Document, error)

	// List returns all documents visible to the principal, most recently
	// updated first.
	List(ctx context.Context, principal *models.Principal) ([]models.Document, error)

	// Search returns documents matching the filters, restricted to what the
	// principal may view.
	Search(ctx context.Context, req *SearchDocumentsRequest, principal *models.Principal) ([]models.Document, error)

	// Update applies a partial update to a document the principal can both
	// see and edit. A content change appends exactly one new version.
	Update(ctx context.Context, id string, req *UpdateDocumentRequest, principal *models.Principal) (*models.Document, error)

	// Delete removes a document and cascades to its versions and comments.
	// Admin only. Audit entries referencing the document are retained.
	Delete(ctx context.Context, id string, principal *models.Principal) error
}
