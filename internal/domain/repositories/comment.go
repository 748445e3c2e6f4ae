package repositories

import (
	"context"

	"vellum/internal/domain/models"
)

// CommentRepository defines data access for document comments.
// Only the resolved flag is mutable after creation.
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, c *models.Comment) error

	// GetByID retrieves a comment by ID
	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByDocument lists comments for a document, newest first
	ListByDocument(ctx context.Context, documentID string) ([]models.Comment, error)

	// SetResolved flips the resolved flag on a comment
	SetResolved(ctx context.Context, id string, resolved bool) error

	// DeleteByDocument removes all comments of a document (cascade only)
	DeleteByDocument(ctx context.Context, documentID string) error
}
