package services

import (
	"context"

	"vellum/internal/domain/models"
)

// CreateCommentRequest carries the client-supplied fields of a new comment.
type CreateCommentRequest struct {
	Content     string  `json:"content"`
	SectionID   *string `json:"sectionId"`
	SectionText *string `json:"sectionText"`
}

// CommentService defines the business logic for document comments.
type CommentService interface {
	// ListForDocument lists a document's comments newest first, subject to
	// the principal's visibility of the document.
	ListForDocument(ctx context.Context, documentID string, principal *models.Principal) ([]models.Comment, error)

	// Create adds a comment to a document the principal can view, stamping
	// author identity from the principal.
	Create(ctx context.Context, documentID string, req *CreateCommentRequest, principal *models.Principal) (*models.Comment, error)

	// Resolve flips a comment's resolved flag. The principal must be able to
	// view the owning document.
	Resolve(ctx context.Context, id string, resolved bool, principal *models.Principal) (*models.Comment, error)
}
