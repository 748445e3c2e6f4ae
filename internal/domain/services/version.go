package services

import (
	"context"

	"vellum/internal/domain/models"
)

// VersionService exposes read access to the version ledger. Writes happen
// only through DocumentService as part of document create/update.
type VersionService interface {
	// ListForDocument lists a document's versions newest first, subject to
	// the principal's visibility of the document.
	ListForDocument(ctx context.Context, documentID string, principal *models.Principal) ([]models.Version, error)

	// Get retrieves a single version, subject to the principal's visibility
	// of the owning document.
	Get(ctx context.Context, id string, principal *models.Principal) (*models.Version, error)
}
