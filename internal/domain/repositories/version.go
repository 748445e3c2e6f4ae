package repositories

import (
	"context"

	"vellum/internal/domain/models"
)

// VersionRepository defines data access for the append-only version ledger.
// There is deliberately no update operation: a version row is immutable once
// written, and rows are only removed by DeleteByDocument during the cascade
// of a document deletion.
type VersionRepository interface {
	// Create appends a new version snapshot
	Create(ctx context.Context, v *models.Version) error

	// GetByID retrieves a version by ID
	GetByID(ctx context.Context, id string) (*models.Version, error)

	// Latest retrieves the most recent version for a document, by created_at
	// descending. Returns domain.ErrNotFound when the ledger is empty.
	Latest(ctx context.Context, documentID string) (*models.Version, error)

	// ListByDocument lists versions for a document, newest first
	ListByDocument(ctx context.Context, documentID string) ([]models.Version, error)

	// DeleteByDocument removes all versions of a document (cascade only)
	DeleteByDocument(ctx context.Context, documentID string) error
}
