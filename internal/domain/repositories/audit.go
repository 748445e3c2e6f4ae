package repositories

import (
	"context"

	"vellum/internal/domain/models"
)

// AuditRepository defines data access for the audit log. The interface is
// append-and-read only: no update or delete operation exists, and none may be
// added. Audit entries survive the deletion of the documents they reference.
type AuditRepository interface {
	// Create appends an audit entry
	Create(ctx context.Context, e *models.AuditEntry) error

	// List returns audit entries ordered by created_at descending.
	// A nil documentID returns all entries; otherwise only entries for that
	// document.
	List(ctx context.Context, documentID *string) ([]models.AuditEntry, error)
}
