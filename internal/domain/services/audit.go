package services

import (
	"context"

	"vellum/internal/domain/models"
)

// AuditRecorder is the write side of the audit log, consumed by the other
// services. Recording is fire-and-continue: a failed audit write is logged
// operationally but never fails the operation it describes.
type AuditRecorder interface {
	Record(ctx context.Context, action models.AuditAction, principal *models.Principal, documentID *string, details string)
}

// AuditService defines the audit log surface. It embeds the recorder and
// adds the admin-only read side.
type AuditService interface {
	AuditRecorder

	// List returns audit entries newest first, optionally scoped to one
	// document. Admin only; entries are not redacted further.
	List(ctx context.Context, principal *models.Principal, documentID *string) ([]models.AuditEntry, error)
}
