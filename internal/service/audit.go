package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
	"vellum/internal/domain/services"
	"vellum/internal/policy"
)

// auditService implements the AuditService interface
type auditService struct {
	auditRepo repositories.AuditRepository
	pol       *policy.Policy
	logger    *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository, pol *policy.Policy, logger *slog.Logger) services.AuditService {
	return &auditService{
		auditRepo: auditRepo,
		pol:       pol,
		logger:    logger,
	}
}

// Record appends an audit entry. Recording is fire-and-continue: a failed
// write is surfaced to operational logging but never fails the operation it
// describes, so callers ignore any outcome by design.
func (s *auditService) Record(ctx context.Context, action models.AuditAction, principal *models.Principal, documentID *string, details string) {
	if principal == nil {
		return
	}

	entry := &models.AuditEntry{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		UserID:     principal.ID,
		UserName:   principal.Name,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now(),
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			"action", action,
			"user_id", principal.ID,
			"error", err,
		)
	}
}

// List returns audit entries newest first, optionally scoped to a document.
// Admin only; no further redaction is applied.
func (s *auditService) List(ctx context.Context, principal *models.Principal, documentID *string) ([]models.AuditEntry, error) {
	if !s.pol.CanViewAudit(principal) {
		return nil, fmt.Errorf("list audit entries: %w", domain.ErrForbidden)
	}

	return s.auditRepo.List(ctx, documentID)
}
