package service

import (
	"context"
	"fmt"
	"log/slog"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
	"vellum/internal/domain/services"
	"vellum/internal/policy"
)

// versionService implements the VersionService interface. It is read-only;
// versions are written by documentService inside the create/update
// transactions.
type versionService struct {
	versionRepo repositories.VersionRepository
	docRepo     repositories.DocumentRepository
	pol         *policy.Policy
	logger      *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(versionRepo repositories.VersionRepository, docRepo repositories.DocumentRepository, pol *policy.Policy, logger *slog.Logger) services.VersionService {
	return &versionService{
		versionRepo: versionRepo,
		docRepo:     docRepo,
		pol:         pol,
		logger:      logger,
	}
}

// ListForDocument lists a document's versions newest first. A document the
// principal cannot see reports not found, same as the document surface.
func (s *versionService) ListForDocument(ctx context.Context, documentID string, principal *models.Principal) ([]models.Version, error) {
	if err := s.requireVisibleDocument(ctx, documentID, principal); err != nil {
		return nil, err
	}

	return s.versionRepo.ListByDocument(ctx, documentID)
}

// Get retrieves one version. Visibility follows the owning document.
func (s *versionService) Get(ctx context.Context, id string, principal *models.Principal) (*models.Version, error) {
	version, err := s.versionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireVisibleDocument(ctx, version.DocumentID, principal); err != nil {
		return nil, err
	}

	return version, nil
}

func (s *versionService) requireVisibleDocument(ctx context.Context, documentID string, principal *models.Principal) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if !s.pol.CanViewDocument(principal, doc) {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	return nil
}
