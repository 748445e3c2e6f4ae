package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
	"vellum/internal/domain/services"
	"vellum/internal/policy"
)

// documentService implements the DocumentService interface. It is the one
// place where the access policy, the version ledger and the audit log meet:
// every mutation is policy-checked first, versioned when content changes,
// and audited after the fact.
type documentService struct {
	docRepo     repositories.DocumentRepository
	versionRepo repositories.VersionRepository
	commentRepo repositories.CommentRepository
	txManager   repositories.TransactionManager
	pol         *policy.Policy
	audit       services.AuditRecorder
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	versionRepo repositories.VersionRepository,
	commentRepo repositories.CommentRepository,
	txManager repositories.TransactionManager,
	pol *policy.Policy,
	audit services.AuditRecorder,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:     docRepo,
		versionRepo: versionRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		pol:         pol,
		audit:       audit,
		logger:      logger,
	}
}

// Create persists a new document and its initial "1.0" version as a single
// transaction: a document is never visible without its first version.
// Author identity comes exclusively from the principal; nothing in the
// request can set it.
func (s *documentService) Create(ctx context.Context, req *services.CreateDocumentRequest, principal *models.Principal) (*models.Document, error) {
	if !s.pol.CanCreateOrEdit(principal) {
		return nil, fmt.Errorf("create document: %w", domain.ErrForbidden)
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	status := models.StatusDraft
	if req.Status != "" {
		parsed, err := models.ParseDocumentStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		status = parsed
	}

	now := time.Now()
	doc := &models.Document{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Status:     status,
		AuthorID:   principal.ID,
		AuthorName: principal.Name,
		Company:    req.Company,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}

		changeDescription := models.InitialChangeDescription
		initial := &models.Version{
			ID:                uuid.NewString(),
			DocumentID:        doc.ID,
			VersionNumber:     models.InitialVersionNumber,
			Content:           doc.Content,
			AuthorID:          principal.ID,
			AuthorName:        principal.Name,
			ChangeDescription: &changeDescription,
			CreatedAt:         now,
		}
		return s.versionRepo.Create(txCtx, initial)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActionCreated, principal, &doc.ID, fmt.Sprintf("created document %q", doc.Title))

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"status", doc.Status,
		"author_id", principal.ID,
	)

	return doc, nil
}

// Get retrieves a document the principal may view. "Does not exist" and
// "exists but not visible" are deliberately the same answer, so a private
// document does not leak its existence.
func (s *documentService) Get(ctx context.Context, id string, principal *models.Principal) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.pol.CanViewDocument(principal, doc) {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return doc, nil
}

// List returns all documents visible to the principal, most recently updated
// first. Visibility is applied post-hoc over the full set.
func (s *documentService) List(ctx context.Context, principal *models.Principal) ([]models.Document, error) {
	docs, err := s.docRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.pol.FilterVisible(principal, docs), nil
}

// Search returns matching documents restricted to the principal's
// visibility. All filters AND together.
func (s *documentService) Search(ctx context.Context, req *services.SearchDocumentsRequest, principal *models.Principal) ([]models.Document, error) {
	filter := &repositories.DocumentFilter{
		Query:    req.Query,
		Category: req.Category,
		AuthorID: req.AuthorID,
	}
	if req.Status != "" {
		status, err := models.ParseDocumentStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		filter.Status = status
	}

	docs, err := s.docRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.pol.FilterVisible(principal, docs), nil
}

// Update applies a partial update to a document the principal can both see
// and edit. The row is locked for the duration of the transaction so two
// concurrent content edits cannot derive the same version number; a content
// change appends exactly one version, a metadata-only edit appends none.
func (s *documentService) Update(ctx context.Context, id string, req *services.UpdateDocumentRequest, principal *models.Principal) (*models.Document, error) {
	if !s.pol.CanCreateOrEdit(principal) {
		return nil, fmt.Errorf("update document: %w", domain.ErrForbidden)
	}

	// An editor cannot blind-update a document it cannot see; visibility is
	// checked before any mutation is attempted.
	if _, err := s.Get(ctx, id, principal); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var status *models.DocumentStatus
	if req.Status != nil {
		parsed, err := models.ParseDocumentStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		status = &parsed
	}

	var updated *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		previousContent := doc.Content

		if req.Title != nil {
			doc.Title = *req.Title
		}
		if req.Content != nil {
			doc.Content = *req.Content
		}
		if req.Category != nil {
			doc.Category = *req.Category
		}
		if status != nil {
			doc.Status = *status
		}
		if req.Company != nil {
			doc.Company = *req.Company
		}
		doc.UpdatedAt = time.Now()

		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}

		if req.Content != nil && *req.Content != previousContent {
			if err := s.appendVersion(txCtx, doc, req.ChangeDescription, principal); err != nil {
				return err
			}
		}

		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActionUpdated, principal, &updated.ID, fmt.Sprintf("updated document %q", updated.Title))

	s.logger.Info("document updated",
		"id", updated.ID,
		"title", updated.Title,
		"author_id", principal.ID,
	)

	return updated, nil
}

// Delete removes a document and cascades to its versions and comments.
// The audit entry is written before the cascade runs: if deletion fails
// midway the attempt is still on record. Audit entries referencing the
// document are never removed.
func (s *documentService) Delete(ctx context.Context, id string, principal *models.Principal) error {
	if !s.pol.CanDelete(principal) {
		return fmt.Errorf("delete document: %w", domain.ErrForbidden)
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActionDeleted, principal, &doc.ID, fmt.Sprintf("deleted document %q", doc.Title))

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.versionRepo.DeleteByDocument(txCtx, doc.ID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByDocument(txCtx, doc.ID); err != nil {
			return err
		}
		return s.docRepo.Delete(txCtx, doc.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("document deleted",
		"id", doc.ID,
		"title", doc.Title,
		"deleted_by", principal.ID,
	)

	return nil
}

// appendVersion derives the next version number from the newest ledger entry
// and appends a snapshot of the document's new content. A missing or
// malformed ledger degrades to 1.0 semantics instead of failing the request.
func (s *documentService) appendVersion(ctx context.Context, doc *models.Document, changeDescription *string, principal *models.Principal) error {
	number := models.InitialVersionNumber

	latest, err := s.versionRepo.Latest(ctx, doc.ID)
	switch {
	case err == nil:
		number = models.NextVersionNumber(latest.VersionNumber)
	case errors.Is(err, domain.ErrNotFound):
		// Ledger should never be empty here, but a missing initial version
		// must not fail the update.
		s.logger.Warn("version ledger empty on content change", "document_id", doc.ID)
	default:
		return err
	}

	version := &models.Version{
		ID:                uuid.NewString(),
		DocumentID:        doc.ID,
		VersionNumber:     number,
		Content:           doc.Content,
		AuthorID:          principal.ID,
		AuthorName:        principal.Name,
		ChangeDescription: changeDescription,
		CreatedAt:         time.Now(),
	}

	return s.versionRepo.Create(ctx, version)
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Category, validation.Length(0, 120)),
		validation.Field(&req.Company, validation.Length(0, 120)),
	)
}

// validateUpdateRequest validates a partial document update
func (s *documentService) validateUpdateRequest(req *services.UpdateDocumentRequest) error {
	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required, validation.Length(1, 300)); err != nil {
			return fmt.Errorf("title %v", err)
		}
	}
	if req.Content != nil {
		if err := validation.Validate(*req.Content, validation.Required); err != nil {
			return fmt.Errorf("content %v", err)
		}
	}
	if req.Category != nil {
		if err := validation.Validate(*req.Category, validation.Length(0, 120)); err != nil {
			return fmt.Errorf("category %v", err)
		}
	}
	if req.Company != nil {
		if err := validation.Validate(*req.Company, validation.Length(0, 120)); err != nil {
			return fmt.Errorf("company %v", err)
		}
	}
	return nil
}
