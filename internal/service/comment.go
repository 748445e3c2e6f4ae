package service

import (
	"context"
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

// commentService implements the CommentService interface
type commentService struct {
	commentRepo repositories.CommentRepository
	docRepo     repositories.DocumentRepository
	pol         *policy.Policy
	audit       services.AuditRecorder
	logger      *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	docRepo repositories.DocumentRepository,
	pol *policy.Policy,
	audit services.AuditRecorder,
	logger *slog.Logger,
) services.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		docRepo:     docRepo,
		pol:         pol,
		audit:       audit,
		logger:      logger,
	}
}

// ListForDocument lists a document's comments newest first. Comment
// visibility follows the owning document; an invisible document reports not
// found rather than forbidden.
func (s *commentService) ListForDocument(ctx context.Context, documentID string, principal *models.Principal) ([]models.Comment, error) {
	if err := s.requireVisibleDocument(ctx, documentID, principal); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByDocument(ctx, documentID)
}

// Create adds a comment to a document the principal can view. Any role may
// comment; this is the one write a reader is allowed. Author identity is
// stamped from the principal.
func (s *commentService) Create(ctx context.Context, documentID string, req *services.CreateCommentRequest, principal *models.Principal) (*models.Comment, error) {
	if err := s.requireVisibleDocument(ctx, documentID, principal); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	comment := &models.Comment{
		ID:          uuid.NewString(),
		DocumentID:  documentID,
		AuthorID:    principal.ID,
		AuthorName:  principal.Name,
		Content:     req.Content,
		SectionID:   req.SectionID,
		SectionText: req.SectionText,
		Resolved:    false,
		CreatedAt:   time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActionCommented, principal, &documentID, "added a comment")

	s.logger.Info("comment created",
		"id", comment.ID,
		"document_id", documentID,
		"author_id", principal.ID,
	)

	return comment, nil
}

// Resolve flips a comment's resolved flag and returns the updated comment.
func (s *commentService) Resolve(ctx context.Context, id string, resolved bool, principal *models.Principal) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireVisibleDocument(ctx, comment.DocumentID, principal); err != nil {
		return nil, err
	}

	if comment.Resolved == resolved {
		return comment, nil
	}

	if err := s.commentRepo.SetResolved(ctx, id, resolved); err != nil {
		return nil, err
	}
	comment.Resolved = resolved

	s.logger.Info("comment resolved flag changed",
		"id", comment.ID,
		"document_id", comment.DocumentID,
		"resolved", resolved,
		"by", principal.ID,
	)

	return comment, nil
}

func (s *commentService) requireVisibleDocument(ctx context.Context, documentID string, principal *models.Principal) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if !s.pol.CanViewDocument(principal, doc) {
		return fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	return nil
}

// validateCreateRequest validates a comment creation request
func (s *commentService) validateCreateRequest(req *services.CreateCommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Required, validation.Length(1, 5000)),
	)
}
