package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
	"vellum/internal/domain/services"
)

// The category and client registries share all their behavior; only the
// repository, the conflict code and the referencing document field differ.

func validateTaxonomyName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, 120),
	)
}

// categoryService implements the CategoryService interface
type categoryService struct {
	categoryRepo repositories.CategoryRepository
	docRepo      repositories.DocumentRepository
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepository, docRepo repositories.DocumentRepository, logger *slog.Logger) services.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		docRepo:      docRepo,
		logger:       logger,
	}
}

// List returns the principal's categories ordered by name
func (s *categoryService) List(ctx context.Context, principal *models.Principal) ([]models.Category, error) {
	return s.categoryRepo.ListByOwner(ctx, principal.ID)
}

// Create adds a category for the principal. A name that already exists for
// this owner (case-insensitive) returns the existing entry instead of a
// duplicate.
func (s *categoryService) Create(ctx context.Context, name string, principal *models.Principal) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validateTaxonomyName(name); err != nil {
		return nil, fmt.Errorf("%w: name %v", domain.ErrValidation, err)
	}

	existing, err := s.categoryRepo.GetByName(ctx, principal.ID, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	category := &models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    principal.ID,
		CreatedAt: time.Now(),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", "id", category.ID, "name", name, "user_id", principal.ID)
	return category, nil
}

// Delete removes one of the principal's categories, refusing while any
// document still references the category name.
func (s *categoryService) Delete(ctx context.Context, id string, principal *models.Principal) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category.UserID != principal.ID {
		return fmt.Errorf("category %s: %w", id, domain.ErrForbidden)
	}

	count, err := s.docRepo.CountByCategory(ctx, category.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("category %q is referenced by %d document(s)", category.Name, count),
			Code:         domain.ConflictCodeCategoryInUse,
			ResourceType: "category",
			ResourceID:   category.ID,
		}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("category deleted", "id", id, "name", category.Name, "user_id", principal.ID)
	return nil
}

// clientService implements the ClientService interface
type clientService struct {
	clientRepo repositories.ClientRepository
	docRepo    repositories.DocumentRepository
	logger     *slog.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo repositories.ClientRepository, docRepo repositories.DocumentRepository, logger *slog.Logger) services.ClientService {
	return &clientService{
		clientRepo: clientRepo,
		docRepo:    docRepo,
		logger:     logger,
	}
}

// List returns the principal's clients ordered by name
func (s *clientService) List(ctx context.Context, principal *models.Principal) ([]models.Client, error) {
	return s.clientRepo.ListByOwner(ctx, principal.ID)
}

// Create adds a client for the principal, deduplicating case-insensitively.
func (s *clientService) Create(ctx context.Context, name string, principal *models.Principal) (*models.Client, error) {
	name = strings.TrimSpace(name)
	if err := validateTaxonomyName(name); err != nil {
		return nil, fmt.Errorf("%w: name %v", domain.ErrValidation, err)
	}

	existing, err := s.clientRepo.GetByName(ctx, principal.ID, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	client := &models.Client{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    principal.ID,
		CreatedAt: time.Now(),
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client created", "id", client.ID, "name", name, "user_id", principal.ID)
	return client, nil
}

// Delete removes one of the principal's clients, refusing while any document
// still references the client name through its company field.
func (s *clientService) Delete(ctx context.Context, id string, principal *models.Principal) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client.UserID != principal.ID {
		return fmt.Errorf("client %s: %w", id, domain.ErrForbidden)
	}

	count, err := s.docRepo.CountByCompany(ctx, client.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("client %q is referenced by %d document(s)", client.Name, count),
			Code:         domain.ConflictCodeClientInUse,
			ResourceType: "client",
			ResourceID:   client.ID,
		}
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("client deleted", "id", id, "name", client.Name, "user_id", principal.ID)
	return nil
}
