package services

import (
	"context"

	"vellum/internal/domain/models"
)

// CategoryService manages per-owner custom categories.
type CategoryService interface {
	// List returns the principal's categories ordered by name.
	List(ctx context.Context, principal *models.Principal) ([]models.Category, error)

	// Create adds a category for the principal. Creation dedupes
	// case-insensitively: an existing entry with the same name is returned
	// instead of a duplicate.
	Create(ctx context.Context, name string, principal *models.Principal) (*models.Category, error)

	// Delete removes one of the principal's categories. Fails with a
	// CATEGORY_IN_USE conflict while any document references the category
	// by name.
	Delete(ctx context.Context, id string, principal *models.Principal) error
}

// ClientService manages per-owner custom clients. Semantics mirror
// CategoryService, with CLIENT_IN_USE as the conflict code.
type ClientService interface {
	List(ctx context.Context, principal *models.Principal) ([]models.Client, error)
	Create(ctx context.Context, name string, principal *models.Principal) (*models.Client, error)
	Delete(ctx context.Context, id string, principal *models.Principal) error
}
