package repositories

import (
	"context"

	"vellum/internal/domain/models"
)

// CategoryRepository defines data access for per-owner custom categories.
type CategoryRepository interface {
	// Create inserts a new category
	Create(ctx context.Context, c *models.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*models.Category, error)

	// GetByName retrieves an owner's category by case-insensitive name match
	GetByName(ctx context.Context, userID, name string) (*models.Category, error)

	// ListByOwner lists an owner's categories ordered by name
	ListByOwner(ctx context.Context, userID string) ([]models.Category, error)

	// Delete removes a category
	Delete(ctx context.Context, id string) error
}

// ClientRepository defines data access for per-owner custom clients.
type ClientRepository interface {
	// Create inserts a new client
	Create(ctx context.Context, c *models.Client) error

	// GetByID retrieves a client by ID
	GetByID(ctx context.Context, id string) (*models.Client, error)

	// GetByName retrieves an owner's client by case-insensitive name match
	GetByName(ctx context.Context, userID, name string) (*models.Client, error)

	// ListByOwner lists an owner's clients ordered by name
	ListByOwner(ctx context.Context, userID string) ([]models.Client, error)

	// Delete removes a client
	Delete(ctx context.Context, id string) error
}
