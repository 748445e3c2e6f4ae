package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
)

// The category and client registries are structurally identical per-owner
// name tables, so both repositories share one generic implementation
// parameterized by table name.

type taxonomyRepository struct {
	db     repositories.DBTX
	table  string
	kind   string // for error messages: "category" or "client"
	logger *slog.Logger
}

const taxonomyColumns = "id, name, user_id, created_at"

func (r *taxonomyRepository) create(ctx context.Context, id, name, userID string, createdAt interface{}) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)
	`, r.table, taxonomyColumns)

	if _, err := GetExecutor(ctx, r.db).Exec(ctx, query, id, name, userID, createdAt); err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("%s %q: %w", r.kind, name, domain.ErrConflict)
		}
		return fmt.Errorf("create %s: %w", r.kind, err)
	}
	return nil
}

func (r *taxonomyRepository) getByID(ctx context.Context, id string, dest ...interface{}) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, taxonomyColumns, r.table)

	if err := GetExecutor(ctx, r.db).QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("%s %s: %w", r.kind, id, domain.ErrNotFound)
		}
		return fmt.Errorf("get %s: %w", r.kind, err)
	}
	return nil
}

func (r *taxonomyRepository) getByName(ctx context.Context, userID, name string, dest ...interface{}) error {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)
		LIMIT 1
	`, taxonomyColumns, r.table)

	if err := GetExecutor(ctx, r.db).QueryRow(ctx, query, userID, name).Scan(dest...); err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("%s %q: %w", r.kind, name, domain.ErrNotFound)
		}
		return fmt.Errorf("get %s by name: %w", r.kind, err)
	}
	return nil
}

func (r *taxonomyRepository) listByOwner(ctx context.Context, userID string) (pgx.Rows, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY name ASC
	`, taxonomyColumns, r.table)

	rows, err := GetExecutor(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", r.kind, err)
	}
	return rows, nil
}

func (r *taxonomyRepository) delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := GetExecutor(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", r.kind, id, domain.ErrNotFound)
	}
	return nil
}

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	taxonomyRepository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) repositories.CategoryRepository {
	return &PostgresCategoryRepository{taxonomyRepository{
		db:     config.DB,
		table:  config.Tables.Categories,
		kind:   "category",
		logger: config.Logger,
	}}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return r.create(ctx, c.ID, c.Name, c.UserID, c.CreatedAt)
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := r.getByID(ctx, id, &c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) GetByName(ctx context.Context, userID, name string) (*models.Category, error) {
	var c models.Category
	if err := r.getByName(ctx, userID, name, &c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) ListByOwner(ctx context.Context, userID string) ([]models.Category, error) {
	rows, err := r.listByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

// PostgresClientRepository implements the ClientRepository interface
type PostgresClientRepository struct {
	taxonomyRepository
}

// NewClientRepository creates a new client repository
func NewClientRepository(config *RepositoryConfig) repositories.ClientRepository {
	return &PostgresClientRepository{taxonomyRepository{
		db:     config.DB,
		table:  config.Tables.Clients,
		kind:   "client",
		logger: config.Logger,
	}}
}

func (r *PostgresClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.create(ctx, c.ID, c.Name, c.UserID, c.CreatedAt)
}

func (r *PostgresClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if err := r.getByID(ctx, id, &c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresClientRepository) GetByName(ctx context.Context, userID, name string) (*models.Client, error) {
	var c models.Client
	if err := r.getByName(ctx, userID, name, &c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresClientRepository) ListByOwner(ctx context.Context, userID string) ([]models.Client, error) {
	rows, err := r.listByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

func (r *PostgresClientRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
