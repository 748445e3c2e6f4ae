package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"vellum/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations.
// DB is the DBTX interface rather than a concrete pool so tests can inject a
// mock connection.
type RepositoryConfig struct {
	DB     repositories.DBTX
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Documents  string
	Versions   string
	Comments   string
	AuditLog   string
	Categories string
	Clients    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents:  prefix + "documents",
		Versions:   prefix + "document_versions",
		Comments:   prefix + "comments",
		AuditLog:   prefix + "audit_log",
		Categories: prefix + "custom_categories",
		Clients:    prefix + "custom_clients",
	}
}

// CreateConnectionPool creates a new pgx connection pool and verifies it with
// a ping before handing it out.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context it wins, so repositories
// automatically participate in transactions opened by the service layer.
func GetExecutor(ctx context.Context, db repositories.DBTX) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return db
}
