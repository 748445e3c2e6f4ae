package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"vellum/internal/auth"
	"vellum/internal/config"
	"vellum/internal/handler"
	"vellum/internal/middleware"
	"vellum/internal/policy"
	"vellum/internal/repository/postgres"
	"vellum/internal/roles"
	"vellum/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verifier backed by the identity provider's JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		DB:     pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	versionRepo := postgres.NewVersionRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	auditRepo := postgres.NewAuditRepository(repoConfig)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	clientRepo := postgres.NewClientRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Initialize role capability registry and access policy
	registry, err := roles.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize roles registry: %v", err)
	}
	pol := policy.New(registry)
	logger.Info("roles registry initialized")

	// Create services
	auditService := service.NewAuditService(auditRepo, pol, logger)
	docService := service.NewDocumentService(docRepo, versionRepo, commentRepo, txManager, pol, auditService, logger)
	versionService := service.NewVersionService(versionRepo, docRepo, pol, logger)
	commentService := service.NewCommentService(commentRepo, docRepo, pol, auditService, logger)
	categoryService := service.NewCategoryService(categoryRepo, docRepo, logger)
	clientService := service.NewClientService(clientRepo, docRepo, logger)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	versionHandler := handler.NewVersionHandler(versionService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)
	taxonomyHandler := handler.NewTaxonomyHandler(categoryService, clientService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/search", docHandler.SearchDocuments) // Must come before {id} route
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)

	// Version history routes
	mux.HandleFunc("GET /api/documents/{id}/versions", versionHandler.ListVersions)
	mux.HandleFunc("GET /api/versions/{id}", versionHandler.GetVersion)

	// Comment routes
	mux.HandleFunc("GET /api/documents/{id}/comments", commentHandler.ListComments)
	mux.HandleFunc("POST /api/documents/{id}/comments", commentHandler.CreateComment)
	mux.HandleFunc("PATCH /api/comments/{id}", commentHandler.ResolveComment)

	// Audit routes
	mux.HandleFunc("GET /api/audit", auditHandler.ListAuditEntries)

	// Taxonomy routes
	mux.HandleFunc("GET /api/categories", taxonomyHandler.ListCategories)
	mux.HandleFunc("POST /api/categories", taxonomyHandler.CreateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", taxonomyHandler.DeleteCategory)
	mux.HandleFunc("GET /api/clients", taxonomyHandler.ListClients)
	mux.HandleFunc("POST /api/clients", taxonomyHandler.CreateClient)
	mux.HandleFunc("DELETE /api/clients/{id}", taxonomyHandler.DeleteClient)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(verifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
