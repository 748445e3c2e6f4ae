package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
)

func newMockRepoConfig(t *testing.T) (pgxmock.PgxPoolIface, *RepositoryConfig) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, &RepositoryConfig{
		DB:     mock,
		Tables: NewTableNames("test_"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func expectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func sampleDocument() *models.Document {
	now := time.Now()
	return &models.Document{
		ID:         "doc-1",
		Title:      "Launch Plan",
		Content:    "# Launch",
		Category:   "planning",
		Status:     models.StatusDraft,
		AuthorID:   "user-1",
		AuthorName: "Ada",
		Company:    "Acme",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func documentRows(docs ...*models.Document) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "title", "content", "category", "status",
		"author_id", "author_name", "company", "created_at", "updated_at",
	})
	for _, d := range docs {
		rows.AddRow(d.ID, d.Title, d.Content, d.Category, d.Status,
			d.AuthorID, d.AuthorName, d.Company, d.CreatedAt, d.UpdatedAt)
	}
	return rows
}

func TestDocumentRepository_Create(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)
	doc := sampleDocument()

	mock.ExpectExec(`INSERT INTO test_documents`).
		WithArgs(doc.ID, doc.Title, doc.Content, doc.Category, doc.Status,
			doc.AuthorID, doc.AuthorName, doc.Company, doc.CreatedAt, doc.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Errorf("Create() error = %v", err)
	}
	expectationsWereMet(t, mock)
}

func TestDocumentRepository_GetByID(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)
	doc := sampleDocument()

	mock.ExpectQuery(`SELECT .+ FROM test_documents WHERE id = \$1`).
		WithArgs(doc.ID).
		WillReturnRows(documentRows(doc))

	got, err := repo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ID != doc.ID || got.Title != doc.Title || got.Status != doc.Status {
		t.Errorf("GetByID() = %+v, want %+v", got, doc)
	}
	expectationsWereMet(t, mock)
}

func TestDocumentRepository_GetByID_NotFound(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)

	mock.ExpectQuery(`SELECT .+ FROM test_documents WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(documentRows())

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	expectationsWereMet(t, mock)
}

func TestDocumentRepository_GetByIDForUpdate_LocksRow(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)
	doc := sampleDocument()

	mock.ExpectQuery(`SELECT .+ FROM test_documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(doc.ID).
		WillReturnRows(documentRows(doc))

	if _, err := repo.GetByIDForUpdate(context.Background(), doc.ID); err != nil {
		t.Errorf("GetByIDForUpdate() error = %v", err)
	}
	expectationsWereMet(t, mock)
}

func TestDocumentRepository_Search(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)
	doc := sampleDocument()

	tests := []struct {
		name     string
		filter   *repositories.DocumentFilter
		pattern  string
		args     []interface{}
		wantRows *pgxmock.Rows
	}{
		{
			name:     "free text query",
			filter:   &repositories.DocumentFilter{Query: "launch"},
			pattern:  `SELECT .+ FROM test_documents WHERE \(title ILIKE \$1 OR content ILIKE \$2 OR author_name ILIKE \$3\)`,
			args:     []interface{}{"%launch%", "%launch%", "%launch%"},
			wantRows: documentRows(doc),
		},
		{
			name:     "exact filters",
			filter:   &repositories.DocumentFilter{Category: "planning", Status: models.StatusDraft},
			pattern:  `SELECT .+ FROM test_documents WHERE category = \$1 AND status = \$2`,
			args:     []interface{}{"planning", "draft"},
			wantRows: documentRows(doc),
		},
		{
			name:     "author filter",
			filter:   &repositories.DocumentFilter{AuthorID: "user-1"},
			pattern:  `SELECT .+ FROM test_documents WHERE author_id = \$1`,
			args:     []interface{}{"user-1"},
			wantRows: documentRows(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(tt.pattern).
				WithArgs(tt.args...).
				WillReturnRows(tt.wantRows)

			if _, err := repo.Search(context.Background(), tt.filter); err != nil {
				t.Errorf("Search() error = %v", err)
			}
			expectationsWereMet(t, mock)
		})
	}
}

func TestDocumentRepository_Update_NotFound(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)
	doc := sampleDocument()

	mock.ExpectExec(`UPDATE test_documents`).
		WithArgs(doc.Title, doc.Content, doc.Category, doc.Status, doc.Company, doc.UpdatedAt, doc.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), doc)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	expectationsWereMet(t, mock)
}

func TestDocumentRepository_Delete(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)

	mock.ExpectExec(`DELETE FROM test_documents WHERE id = \$1`).
		WithArgs("doc-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.Delete(context.Background(), "doc-1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	expectationsWereMet(t, mock)
}

func TestDocumentRepository_CountByCategory(t *testing.T) {
	mock, config := newMockRepoConfig(t)
	repo := NewDocumentRepository(config)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM test_documents WHERE category = \$1`).
		WithArgs("planning").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByCategory(context.Background(), "planning")
	if err != nil {
		t.Fatalf("CountByCategory() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountByCategory() = %d, want 3", count)
	}
	expectationsWereMet(t, mock)
}
