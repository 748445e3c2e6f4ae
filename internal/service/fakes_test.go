package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
	"vellum/internal/domain/repositories"
	"vellum/internal/policy"
	"vellum/internal/roles"
)

// In-memory fakes for the repository interfaces. They implement just enough
// semantics for the service tests: keyed storage, not-found sentinels and the
// orderings the services rely on.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	registry, err := roles.NewRegistry()
	if err != nil {
		t.Fatalf("roles registry: %v", err)
	}
	return policy.New(registry)
}

func readerPrincipal() *models.Principal {
	return &models.Principal{ID: "user-reader", Name: "Rhea Reader", Role: models.RoleReader}
}

func editorPrincipal() *models.Principal {
	return &models.Principal{ID: "user-editor", Name: "Enzo Editor", Role: models.RoleEditor}
}

func adminPrincipal() *models.Principal {
	return &models.Principal{ID: "user-admin", Name: "Ada Admin", Role: models.RoleAdmin}
}

// fakeTxManager runs the function directly; the fakes have no transactional
// state to manage.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

type fakeDocumentRepo struct {
	docs map[string]*models.Document

	forUpdateCalls int
	updateErr      error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.Document, error) {
	r.forUpdateCalls++
	return r.GetByID(ctx, id)
}

func (r *fakeDocumentRepo) List(ctx context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, *doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeDocumentRepo) Search(ctx context.Context, filter *repositories.DocumentFilter) ([]models.Document, error) {
	all, _ := r.List(ctx)
	out := make([]models.Document, 0, len(all))
	for _, doc := range all {
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(doc.Title), q) &&
				!strings.Contains(strings.ToLower(doc.Content), q) &&
				!strings.Contains(strings.ToLower(doc.AuthorName), q) {
				continue
			}
		}
		if filter.Category != "" && doc.Category != filter.Category {
			continue
		}
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && doc.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *models.Document) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.docs[doc.ID]; !ok {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) CountByCategory(ctx context.Context, category string) (int, error) {
	count := 0
	for _, doc := range r.docs {
		if doc.Category == category {
			count++
		}
	}
	return count, nil
}

func (r *fakeDocumentRepo) CountByCompany(ctx context.Context, company string) (int, error) {
	count := 0
	for _, doc := range r.docs {
		if doc.Company == company {
			count++
		}
	}
	return count, nil
}

type fakeVersionRepo struct {
	versions  []*models.Version
	createErr error
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{}
}

func (r *fakeVersionRepo) Create(ctx context.Context, v *models.Version) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *v
	r.versions = append(r.versions, &copied)
	return nil
}

func (r *fakeVersionRepo) GetByID(ctx context.Context, id string) (*models.Version, error) {
	for _, v := range r.versions {
		if v.ID == id {
			copied := *v
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
}

func (r *fakeVersionRepo) Latest(ctx context.Context, documentID string) (*models.Version, error) {
	// Insertion order stands in for created_at ordering.
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].DocumentID == documentID {
			copied := *r.versions[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("document %s versions: %w", documentID, domain.ErrNotFound)
}

func (r *fakeVersionRepo) ListByDocument(ctx context.Context, documentID string) ([]models.Version, error) {
	var out []models.Version
	for i := len(r.versions) - 1; i >= 0; i-- {
		if r.versions[i].DocumentID == documentID {
			out = append(out, *r.versions[i])
		}
	}
	return out, nil
}

func (r *fakeVersionRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	kept := r.versions[:0]
	for _, v := range r.versions {
		if v.DocumentID != documentID {
			kept = append(kept, v)
		}
	}
	r.versions = kept
	return nil
}

func (r *fakeVersionRepo) byDocument(documentID string) []*models.Version {
	var out []*models.Version
	for _, v := range r.versions {
		if v.DocumentID == documentID {
			out = append(out, v)
		}
	}
	return out
}

type fakeCommentRepo struct {
	comments map[string]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, c *models.Comment) error {
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommentRepo) ListByDocument(ctx context.Context, documentID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.DocumentID == documentID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) SetResolved(ctx context.Context, id string, resolved bool) error {
	c, ok := r.comments[id]
	if !ok {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	c.Resolved = resolved
	return nil
}

func (r *fakeCommentRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	for id, c := range r.comments {
		if c.DocumentID == documentID {
			delete(r.comments, id)
		}
	}
	return nil
}

type fakeAuditRepo struct {
	entries   []*models.AuditEntry
	createErr error
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) Create(ctx context.Context, e *models.AuditEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *e
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, documentID *string) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if documentID != nil && (e.DocumentID == nil || *e.DocumentID != *documentID) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	copied := *c
	r.categories[c.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, userID, name string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
}

func (r *fakeCategoryRepo) ListByOwner(ctx context.Context, userID string) ([]models.Category, error) {
	var out []models.Category
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	delete(r.categories, id)
	return nil
}

type fakeClientRepo struct {
	clients map[string]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*models.Client)}
}

func (r *fakeClientRepo) Create(ctx context.Context, c *models.Client) error {
	copied := *c
	r.clients[c.ID] = &copied
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) GetByName(ctx context.Context, userID, name string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("client %q: %w", name, domain.ErrNotFound)
}

func (r *fakeClientRepo) ListByOwner(ctx context.Context, userID string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	delete(r.clients, id)
	return nil
}

// recordingAudit captures Record calls without any storage behind it.
type recordingAudit struct {
	actions []models.AuditAction
	docIDs  []*string
}

func (a *recordingAudit) Record(ctx context.Context, action models.AuditAction, principal *models.Principal, documentID *string, details string) {
	a.actions = append(a.actions, action)
	a.docIDs = append(a.docIDs, documentID)
}
