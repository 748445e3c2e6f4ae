package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vellum/internal/domain"
	"vellum/internal/domain/models"
)

func TestCategoryCreate_DeduplicatesCaseInsensitively(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	svc := NewCategoryService(catRepo, newFakeDocumentRepo(), testLogger())
	owner := editorPrincipal()

	first, err := svc.Create(context.Background(), "Contracts", owner)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), "  contracts ", owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, catRepo.categories, 1)

	// The same name under a different owner is a distinct entry.
	otherOwner := adminPrincipal()
	third, err := svc.Create(context.Background(), "contracts", otherOwner)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Len(t, catRepo.categories, 2)
}

func TestCategoryCreate_RejectsBlankName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeDocumentRepo(), testLogger())

	_, err := svc.Create(context.Background(), "   ", editorPrincipal())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategoryDelete_InUseGuard(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	docRepo := newFakeDocumentRepo()
	svc := NewCategoryService(catRepo, docRepo, testLogger())
	owner := editorPrincipal()

	category, err := svc.Create(context.Background(), "Reports", owner)
	require.NoError(t, err)

	docRepo.Create(context.Background(), &models.Document{
		ID: "d1", Title: "Annual Report", Category: "Reports", AuthorID: owner.ID,
	})

	err = svc.Delete(context.Background(), category.ID, owner)
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictCodeCategoryInUse, conflict.Code)
	assert.Equal(t, category.ID, conflict.ResourceID)

	// Once no document references the name, deletion proceeds.
	require.NoError(t, docRepo.Delete(context.Background(), "d1"))
	require.NoError(t, svc.Delete(context.Background(), category.ID, owner))
	assert.Empty(t, catRepo.categories)
}

func TestCategoryDelete_OwnerOnly(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeDocumentRepo(), testLogger())
	owner := editorPrincipal()

	category, err := svc.Create(context.Background(), "Private", owner)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), category.ID, adminPrincipal())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClientCreate_DeduplicatesCaseInsensitively(t *testing.T) {
	clientRepo := newFakeClientRepo()
	svc := NewClientService(clientRepo, newFakeDocumentRepo(), testLogger())
	owner := editorPrincipal()

	first, err := svc.Create(context.Background(), "Acme Corp", owner)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), "ACME CORP", owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, clientRepo.clients, 1)
}

func TestClientDelete_InUseGuard(t *testing.T) {
	clientRepo := newFakeClientRepo()
	docRepo := newFakeDocumentRepo()
	svc := NewClientService(clientRepo, docRepo, testLogger())
	owner := editorPrincipal()

	client, err := svc.Create(context.Background(), "Globex", owner)
	require.NoError(t, err)

	docRepo.Create(context.Background(), &models.Document{
		ID: "d1", Title: "Globex SOW", Company: "Globex", AuthorID: owner.ID,
	})

	err = svc.Delete(context.Background(), client.ID, owner)
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictCodeClientInUse, conflict.Code)
}

func TestTaxonomyList_ScopedToOwner(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	svc := NewCategoryService(catRepo, newFakeDocumentRepo(), testLogger())
	owner := editorPrincipal()
	other := adminPrincipal()

	_, err := svc.Create(context.Background(), "Mine", owner)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Theirs", other)
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}
