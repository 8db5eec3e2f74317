package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/pkg/models"
)

func setupCategoryService(t *testing.T) (CategoryService, *fakeCategoryRepo, *fakePostRepo) {
	t.Helper()
	catRepo := newFakeCategoryRepo()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo(catRepo, commentRepo)
	return NewCategoryService(catRepo, postRepo, 10), catRepo, postRepo
}

func TestCategoryService_CreateDerivesSlug(t *testing.T) {
	svc, _, _ := setupCategoryService(t)

	cat, err := svc.Create(context.Background(), models.CreateCategoryRequest{Title: "Game Dev & Graphics"})
	require.NoError(t, err)
	assert.Equal(t, "game-dev-graphics", cat.Slug)
	assert.NotEmpty(t, cat.ID)
}

func TestCategoryService_CreateValidation(t *testing.T) {
	svc, _, _ := setupCategoryService(t)

	_, err := svc.Create(context.Background(), models.CreateCategoryRequest{Title: "   "})
	assert.Error(t, err)
}

func TestCategoryService_DeleteEmptyCategory(t *testing.T) {
	svc, catRepo, _ := setupCategoryService(t)

	cat, err := svc.Create(context.Background(), models.CreateCategoryRequest{Title: "go"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), cat.ID))
	_, err = catRepo.GetByID(context.Background(), cat.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestCategoryService_DeleteRefusedWhenNotEmpty(t *testing.T) {
	svc, catRepo, postRepo := setupCategoryService(t)

	cat, err := svc.Create(context.Background(), models.CreateCategoryRequest{Title: "go"})
	require.NoError(t, err)
	require.NoError(t, postRepo.Create(context.Background(), &models.Post{
		Title: "t", Content: "body", CategoryID: cat.ID,
	}))

	err = svc.Delete(context.Background(), cat.ID)
	assert.ErrorIs(t, err, models.ErrCategoryNotEmpty)

	// Category survives the refused deletion
	_, err = catRepo.GetByID(context.Background(), cat.ID)
	require.NoError(t, err)

	ok, err := svc.CanBeDeleted(context.Background(), cat.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryService_Update(t *testing.T) {
	svc, _, _ := setupCategoryService(t)

	cat, err := svc.Create(context.Background(), models.CreateCategoryRequest{Title: "go"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), cat.ID, models.UpdateCategoryRequest{Title: "Go Lang"})
	require.NoError(t, err)
	assert.Equal(t, "Go Lang", updated.Title)
	assert.Equal(t, "go-lang", updated.Slug)
}

func TestCategoryService_PaginatedList(t *testing.T) {
	svc, _, _ := setupCategoryService(t)

	for i := 0; i < 12; i++ {
		_, err := svc.Create(context.Background(), models.CreateCategoryRequest{Title: "cat"})
		require.NoError(t, err)
	}

	page, err := svc.GetPaginatedList(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 12, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
}
