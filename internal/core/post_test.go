package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/pkg/models"
)

func setupPostService(t *testing.T) (PostService, *fakePostRepo, *fakeCategoryRepo, *fakeCommentRepo) {
	t.Helper()
	catRepo := newFakeCategoryRepo()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo(catRepo, commentRepo)
	return NewPostService(postRepo, catRepo, 10), postRepo, catRepo, commentRepo
}

func seedCategory(t *testing.T, repo *fakeCategoryRepo, title string) *models.Category {
	t.Helper()
	cat := &models.Category{Title: title, Slug: title}
	require.NoError(t, repo.Create(context.Background(), cat))
	return cat
}

func TestPostService_Create(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)
	cat := seedCategory(t, catRepo, "go")

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		Title:      "Generics in practice",
		Content:    "Some thoughts.",
		CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, cat.ID, post.CategoryID)
	assert.Equal(t, "go", post.CategoryTitle)
}

func TestPostService_CreateValidation(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)
	cat := seedCategory(t, catRepo, "go")

	_, err := svc.Create(context.Background(), models.CreatePostRequest{
		Title: "", Content: "body", CategoryID: cat.ID,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), models.CreatePostRequest{
		Title: "t", Content: "", CategoryID: cat.ID,
	})
	assert.Error(t, err)

	// Unknown category is a hard error for writes, unlike list filters
	_, err = svc.Create(context.Background(), models.CreatePostRequest{
		Title: "t", Content: "body", CategoryID: "cat-missing",
	})
	assert.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestPostService_ListFilteredByCategory(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)

	// 3 categories, one post each
	var cats []*models.Category
	for _, title := range []string{"go", "rust", "zig"} {
		cats = append(cats, seedCategory(t, catRepo, title))
	}
	for i, cat := range cats {
		_, err := svc.Create(context.Background(), models.CreatePostRequest{
			Title:      "post " + cat.Title,
			Content:    "body",
			CategoryID: cats[i].ID,
		})
		require.NoError(t, err)
	}

	page, err := svc.GetPaginatedList(context.Background(), 1, cats[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, cats[1].ID, page.Items[0].CategoryID)
}

func TestPostService_ListUnknownCategoryListsAll(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)
	cat := seedCategory(t, catRepo, "go")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), models.CreatePostRequest{
			Title: "post", Content: "body", CategoryID: cat.ID,
		})
		require.NoError(t, err)
	}

	// Unresolvable filter falls back to the unfiltered listing
	page, err := svc.GetPaginatedList(context.Background(), 1, "cat-nope")
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)

	page, err = svc.GetPaginatedList(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
}

func TestPostService_ListCategoryResolutionInfraErrorPropagates(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)
	catRepo.failWith = models.NewHTTPError(models.ErrCodeInternal, "database down", 500, nil)

	_, err := svc.GetPaginatedList(context.Background(), 1, "cat-1")
	assert.Error(t, err)
}

func TestPostService_Update(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)
	catA := seedCategory(t, catRepo, "go")
	catB := seedCategory(t, catRepo, "rust")

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		Title: "original", Content: "body", CategoryID: catA.ID,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), post.ID, models.UpdatePostRequest{
		Title:      "renamed",
		CategoryID: catB.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "body", updated.Content, "empty field keeps value")
	assert.Equal(t, catB.ID, updated.CategoryID)
}

func TestPostService_DeleteCascadesComments(t *testing.T) {
	svc, postRepo, catRepo, commentRepo := setupPostService(t)
	cat := seedCategory(t, catRepo, "go")

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		Title: "t", Content: "body", CategoryID: cat.ID,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, commentRepo.Create(context.Background(), &models.Comment{
			PostID: post.ID, Nick: "guest", Email: "g@example.com", Content: "hi",
		}))
	}

	require.NoError(t, svc.Delete(context.Background(), post.ID))

	_, err = postRepo.GetByID(context.Background(), post.ID)
	assert.True(t, models.IsNotFound(err), "post gone")
	total, err := commentRepo.QueryByPost(post.ID).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total, "comments gone")
}

func TestPostService_DeleteAbortsWhenCommentDeleteFails(t *testing.T) {
	svc, postRepo, catRepo, commentRepo := setupPostService(t)
	cat := seedCategory(t, catRepo, "go")

	post, err := svc.Create(context.Background(), models.CreatePostRequest{
		Title: "t", Content: "body", CategoryID: cat.ID,
	})
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(context.Background(), &models.Comment{
		PostID: post.ID, Nick: "guest", Email: "g@example.com", Content: "hi",
	}))

	postRepo.failCommentDelete = true
	err = svc.Delete(context.Background(), post.ID)
	require.Error(t, err)

	// Nothing was deleted: no orphaned comments, no missing post
	_, err = postRepo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	total, err := commentRepo.QueryByPost(post.ID).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestPostService_PaginationWindow(t *testing.T) {
	svc, _, catRepo, _ := setupPostService(t)
	cat := seedCategory(t, catRepo, "go")

	for i := 0; i < 23; i++ {
		_, err := svc.Create(context.Background(), models.CreatePostRequest{
			Title: "post", Content: "body", CategoryID: cat.ID,
		})
		require.NoError(t, err)
	}

	page3, err := svc.GetPaginatedList(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Len(t, page3.Items, 3)
	assert.Equal(t, 23, page3.TotalItems)
	assert.Equal(t, 3, page3.TotalPages)

	page4, err := svc.GetPaginatedList(context.Background(), 4, "")
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 23, page4.TotalItems)
}
