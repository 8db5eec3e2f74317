package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/internal/authz"
	"bloghub/pkg/models"
)

func setupCommentService(t *testing.T) (CommentService, *fakeCommentRepo, *models.Post) {
	t.Helper()
	catRepo := newFakeCategoryRepo()
	commentRepo := newFakeCommentRepo()
	postRepo := newFakePostRepo(catRepo, commentRepo)

	cat := seedCategory(t, catRepo, "go")
	post := &models.Post{Title: "t", Content: "body", CategoryID: cat.ID}
	require.NoError(t, postRepo.Create(context.Background(), post))

	return NewCommentService(commentRepo, postRepo, 10), commentRepo, post
}

func TestCommentService_Create(t *testing.T) {
	svc, _, post := setupCommentService(t)

	comment, err := svc.Create(context.Background(), post.ID, models.CreateCommentRequest{
		Nick: "reader", Email: "reader@example.com", Content: "nice post",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Nil(t, comment.AuthorID, "guest comments carry no owner")
}

func TestCommentService_CreateValidation(t *testing.T) {
	svc, _, post := setupCommentService(t)

	cases := []models.CreateCommentRequest{
		{Nick: "", Email: "a@b.c", Content: "hi"},
		{Nick: "n", Email: "not-an-email", Content: "hi"},
		{Nick: "n", Email: "a@b.c", Content: ""},
		{Nick: "n", Email: "a@b.c", Content: strings.Repeat("x", models.MaxCommentLength+1)},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), post.ID, req)
		assert.Error(t, err)
	}
}

func TestCommentService_CreateOnMissingPost(t *testing.T) {
	svc, _, _ := setupCommentService(t)

	_, err := svc.Create(context.Background(), "post-missing", models.CreateCommentRequest{
		Nick: "n", Email: "a@b.c", Content: "hi",
	})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestCommentService_ListNewestFirst(t *testing.T) {
	svc, _, post := setupCommentService(t)

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), post.ID, models.CreateCommentRequest{
			Nick: "n", Email: "a@b.c", Content: content,
		})
		require.NoError(t, err)
	}

	page, err := svc.GetPaginatedList(context.Background(), post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalItems)
	require.Len(t, page.Items, 3)
}

func TestCommentService_DeleteRequiresAdmin(t *testing.T) {
	svc, commentRepo, post := setupCommentService(t)

	comment, err := svc.Create(context.Background(), post.ID, models.CreateCommentRequest{
		Nick: "n", Email: "a@b.c", Content: "hi",
	})
	require.NoError(t, err)

	plainActor := &authz.Actor{ID: "u1", Roles: models.NewRoleSet()}
	err = svc.Delete(context.Background(), plainActor, comment.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = svc.Delete(context.Background(), nil, comment.ID)
	assert.ErrorIs(t, err, models.ErrForbidden, "unauthenticated caller denied")

	admin := &authz.Actor{ID: "a1", Roles: models.NewRoleSet(models.RoleAdmin)}
	require.NoError(t, svc.Delete(context.Background(), admin, comment.ID))

	_, err = commentRepo.GetByID(context.Background(), comment.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestCommentService_DeleteByOwnerWhenOwned(t *testing.T) {
	svc, commentRepo, post := setupCommentService(t)

	// A comment that does carry an owner (account-owned mode)
	owner := "u1"
	owned := &models.Comment{
		PostID: post.ID, AuthorID: &owner, Nick: "n", Email: "a@b.c", Content: "mine",
	}
	require.NoError(t, commentRepo.Create(context.Background(), owned))

	stranger := &authz.Actor{ID: "u2", Roles: models.NewRoleSet()}
	err := svc.Delete(context.Background(), stranger, owned.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	author := &authz.Actor{ID: "u1", Roles: models.NewRoleSet()}
	require.NoError(t, svc.Delete(context.Background(), author, owned.ID))
}

func TestCommentService_DeleteMissingComment(t *testing.T) {
	svc, _, _ := setupCommentService(t)

	admin := &authz.Actor{ID: "a1", Roles: models.NewRoleSet(models.RoleAdmin)}
	err := svc.Delete(context.Background(), admin, "comm-missing")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}
