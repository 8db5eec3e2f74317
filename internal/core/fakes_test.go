package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"bloghub/internal/listing"
	"bloghub/pkg/models"
)

// In-memory repository fakes shared by the service tests. They honor
// the same ordering and filter semantics as the PostgreSQL layer.

var errNotFoundFake = models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, nil)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%03d", r.seq)
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.NewHTTPError(models.ErrCodeConflict, "email already registered", 409, nil)
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFoundFake
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errNotFoundFake
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		if models.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errNotFoundFake
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Query() listing.Query[models.User] {
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			return len(r.users), nil
		},
		func(ctx context.Context, offset, limit int) ([]models.User, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			all := make([]models.User, 0, len(r.users))
			for _, u := range r.users {
				all = append(all, *u)
			}
			sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
			return window(all, offset, limit), nil
		},
	)
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
	seq        int
	failWith   error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*models.Category{}}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == "" {
		r.seq++
		category.ID = fmt.Sprintf("cat-%03d", r.seq)
	}
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, errNotFoundFake
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, errNotFoundFake
}

func (r *fakeCategoryRepo) Query() listing.Query[models.Category] {
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			return len(r.categories), nil
		},
		func(ctx context.Context, offset, limit int) ([]models.Category, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			all := make([]models.Category, 0, len(r.categories))
			for _, c := range r.categories {
				all = append(all, *c)
			}
			sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
			return window(all, offset, limit), nil
		},
	)
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return errNotFoundFake
	}
	category.UpdatedAt = time.Now()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return errNotFoundFake
	}
	delete(r.categories, id)
	return nil
}

type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[string]*models.Post
	comments *fakeCommentRepo
	catRepo  *fakeCategoryRepo
	seq      int

	// simulates a cascade step failing mid-transaction
	failCommentDelete bool
}

func newFakePostRepo(catRepo *fakeCategoryRepo, comments *fakeCommentRepo) *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}, catRepo: catRepo, comments: comments}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		r.seq++
		post.ID = fmt.Sprintf("post-%03d", r.seq)
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, errNotFoundFake
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostRepo) Query(filters listing.Filters) listing.Query[models.Post] {
	matches := func(p *models.Post) bool {
		return filters.Category == nil || p.CategoryID == filters.Category.ID
	}
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			total := 0
			for _, p := range r.posts {
				if matches(p) {
					total++
				}
			}
			return total, nil
		},
		func(ctx context.Context, offset, limit int) ([]models.Post, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			var all []models.Post
			for _, p := range r.posts {
				if matches(p) {
					all = append(all, *p)
				}
			}
			sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
			return window(all, offset, limit), nil
		},
	)
}

func (r *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return errNotFoundFake
	}
	post.UpdatedAt = time.Now()
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

// Delete mirrors the transactional cascade: comments first, then the
// post; a failing comment deletion leaves everything in place.
func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return errNotFoundFake
	}
	if r.failCommentDelete {
		return errors.New("failed to delete comments: connection reset")
	}
	r.comments.deleteByPost(id)
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, p := range r.posts {
		if p.CategoryID == categoryID {
			total++
		}
	}
	return total, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*models.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*models.Comment{}}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		r.seq++
		comment.ID = fmt.Sprintf("comm-%03d", r.seq)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, errNotFoundFake
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCommentRepo) QueryByPost(postID string) listing.Query[models.Comment] {
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			total := 0
			for _, c := range r.comments {
				if c.PostID == postID {
					total++
				}
			}
			return total, nil
		},
		func(ctx context.Context, offset, limit int) ([]models.Comment, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			var all []models.Comment
			for _, c := range r.comments {
				if c.PostID == postID {
					all = append(all, *c)
				}
			}
			sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
			return window(all, offset, limit), nil
		},
	)
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return errNotFoundFake
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) deleteByPost(postID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
