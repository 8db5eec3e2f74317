package core

import (
	"context"
	"fmt"
	"strings"

	"bloghub/internal/listing"
	"bloghub/internal/repository"
	"bloghub/pkg/models"
)

// PostService defines post operations
type PostService interface {
	Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetPaginatedList(ctx context.Context, page int, rawCategoryID string) (*listing.Page[models.Post], error)
	Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	pageSize     int
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, pageSize int) PostService {
	if pageSize < 1 {
		pageSize = listing.DefaultPageSize
	}
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		pageSize:     pageSize,
	}
}

// Create adds a new post under an existing category
func (s *postService) Create(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > models.MaxPostTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", models.MaxPostTitleLength)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:         title,
		Content:       req.Content,
		CategoryID:    category.ID,
		CategoryTitle: category.Title,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID retrieves a post by ID
func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetPaginatedList retrieves one page of posts, optionally filtered by
// category. An unknown or malformed category id lists all posts.
func (s *postService) GetPaginatedList(ctx context.Context, page int, rawCategoryID string) (*listing.Page[models.Post], error) {
	filters, err := listing.NormalizeFilters(ctx, rawCategoryID, s.categoryRepo)
	if err != nil {
		return nil, err
	}
	return listing.Paginate(ctx, s.postRepo.Query(filters), page, s.pageSize)
}

// Update changes a post's fields; empty request fields keep their value
func (s *postService) Update(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		if len(title) > models.MaxPostTitleLength {
			return nil, fmt.Errorf("title exceeds maximum length of %d characters", models.MaxPostTitleLength)
		}
		post.Title = title
	}
	if strings.TrimSpace(req.Content) != "" {
		post.Content = req.Content
	}
	if req.CategoryID != "" && req.CategoryID != post.CategoryID {
		category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		post.CategoryID = category.ID
		post.CategoryTitle = category.Title
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post and all its comments as one atomic operation
func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}
