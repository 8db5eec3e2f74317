package core

import (
	"context"
	"fmt"
	"strings"

	"bloghub/internal/listing"
	"bloghub/internal/repository"
	"bloghub/pkg/models"
	"bloghub/pkg/utils"
)

// CategoryService defines category operations
type CategoryService interface {
	Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetPaginatedList(ctx context.Context, page int) (*listing.Page[models.Category], error)
	Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id string) error
	CanBeDeleted(ctx context.Context, id string) (bool, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	postRepo     repository.PostRepository
	pageSize     int
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, postRepo repository.PostRepository, pageSize int) CategoryService {
	if pageSize < 1 {
		pageSize = listing.DefaultPageSize
	}
	return &categoryService{
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		pageSize:     pageSize,
	}
}

// Create adds a new category with a slug derived from its title
func (s *categoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > models.MaxCategoryTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", models.MaxCategoryTitleLength)
	}

	category := &models.Category{
		Title: title,
		Slug:  utils.Slugify(title),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID retrieves a category by ID. Also serves as the
// listing.CategoryFinder used during filter normalization.
func (s *categoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// GetPaginatedList retrieves one page of categories
func (s *categoryService) GetPaginatedList(ctx context.Context, page int) (*listing.Page[models.Category], error) {
	return listing.Paginate(ctx, s.categoryRepo.Query(), page, s.pageSize)
}

// Update changes a category's title and re-derives its slug
func (s *categoryService) Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > models.MaxCategoryTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", models.MaxCategoryTitleLength)
	}

	category.Title = title
	category.Slug = utils.Slugify(title)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes an empty category. Categories that still contain
// posts are refused.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	ok, err := s.CanBeDeleted(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrCategoryNotEmpty
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CanBeDeleted reports whether a category has no posts attached
func (s *categoryService) CanBeDeleted(ctx context.Context, id string) (bool, error) {
	count, err := s.postRepo.CountByCategory(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to count posts in category: %w", err)
	}
	return count == 0, nil
}
