package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub/internal/listing"
	"bloghub/pkg/models"
)

// CategoryRepository handles category data persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Query() listing.Query[models.Category]
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

// Create inserts a new category
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = newID("cat")
	}

	query := `
		INSERT INTO categories (id, title, slug, created_at, updated_at)
		VALUES ($1, $2, $3, COALESCE($4, CURRENT_TIMESTAMP), COALESCE($4, CURRENT_TIMESTAMP))
		RETURNING created_at, updated_at
	`

	var createdAt interface{}
	if !category.CreatedAt.IsZero() {
		createdAt = category.CreatedAt
	}

	err := r.pool.QueryRow(ctx, query,
		category.ID,
		category.Title,
		category.Slug,
		createdAt,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return mapDBError(err, "create_category")
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetBySlug retrieves a category by its slug
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.getOne(ctx, `WHERE slug = $1`, slug)
}

func (r *categoryRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Category, error) {
	query := `
		SELECT id, title, slug, created_at, updated_at
		FROM categories
	` + where

	category := &models.Category{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&category.ID,
		&category.Title,
		&category.Slug,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "category not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_category")
	}
	return category, nil
}

// Query composes the category listing: newest updates first
func (r *categoryRepository) Query() listing.Query[models.Category] {
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			var total int
			err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total)
			if err != nil {
				return 0, mapDBError(err, "count_categories")
			}
			return total, nil
		},
		func(ctx context.Context, offset, limit int) ([]models.Category, error) {
			query := `
				SELECT id, title, slug, created_at, updated_at
				FROM categories
				ORDER BY updated_at DESC
				LIMIT $1 OFFSET $2
			`
			rows, err := r.pool.Query(ctx, query, limit, offset)
			if err != nil {
				return nil, mapDBError(err, "list_categories")
			}
			defer rows.Close()

			var categories []models.Category
			for rows.Next() {
				var category models.Category
				err := rows.Scan(
					&category.ID,
					&category.Title,
					&category.Slug,
					&category.CreatedAt,
					&category.UpdatedAt,
				)
				if err != nil {
					return nil, mapDBError(err, "scan_category")
				}
				categories = append(categories, category)
			}
			return categories, nil
		},
	)
}

// Update changes a category's title and slug
func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET title = $2, slug = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		category.ID,
		category.Title,
		category.Slug,
	).Scan(&category.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "category not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "update_category")
	}
	return nil
}

// Delete removes a category. The service layer refuses deletion of
// categories that still contain posts before calling this.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1 RETURNING id`

	var deletedID string
	err := r.pool.QueryRow(ctx, query, id).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "category not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "delete_category")
	}
	return nil
}
