package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub/internal/listing"
	"bloghub/pkg/models"
)

// PostRepository handles post data persistence
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Query(filters listing.Filters) listing.Query[models.Post]
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

// Create inserts a new post
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = newID("post")
	}

	query := `
		INSERT INTO posts (id, title, content, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.CategoryID,
	).Scan(&post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return mapDBError(err, "create_post")
	}
	return nil
}

// GetByID retrieves a post by ID with its category title
func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT p.id, p.title, p.content, p.category_id, c.title, p.created_at, p.updated_at
		FROM posts p
		INNER JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`

	post := &models.Post{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.CategoryID,
		&post.CategoryTitle,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "post not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_post_by_id")
	}
	return post, nil
}

// Query composes the post listing joined to its category dimension.
// Count and fetch share the same WHERE clause so the reported total
// always matches the returned window.
func (r *postRepository) Query(filters listing.Filters) listing.Query[models.Post] {
	where := ""
	args := []interface{}{}
	if filters.Category != nil {
		where = ` WHERE p.category_id = $1`
		args = append(args, filters.Category.ID)
	}

	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			countQuery := `SELECT COUNT(*) FROM posts p` + where
			var total int
			if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
				return 0, mapDBError(err, "count_posts")
			}
			return total, nil
		},
		func(ctx context.Context, offset, limit int) ([]models.Post, error) {
			selectQuery := `
				SELECT p.id, p.title, p.content, p.category_id, c.title, p.created_at, p.updated_at
				FROM posts p
				INNER JOIN categories c ON p.category_id = c.id
			` + where + `
				ORDER BY p.updated_at DESC
				LIMIT $` + placeholder(len(args)+1) + ` OFFSET $` + placeholder(len(args)+2)

			pageArgs := append(append([]interface{}{}, args...), limit, offset)
			rows, err := r.pool.Query(ctx, selectQuery, pageArgs...)
			if err != nil {
				return nil, mapDBError(err, "list_posts")
			}
			defer rows.Close()

			var posts []models.Post
			for rows.Next() {
				var post models.Post
				err := rows.Scan(
					&post.ID,
					&post.Title,
					&post.Content,
					&post.CategoryID,
					&post.CategoryTitle,
					&post.CreatedAt,
					&post.UpdatedAt,
				)
				if err != nil {
					return nil, mapDBError(err, "scan_post")
				}
				posts = append(posts, post)
			}
			return posts, nil
		},
	)
}

// Update changes a post's title, content, or category
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, category_id = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.CategoryID,
	).Scan(&post.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "post not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "update_post")
	}
	return nil
}

// Delete removes a post together with its comments. Comments go first;
// if any step fails the transaction rolls back and nothing is deleted.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.WithTransaction(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return mapDBError(err, "delete_post")
		}
		if !exists {
			return models.NewHTTPError(models.ErrCodeNotFound, "post not found", 404, pgx.ErrNoRows)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
			return mapDBError(err, "delete_post_comments")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
			return mapDBError(err, "delete_post")
		}
		return nil
	})
}

// CountByCategory reports how many posts a category still contains
func (r *postRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE category_id = $1`, categoryID).Scan(&total)
	if err != nil {
		return 0, mapDBError(err, "count_posts_by_category")
	}
	return total, nil
}

// WithTransaction executes a function within a database transaction
func (r *postRepository) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapDBError(err, "begin_transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
