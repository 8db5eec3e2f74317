package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub/internal/listing"
	"bloghub/pkg/models"
)

// CommentRepository handles comment data persistence
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	QueryByPost(postID string) listing.Query[models.Comment]
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

// Create inserts a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = newID("comm")
	}

	query := `
		INSERT INTO comments (id, post_id, author_id, nick, email, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.Nick,
		comment.Email,
		comment.Content,
	).Scan(&comment.CreatedAt)

	if err != nil {
		return mapDBError(err, "create_comment")
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, post_id, author_id, nick, email, content, created_at
		FROM comments
		WHERE id = $1
	`

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Nick,
		&comment.Email,
		&comment.Content,
		&comment.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "comment not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_comment_by_id")
	}
	return comment, nil
}

// QueryByPost composes the comment listing for one post, newest first
func (r *commentRepository) QueryByPost(postID string) listing.Query[models.Comment] {
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			var total int
			err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total)
			if err != nil {
				return 0, mapDBError(err, "count_comments")
			}
			return total, nil
		},
		func(ctx context.Context, offset, limit int) ([]models.Comment, error) {
			query := `
				SELECT id, post_id, author_id, nick, email, content, created_at
				FROM comments
				WHERE post_id = $1
				ORDER BY created_at DESC
				LIMIT $2 OFFSET $3
			`
			rows, err := r.pool.Query(ctx, query, postID, limit, offset)
			if err != nil {
				return nil, mapDBError(err, "list_comments")
			}
			defer rows.Close()

			var comments []models.Comment
			for rows.Next() {
				var comment models.Comment
				err := rows.Scan(
					&comment.ID,
					&comment.PostID,
					&comment.AuthorID,
					&comment.Nick,
					&comment.Email,
					&comment.Content,
					&comment.CreatedAt,
				)
				if err != nil {
					return nil, mapDBError(err, "scan_comment")
				}
				comments = append(comments, comment)
			}
			return comments, nil
		},
	)
}

// Delete removes a single comment
func (r *commentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1 RETURNING id`

	var deletedID string
	err := r.pool.QueryRow(ctx, query, id).Scan(&deletedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "comment not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "delete_comment")
	}
	return nil
}
