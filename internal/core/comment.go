package core

import (
	"context"
	"fmt"
	"strings"

	"bloghub/internal/authz"
	"bloghub/internal/listing"
	"bloghub/internal/repository"
	"bloghub/pkg/models"
)

// CommentService defines comment operations
type CommentService interface {
	Create(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	GetPaginatedList(ctx context.Context, postID string, page int) (*listing.Page[models.Comment], error)
	Delete(ctx context.Context, actor *authz.Actor, id string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	pageSize    int
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, pageSize int) CommentService {
	if pageSize < 1 {
		pageSize = listing.DefaultPageSize
	}
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		pageSize:    pageSize,
	}
}

// Create adds a guest comment to an existing post
func (s *commentService) Create(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Nick) == "" {
		return nil, fmt.Errorf("nick is required")
	}
	if len(req.Nick) > models.MaxNickLength {
		return nil, fmt.Errorf("nick exceeds maximum length of %d characters", models.MaxNickLength)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("email address is not valid")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content is required")
	}
	if len(req.Content) > models.MaxCommentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", models.MaxCommentLength)
	}

	// Every comment belongs to exactly one existing post
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  post.ID,
		Nick:    strings.TrimSpace(req.Nick),
		Email:   strings.TrimSpace(req.Email),
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetByID retrieves a comment by ID
func (s *commentService) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// GetPaginatedList retrieves one page of a post's comments
func (s *commentService) GetPaginatedList(ctx context.Context, postID string, page int) (*listing.Page[models.Comment], error) {
	return listing.Paginate(ctx, s.commentRepo.QueryByPost(postID), page, s.pageSize)
}

// Delete removes a comment when the policy allows it. Guest comments
// carry no owner, so in practice only admins pass.
func (s *commentService) Delete(ctx context.Context, actor *authz.Actor, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.Decide(actor, authz.ActionDeleteComment, authz.CommentResource{OwnerID: comment.AuthorID}) {
		return models.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
