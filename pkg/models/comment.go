package models

import "time"

// Comment represents a guest comment on a post - matches schema.sql.
// Authorship is a nickname/email pair; AuthorID stays empty in this mode
// and exists so owner-based deletion keeps working if account-owned
// comments are ever turned on.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"post_id" db:"post_id"`
	AuthorID  *string   `json:"author_id,omitempty" db:"author_id"`
	Nick      string    `json:"nick" db:"nick"`
	Email     string    `json:"email" db:"email"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCommentRequest - post id comes from the URL path
type CreateCommentRequest struct {
	Nick    string `json:"nick" validate:"required,min=1,max=64"`
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

const (
	MaxCommentLength = 5000
	MaxNickLength    = 64
)
