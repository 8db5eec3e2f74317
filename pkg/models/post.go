package models

import "time"

// Post represents a published article - matches schema.sql
type Post struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	CategoryID    string    `json:"category_id" db:"category_id"`
	CategoryTitle string    `json:"category_title"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreatePostRequest
type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=255"`
	Content    string `json:"content" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
}

// UpdatePostRequest - empty fields keep their current value
type UpdatePostRequest struct {
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// PostResponse represents a post with view count for API responses
type PostResponse struct {
	Post
	Views int64 `json:"views,omitempty"`
}

const MaxPostTitleLength = 255
