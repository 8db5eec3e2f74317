package models

import "time"

// Category groups posts into a single topic
type Category struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategoryRequest
type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=1,max=64"`
}

// UpdateCategoryRequest
type UpdateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=1,max=64"`
}

const MaxCategoryTitleLength = 64
