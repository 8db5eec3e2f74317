package models

import (
	"errors"
	"fmt"
	"time"
)

// Common error codes for JSON responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrInvalidInput       = errors.New("invalid input")
	ErrCategoryNotEmpty   = errors.New("category still contains posts")
)

// AppError carries an error code and HTTP status alongside the message
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToHTTPError converts to an HTTP-compatible error response
func (e *AppError) ToHTTPError() *APIResponse {
	return &APIResponse{
		Success:   false,
		Error:     e.Message,
		Message:   e.Message,
		Timestamp: time.Now(),
	}
}

// NewHTTPError builds an AppError for the HTTP surface
func NewHTTPError(code, message string, statusCode int, err error) *AppError {
	details := map[string]interface{}{}
	if err != nil {
		details["original_error"] = err.Error()
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// IsNotFound reports whether err is a not-found outcome from any layer
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCommentNotFound) {
		return true
	}
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}
