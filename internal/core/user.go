package core

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"bloghub/internal/authz"
	"bloghub/internal/listing"
	"bloghub/internal/repository"
	"bloghub/pkg/models"
)

// UserService defines account management operations
type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetPaginatedList(ctx context.Context, page int) (*listing.Page[models.User], error)
	Update(ctx context.Context, actor *authz.Actor, targetID string, req models.UpdateUserRequest) (*models.User, error)
	PromoteToAdmin(ctx context.Context, actor *authz.Actor, targetID string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	pageSize int
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, pageSize int) UserService {
	if pageSize < 1 {
		pageSize = listing.DefaultPageSize
	}
	return &userService{
		userRepo: userRepo,
		pageSize: pageSize,
	}
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetPaginatedList retrieves one page of accounts, ordered by identifier
func (s *userService) GetPaginatedList(ctx context.Context, page int) (*listing.Page[models.User], error) {
	return listing.Paginate(ctx, s.userRepo.Query(), page, s.pageSize)
}

// Update edits a profile when the policy allows it: self-edit always,
// admin editing a plain user, never admin editing another admin.
func (s *userService) Update(ctx context.Context, actor *authz.Actor, targetID string, req models.UpdateUserRequest) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionEditProfile, authz.ProfileResource{ID: target.ID, Roles: target.Roles}) {
		return nil, models.ErrForbidden
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("email address is not valid")
		}
		target.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return nil, fmt.Errorf("password must be at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	target.PasswordHash = ""
	return target, nil
}

// PromoteToAdmin grants the admin role to a plain user. The same edit
// policy applies, so one admin can never touch another admin's account.
func (s *userService) PromoteToAdmin(ctx context.Context, actor *authz.Actor, targetID string) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionEditProfile, authz.ProfileResource{ID: target.ID, Roles: target.Roles}) {
		return nil, models.ErrForbidden
	}

	target.Roles = models.NewRoleSet(models.RoleAdmin)
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	target.PasswordHash = ""
	return target, nil
}
