package models

import (
	"errors"
	"strings"
	"time"
)

// Role represents a permission tag assigned to a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleSet is an unordered set of role tags. An authenticated user always
// carries at least RoleUser.
type RoleSet map[Role]struct{}

// NewRoleSet builds a role set from the given roles, always including RoleUser
func NewRoleSet(roles ...Role) RoleSet {
	set := RoleSet{RoleUser: {}}
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given role
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// IsBaseOnly reports whether the set is exactly {user}
func (s RoleSet) IsBaseOnly() bool {
	return len(s) == 1 && s.Has(RoleUser)
}

// Strings returns the roles as stable strings for storage and responses
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s))
	if s.Has(RoleUser) {
		out = append(out, string(RoleUser))
	}
	if s.Has(RoleAdmin) {
		out = append(out, string(RoleAdmin))
	}
	return out
}

// ParseRoleSet converts stored role strings back into a RoleSet.
// Unknown tags are dropped; the base role is always restored.
func ParseRoleSet(raw []string) RoleSet {
	set := NewRoleSet()
	for _, r := range raw {
		switch Role(strings.ToLower(strings.TrimSpace(r))) {
		case RoleUser:
			set[RoleUser] = struct{}{}
		case RoleAdmin:
			set[RoleAdmin] = struct{}{}
		}
	}
	return set
}

// User represents a registered account
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Roles        RoleSet   `json:"roles" db:"roles"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a profile edit. Empty fields are left unchanged.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// UserProfile - public-facing profile, NO sensitive data
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile strips credentials from a user
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Roles:     u.Roles.Strings(),
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse
type LoginResponse struct {
	Token     string      `json:"token"`
	User      UserProfile `json:"user"`
	ExpiresIn int         `json:"expires_in"` // seconds (client-friendly)
}

// ValidateRegisterRequest adds additional validation beyond struct tags
func ValidateRegisterRequest(req *RegisterRequest) error {
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !strings.Contains(req.Email, "@") {
		return errors.New("email address is not valid")
	}
	return nil
}
