package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub/internal/listing"
	"bloghub/pkg/models"
)

// UserRepository handles user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Query() listing.Query[models.User]
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID("user")
	}
	if user.Roles == nil {
		user.Roles = models.NewRoleSet()
	}

	query := `
		INSERT INTO users (id, email, password_hash, roles, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Roles.Strings(),
	).Scan(&user.CreatedAt)

	if err != nil {
		return mapDBError(err, "create_user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, roles, created_at
		FROM users
	` + where

	user := &models.User{}
	var roles []string

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&roles,
		&user.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, err)
	}
	if err != nil {
		return nil, mapDBError(err, "get_user")
	}

	user.Roles = models.ParseRoleSet(roles)
	return user, nil
}

// EmailExists checks if an email is already registered
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool

	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, mapDBError(err, "check_email_exists")
	}
	return exists, nil
}

// Update changes a user's email, credentials, or role set
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, roles = $4
		WHERE id = $1
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Roles.Strings(),
	).Scan(&user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "user not found", 404, err)
	}
	if err != nil {
		return mapDBError(err, "update_user")
	}
	return nil
}

// Query composes the user listing, ordered by identifier
func (r *userRepository) Query() listing.Query[models.User] {
	return listing.NewQuery(
		func(ctx context.Context) (int, error) {
			var total int
			err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
			if err != nil {
				return 0, mapDBError(err, "count_users")
			}
			return total, nil
		},
		func(ctx context.Context, offset, limit int) ([]models.User, error) {
			query := `
				SELECT id, email, password_hash, roles, created_at
				FROM users
				ORDER BY id ASC
				LIMIT $1 OFFSET $2
			`
			rows, err := r.pool.Query(ctx, query, limit, offset)
			if err != nil {
				return nil, mapDBError(err, "list_users")
			}
			defer rows.Close()

			var users []models.User
			for rows.Next() {
				var user models.User
				var roles []string
				err := rows.Scan(
					&user.ID,
					&user.Email,
					&user.PasswordHash,
					&roles,
					&user.CreatedAt,
				)
				if err != nil {
					return nil, mapDBError(err, "scan_user")
				}
				user.Roles = models.ParseRoleSet(roles)
				users = append(users, user)
			}
			return users, nil
		},
	)
}
