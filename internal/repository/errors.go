package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bloghub/pkg/models"
)

// mapDBError maps database errors to application error responses
func mapDBError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewHTTPError(models.ErrCodeNotFound, "resource not found", 404, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if operation == "create_user" || operation == "update_user" {
				return models.NewHTTPError(models.ErrCodeConflict, "email already registered", 409, err)
			}
			return models.NewHTTPError(models.ErrCodeConflict, "resource already exists", 409, err)
		case "23503": // foreign_key_violation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid relationship", 400, err)
		case "22P02": // invalid_text_representation
			return models.NewHTTPError(models.ErrCodeBadRequest, "invalid input format", 400, err)
		}
	}

	return models.NewHTTPError(models.ErrCodeInternal, "database error during "+operation, 500, err)
}
