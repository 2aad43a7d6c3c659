package service

import (
	"errors"

	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
)

// repoError turns a repository failure into an AppError.
// Database errors are classified by apperrors.MapDBError; anything left over is internal.
func repoError(err error, message string) error {
	if err == nil {
		return nil
	}
	mapped := apperrors.MapDBError(err)
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) {
		return mapped
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, message)
}
