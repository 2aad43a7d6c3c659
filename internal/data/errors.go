package data

import (
	"errors"

	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
)

// Shared sentinel errors for data-layer repositories.
var (
	// ErrContactRequestNotFound satisfies apperrors.IsNotFound.
	ErrContactRequestNotFound = apperrors.NotFound("contact request not found")
	ErrDBRequired             = errors.New("database handle is required")
)
