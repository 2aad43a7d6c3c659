package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// UserDetailsServiceOptions groups dependencies for UserDetailsService.
type UserDetailsServiceOptions struct {
	Repo   ports.UserDetailsRepository // Required
	Logger *slog.Logger                // Optional
}

// UserDetailsService records device reports from the app.
type UserDetailsService struct {
	repo   ports.UserDetailsRepository
	logger *slog.Logger
}

// NewUserDetailsService constructs a new UserDetailsService.
func NewUserDetailsService(opts UserDetailsServiceOptions) *UserDetailsService {
	if opts.Repo == nil {
		panic("UserDetailsRepository is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "user_details_service")
	}
	return &UserDetailsService{repo: opts.Repo, logger: logger}
}

// Sync upserts the report keyed on the caller's normalized email.
func (s *UserDetailsService) Sync(ctx context.Context, req *model.SyncUserDetailsRequest) (*model.UserDetails, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		field := "username"
		if errors.Is(err, model.ErrUserDetailsEmailRequired) {
			field = "email"
		}
		return nil, apperrors.ValidationField(field, err.Error())
	}
	out, err := s.repo.Upsert(ctx, req)
	if err != nil {
		return nil, repoError(err, "failed to sync user details")
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "user details synced", "email", out.Email)
	}
	return out, nil
}

// List returns every report, most recently seen first.
func (s *UserDetailsService) List(ctx context.Context) ([]*model.UserDetails, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, "failed to list user details")
	}
	return out, nil
}
