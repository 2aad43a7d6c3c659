package service

import (
	"context"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// VersionService answers the app's update check.
type VersionService struct {
	repo ports.VersionRepository
}

// NewVersionService constructs a new VersionService.
func NewVersionService(repo ports.VersionRepository) *VersionService {
	if repo == nil {
		panic("VersionRepository is required")
	}
	return &VersionService{repo: repo}
}

// Latest returns the newest published release. No releases is NotFound.
func (s *VersionService) Latest(ctx context.Context) (*model.LatestVersionResponse, error) {
	v, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, repoError(err, "failed to load version")
	}
	if v == nil {
		return nil, apperrors.NotFound("no version information found")
	}
	resp := v.LatestResponse()
	return &resp, nil
}
