package service

import (
	"context"
	"log/slog"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// ContactRequestServiceOptions groups dependencies for ContactRequestService.
type ContactRequestServiceOptions struct {
	Repo   ports.ContactRequestRepository // Required
	Logger *slog.Logger                   // Optional
}

// ContactRequestService manages requests to treat a contact as personal.
type ContactRequestService struct {
	repo   ports.ContactRequestRepository
	logger *slog.Logger
}

// NewContactRequestService constructs a new ContactRequestService.
func NewContactRequestService(opts ContactRequestServiceOptions) *ContactRequestService {
	if opts.Repo == nil {
		panic("ContactRequestRepository is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "contact_request_service")
	}
	return &ContactRequestService{repo: opts.Repo, logger: logger}
}

// Submit records a new pending request.
func (s *ContactRequestService) Submit(
	ctx context.Context,
	req *model.CreateContactRequest,
) (*model.ContactRequest, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, repoError(err, "failed to save request")
	}
	return out, nil
}

// Pending lists pending requests, newest first.
func (s *ContactRequestService) Pending(ctx context.Context) ([]*model.ContactRequest, error) {
	out, err := s.repo.ListByStatus(ctx, model.ContactRequestPending)
	if err != nil {
		return nil, repoError(err, "failed to list requests")
	}
	return out, nil
}

// UpdateStatus applies a review decision. Unknown ids are NotFound.
func (s *ContactRequestService) UpdateStatus(
	ctx context.Context,
	req *model.UpdateContactRequestStatus,
) (*model.ContactRequest, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	status, err := req.Validate()
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	out, err := s.repo.UpdateStatus(ctx, req.RequestID, status)
	if err != nil {
		return nil, repoError(err, "failed to update request")
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contact request reviewed", "id", out.ID, "status", out.Status)
	}
	return out, nil
}
