package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// CallLogServiceOptions groups dependencies for CallLogService.
type CallLogServiceOptions struct {
	Repo   ports.CallLogRepository // Required
	Logger *slog.Logger            // Optional
}

// CallLogService accepts call log uploads and serves filtered listings.
type CallLogService struct {
	repo   ports.CallLogRepository
	logger *slog.Logger
}

// NewCallLogService constructs a new CallLogService.
func NewCallLogService(opts CallLogServiceOptions) *CallLogService {
	if opts.Repo == nil {
		panic("CallLogRepository is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "call_log_service")
	}
	return &CallLogService{repo: opts.Repo, logger: logger}
}

// Upload stores one call attributed to uploadedBy, the verified session's name.
func (s *CallLogService) Upload(
	ctx context.Context,
	req *model.CreateCallLogRequest,
	uploadedBy string,
) (*model.CallLog, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	req.UploadedBy = strings.TrimSpace(uploadedBy)
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	out, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, repoError(err, "failed to save call log")
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "call log uploaded", "id", out.ID, "type", out.Type)
	}
	return out, nil
}

// ListCallLogsInput carries raw query values from the transport layer.
type ListCallLogsInput struct {
	RshipManagerName string
	UploadedBy       string
	// Date is YYYY-MM-DD; empty means no date filter.
	Date   string
	Limit  int
	Offset int
}

// List returns one page of matching call logs, newest first, with the total match count.
func (s *CallLogService) List(ctx context.Context, in ListCallLogsInput) (*model.CallLogListResult, error) {
	opts := model.CallLogListOptions{Limit: in.Limit, Offset: in.Offset}
	if v := strings.TrimSpace(in.RshipManagerName); v != "" {
		opts.RshipManagerName = &v
	}
	if v := strings.TrimSpace(in.UploadedBy); v != "" {
		opts.UploadedBy = &v
	}
	if strings.TrimSpace(in.Date) != "" {
		day, err := model.ParseCallLogDate(in.Date)
		if err != nil {
			return nil, apperrors.ValidationField("date", err.Error())
		}
		opts.Date = &day
	}

	logs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, repoError(err, "failed to list call logs")
	}
	// A short first page already holds every match.
	if opts.Offset == 0 && len(logs) < opts.PageSize() {
		return &model.CallLogListResult{Logs: logs, Total: len(logs)}, nil
	}
	total, err := s.repo.Count(ctx, opts)
	if err != nil {
		return nil, repoError(err, "failed to count call logs")
	}
	return &model.CallLogListResult{Logs: logs, Total: total}, nil
}
