package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// IdentityServiceOptions groups dependencies for IdentityService.
type IdentityServiceOptions struct {
	Directory ports.EmployeeDirectory // Required: employee registry
	Logger    *slog.Logger            // Optional: structured logger
}

// IdentityService maps an externally asserted email to an enriched registry identity.
// It only reads the registry; an unknown email never creates an employee.
type IdentityService struct {
	directory ports.EmployeeDirectory
	logger    *slog.Logger
}

// NewIdentityService constructs a new IdentityService.
func NewIdentityService(opts IdentityServiceOptions) (*IdentityService, error) {
	if opts.Directory == nil {
		return nil, errors.New("EmployeeDirectory is required")
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "identity_service")
	}
	return &IdentityService{directory: opts.Directory, logger: logger}, nil
}

// Resolve looks up the employee for email and fills in department and SIM serial.
// Absent values become model.NotAvailable. No match returns domainauth.ErrNotAuthorized.
func (s *IdentityService) Resolve(ctx context.Context, email string) (model.EnrichedIdentity, error) {
	normalized := model.NormalizeEmail(email)
	if normalized == "" {
		return model.EnrichedIdentity{}, domainauth.ErrNotAuthorized
	}

	emp, err := s.directory.FindByEmail(ctx, normalized)
	if err != nil {
		return model.EnrichedIdentity{}, fmt.Errorf("lookup employee: %w", err)
	}
	if emp == nil {
		if s.logger != nil {
			s.logger.InfoContext(ctx, "no registry entry for directory identity")
		}
		return model.EnrichedIdentity{}, domainauth.ErrNotAuthorized
	}

	serial, ok := model.AllocatedSIMSerial(*emp)
	if !ok {
		serial = model.NotAvailable
	}

	return model.EnrichedIdentity{
		Employee:       *emp,
		DepartmentName: emp.DepartmentName(),
		DeviceSerial:   serial,
	}, nil
}
