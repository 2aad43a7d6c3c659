package ports

// Package ports defines interfaces (hexagonal ports) for login, identity and sessions.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
)

// DirectoryClient talks to the external workforce directory's OAuth endpoints.
type DirectoryClient interface {
	// AuthCodeURL returns the provider authorization URL carrying the opaque state verbatim.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the asserted identity.
	// Failures are returned as *domainauth.ExchangeError.
	Exchange(ctx context.Context, code string) (domainauth.ExternalIdentity, error)
}

// EmployeeDirectory looks up employees in the internal registry.
type EmployeeDirectory interface {
	// FindByEmail returns the employee with assets, asset types and department populated.
	// A miss returns (nil, nil).
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
}

// SessionIssuer signs session credentials for enriched identities.
type SessionIssuer interface {
	Issue(identity model.EnrichedIdentity) (domainauth.Session, string, error)
}

// SessionVerifier validates a session credential and returns its content.
// Every failure is reported as domainauth.ErrInvalidCredential.
type SessionVerifier interface {
	Verify(token string) (domainauth.Session, error)
}
