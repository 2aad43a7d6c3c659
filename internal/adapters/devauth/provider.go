// Package devauth provides a config-driven DirectoryClient for local development.
package devauth

import (
	"context"
	"errors"
	"net/url"
	"strings"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// DevCode is the authorization code placed in the local callback URL.
const DevCode = "dev"

var _ ports.DirectoryClient = (*Provider)(nil)

// Config controls the dev auth provider behavior.
type Config struct {
	// Email is asserted for every exchange and must exist in the employee registry.
	Email string
	// CallbackURL is where AuthCodeURL points; defaults to the relative /auth/zoho/callback.
	CallbackURL string
}

// Provider implements ports.DirectoryClient for local development.
// It short-circuits the OAuth flow by pointing straight back at our own callback.
// Registry lookup, enrichment and signing still run for the configured email.
type Provider struct {
	email       string
	callbackURL string
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	email := strings.TrimSpace(cfg.Email)
	if email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	cb := strings.TrimSpace(cfg.CallbackURL)
	if cb == "" {
		cb = "/auth/zoho/callback"
	}
	return &Provider{email: email, callbackURL: cb}, nil
}

// AuthCodeURL returns the local callback URL carrying the dev code and the given state.
func (p *Provider) AuthCodeURL(state string) string {
	q := url.Values{}
	q.Set("code", DevCode)
	q.Set("state", state)
	sep := "?"
	if strings.Contains(p.callbackURL, "?") {
		sep = "&"
	}
	return p.callbackURL + sep + q.Encode()
}

// Exchange ignores the code and returns the configured identity.
func (p *Provider) Exchange(_ context.Context, code string) (domainauth.ExternalIdentity, error) {
	if code == "" {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError("token", errors.New("authorization code is required"))
	}
	return domainauth.ExternalIdentity{Email: p.email}, nil
}
