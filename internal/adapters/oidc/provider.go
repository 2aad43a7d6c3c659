package oidc

// Package oidc provides the Zoho Accounts OAuth adapter for employee login.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

const (
	// Zoho Accounts endpoints for the default (.com) data center.
	DefaultAuthURL  = "https://accounts.zoho.com/oauth/v2/auth"
	DefaultTokenURL = "https://accounts.zoho.com/oauth/v2/token"

	defaultEmailClaim      = "email"
	defaultAccessType      = "offline"
	defaultExchangeTimeout = 10 * time.Second
)

// Exchange steps reported in ExchangeError.Op.
const (
	OpToken   = "token"
	OpIDToken = "id_token"
	OpDecode  = "decode"
	OpEmail   = "email"
)

var _ ports.DirectoryClient = (*Provider)(nil)

// ProviderConfig holds configuration for the Zoho provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	// ScopeSeparator joins Scopes in the authorization URL. Zoho expects ",".
	ScopeSeparator string
	AuthURL        string
	TokenURL       string
	// DiscoveryURL enables id_token signature verification through go-oidc when set.
	DiscoveryURL string
	// EmailClaim is a JMESPath expression evaluated against the id_token claims.
	EmailClaim      string
	AccessType      string
	ExchangeTimeout time.Duration
	HTTPClient      *http.Client // Optional, defaults to a client with ExchangeTimeout
}

// Provider implements ports.DirectoryClient against Zoho Accounts.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client
	scopeSep   string
	accessType string
	emailClaim string
	timeout    time.Duration

	// verifier is nil when no discovery URL is configured.
	verifier *gooidc.IDTokenVerifier
}

// NewProvider validates cfg and builds a Provider.
// Discovery, when configured, is fetched once using ctx.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	emailClaim := strings.TrimSpace(cfg.EmailClaim)
	if emailClaim == "" {
		emailClaim = defaultEmailClaim
	}
	if _, err := jmespath.Compile(emailClaim); err != nil {
		return nil, fmt.Errorf("invalid email claim expression: %w", err)
	}

	timeout := cfg.ExchangeTimeout
	if timeout <= 0 {
		timeout = defaultExchangeTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	endpoint := oauth2.Endpoint{
		AuthURL:   firstNonEmpty(cfg.AuthURL, DefaultAuthURL),
		TokenURL:  firstNonEmpty(cfg.TokenURL, DefaultTokenURL),
		AuthStyle: oauth2.AuthStyleInParams,
	}

	p := &Provider{
		httpClient: httpClient,
		scopeSep:   firstNonEmpty(cfg.ScopeSeparator, ","),
		accessType: firstNonEmpty(cfg.AccessType, defaultAccessType),
		emailClaim: emailClaim,
		timeout:    timeout,
	}

	if cfg.DiscoveryURL != "" {
		dctx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		op, err := gooidc.NewProvider(dctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		p.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.ClientID})
		endpoint = op.Endpoint()
		endpoint.AuthStyle = oauth2.AuthStyleInParams
	}

	p.config = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
		Endpoint:     endpoint,
	}
	return p, nil
}

// AuthCodeURL builds the authorization URL. The state is passed through untouched.
func (p *Provider) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("access_type", p.accessType),
	}
	if len(p.config.Scopes) > 0 {
		// oauth2 joins scopes with spaces; Zoho wants its own separator.
		opts = append(opts, oauth2.SetAuthURLParam("scope", strings.Join(p.config.Scopes, p.scopeSep)))
	}
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades code for tokens and returns the email asserted by the id_token.
func (p *Provider) Exchange(ctx context.Context, code string) (domainauth.ExternalIdentity, error) {
	if strings.TrimSpace(code) == "" {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError(OpToken, errors.New("authorization code is required"))
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError(OpToken, err)
	}

	rawID, err := getIDTokenFromToken(token)
	if err != nil {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError(OpIDToken, err)
	}

	claims, err := p.decodeIDToken(ctx, rawID)
	if err != nil {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError(OpDecode, err)
	}

	email, err := p.extractEmail(claims)
	if err != nil {
		return domainauth.ExternalIdentity{}, domainauth.NewExchangeError(OpEmail, err)
	}
	return domainauth.ExternalIdentity{Email: email}, nil
}

// decodeIDToken verifies the token when a verifier exists; otherwise it only decodes it.
func (p *Provider) decodeIDToken(ctx context.Context, raw string) (map[string]any, error) {
	if p.verifier != nil {
		idTok, err := p.verifier.Verify(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("verify id_token: %w", err)
		}
		var claims map[string]any
		if err := idTok.Claims(&claims); err != nil {
			return nil, fmt.Errorf("parse id_token claims: %w", err)
		}
		return claims, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse id_token: %w", err)
	}
	return claims, nil
}

func (p *Provider) extractEmail(claims map[string]any) (string, error) {
	v, err := jmespath.Search(p.emailClaim, claims)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", p.emailClaim, err)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", domainauth.ErrMissingEmail
	}
	return strings.TrimSpace(s), nil
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
