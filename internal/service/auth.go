package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	obserrors "github.com/milestone2github/callyn-backend/internal/observability/errors"
	"github.com/milestone2github/callyn-backend/internal/observability/metrics"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// LoginStage names the step of the callback at which a login failed.
type LoginStage string

const (
	StageAwaitingCode      LoginStage = "awaiting_code"
	StageExchangingToken   LoginStage = "exchanging_token"
	StageResolvingIdentity LoginStage = "resolving_identity"
	StageIssuingSession    LoginStage = "issuing_session"
)

// Failure reasons sent back to the app in the error query parameter.
const (
	ReasonNoCode         = "nocode"
	ReasonExchangeFailed = "exchange_failed"
	ReasonNotAuthorized  = "not_authorized"
	ReasonLookupFailed   = "lookup_failed"
	ReasonSigningFailed  = "signing_failed"
	ReasonRateLimited    = "rate_limited"
)

var reasonMessages = map[string]string{
	ReasonNoCode:         "No authorization code received",
	ReasonExchangeFailed: "Could not verify your Zoho login",
	ReasonNotAuthorized:  "You are not authorized to use this app",
	ReasonLookupFailed:   "Could not look up your employee record",
	ReasonSigningFailed:  "Could not create a session",
	ReasonRateLimited:    "Too many login attempts, try again shortly",
}

// LoginError is the absorbing failure state of a callback.
type LoginError struct {
	Stage  LoginStage
	Reason string
	Err    error
}

// ErrLoginRateLimited is reported for callbacks rejected before the code is read.
var ErrLoginRateLimited = &LoginError{Stage: StageAwaitingCode, Reason: ReasonRateLimited}

func (e *LoginError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("login failed at %s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("login failed at %s: %s: %v", e.Stage, e.Reason, e.Err)
}

func (e *LoginError) Unwrap() error { return e.Err }

// Message is the short human-readable reason placed in the failure redirect.
func (e *LoginError) Message() string {
	if msg, ok := reasonMessages[e.Reason]; ok {
		return msg
	}
	return "Login failed"
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Directory ports.DirectoryClient // Required: external OAuth directory
	Identity  *IdentityService      // Required: registry resolver
	Issuer    ports.SessionIssuer   // Required: session signer

	// DefaultRedirectURL is used when the state carries no usable target.
	DefaultRedirectURL string
	// AllowedRedirectPrefixes restricts redirect targets when non-empty.
	AllowedRedirectPrefixes []string

	Logger  *slog.Logger     // Optional: structured logger
	Metrics *metrics.Metrics // Optional: login outcome counters
}

// AuthService orchestrates the login flow: authorization URL, code exchange,
// registry resolution and session issuance.
type AuthService struct {
	directory       ports.DirectoryClient
	identity        *IdentityService
	issuer          ports.SessionIssuer
	defaultRedirect string
	allowedPrefixes []string
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Directory == nil {
		return nil, errors.New("DirectoryClient is required")
	}
	if opts.Identity == nil {
		return nil, errors.New("IdentityService is required")
	}
	if opts.Issuer == nil {
		return nil, errors.New("SessionIssuer is required")
	}
	if strings.TrimSpace(opts.DefaultRedirectURL) == "" {
		return nil, errors.New("default redirect URL is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		directory:       opts.Directory,
		identity:        opts.Identity,
		issuer:          opts.Issuer,
		defaultRedirect: strings.TrimSpace(opts.DefaultRedirectURL),
		allowedPrefixes: opts.AllowedRedirectPrefixes,
		logger:          logger,
		metrics:         opts.Metrics,
	}, nil
}

// loginState is the JSON carried through the provider in the state parameter.
type loginState struct {
	RedirectURL string `json:"redirectUrl"`
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL     string
	State       string
	RedirectURL string
}

// BeginLogin builds the provider authorization URL whose state round-trips redirect.
// An empty or disallowed redirect is replaced by the default frontend URL.
func (s *AuthService) BeginLogin(ctx context.Context, redirect string) (*BeginLoginResult, error) {
	target := s.allowedTarget(ctx, redirect)

	raw, err := json.Marshal(loginState{RedirectURL: target})
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	state := url.QueryEscape(string(raw))

	return &BeginLoginResult{
		AuthURL:     s.directory.AuthCodeURL(state),
		State:       state,
		RedirectURL: target,
	}, nil
}

// ReturnTarget decodes the redirect URL from a callback state.
// Missing, undecodable or disallowed targets fall back to the default frontend URL.
func (s *AuthService) ReturnTarget(ctx context.Context, state string) string {
	state = strings.TrimSpace(state)
	if state == "" {
		return s.defaultRedirect
	}
	if unescaped, err := url.QueryUnescape(state); err == nil {
		state = unescaped
	}

	var ls loginState
	if err := json.Unmarshal([]byte(state), &ls); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "ignoring undecodable login state", "error", err)
		}
		return s.defaultRedirect
	}
	return s.allowedTarget(ctx, ls.RedirectURL)
}

func (s *AuthService) allowedTarget(ctx context.Context, target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return s.defaultRedirect
	}
	if len(s.allowedPrefixes) == 0 {
		return target
	}
	for _, prefix := range s.allowedPrefixes {
		if strings.HasPrefix(target, prefix) {
			return target
		}
	}
	if s.logger != nil {
		s.logger.WarnContext(ctx, "redirect target not allowed, using default", "target", target)
	}
	return s.defaultRedirect
}

// CompleteLoginResult is the outcome of a successful callback.
type CompleteLoginResult struct {
	Identity model.EnrichedIdentity
	Session  domainauth.Session
	Token    string
}

// CompleteLogin runs exchange, resolution and issuance for an authorization code.
// Every failure is returned as a *LoginError.
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (*CompleteLoginResult, error) {
	res, err := s.completeLogin(ctx, code)
	if err != nil {
		var le *LoginError
		if errors.As(err, &le) {
			s.metrics.LoginOutcome(metrics.ResultError, string(le.Stage), le.Reason)
			s.logFailure(ctx, le)
		}
		return nil, err
	}
	s.metrics.LoginOutcome(metrics.ResultSuccess, "", "")
	if s.logger != nil {
		s.logger.InfoContext(ctx, "login completed", "employee_id", res.Session.SubjectID)
	}
	return res, nil
}

func (s *AuthService) completeLogin(ctx context.Context, code string) (*CompleteLoginResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, &LoginError{Stage: StageAwaitingCode, Reason: ReasonNoCode}
	}

	ext, err := s.directory.Exchange(ctx, code)
	if err != nil {
		return nil, &LoginError{Stage: StageExchangingToken, Reason: ReasonExchangeFailed, Err: err}
	}

	identity, err := s.identity.Resolve(ctx, ext.Email)
	if err != nil {
		reason := ReasonLookupFailed
		if errors.Is(err, domainauth.ErrNotAuthorized) {
			reason = ReasonNotAuthorized
		}
		return nil, &LoginError{Stage: StageResolvingIdentity, Reason: reason, Err: err}
	}

	sess, token, err := s.issuer.Issue(identity)
	if err != nil {
		return nil, &LoginError{Stage: StageIssuingSession, Reason: ReasonSigningFailed, Err: err}
	}

	return &CompleteLoginResult{Identity: identity, Session: sess, Token: token}, nil
}

func (s *AuthService) logFailure(ctx context.Context, le *LoginError) {
	if s.logger == nil {
		return
	}
	attrs := []any{
		"stage", le.Stage,
		"reason", le.Reason,
		"error_class", obserrors.Classify(le.Err),
	}
	switch le.Stage {
	case StageIssuingSession:
		s.logger.ErrorContext(ctx, "session signing failed", append(attrs, "error", le.Err)...)
	case StageResolvingIdentity:
		if le.Reason == ReasonNotAuthorized {
			s.logger.InfoContext(ctx, "login rejected", attrs...)
			return
		}
		s.logger.ErrorContext(ctx, "login failed", append(attrs, "error", le.Err)...)
	default:
		s.logger.WarnContext(ctx, "login failed", append(attrs, "error", le.Err)...)
	}
}

// SuccessRedirect appends the credential and display attributes to target.
func SuccessRedirect(target string, res *CompleteLoginResult) string {
	emp := res.Identity.Employee
	return withQuery(target, url.Values{
		"token":      {res.Token},
		"name":       {emp.Name},
		"email":      {emp.Email},
		"department": {res.Identity.DepartmentName},
		"work_phone": {res.Identity.DeviceSerial},
	})
}

// FailureRedirect appends login=failed, the reason code and a short message to target.
func FailureRedirect(target string, err error) string {
	reason, msg := "login_failed", "Login failed"
	var le *LoginError
	if errors.As(err, &le) {
		reason, msg = le.Reason, le.Message()
	}
	return withQuery(target, url.Values{
		"login": {"failed"},
		"error": {reason},
		"msg":   {msg},
	})
}

// withQuery merges params into target's query, keeping any parameters already present.
func withQuery(target string, params url.Values) string {
	u, err := url.Parse(target)
	if err != nil {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		return target + sep + params.Encode()
	}
	q := u.Query()
	for k, vs := range params {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}
