package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses Zoho OAuth for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains the Zoho Accounts OAuth client configuration.
type OAuthConfig struct {
	ClientID       string   `env:"CLIENT_ID"`
	ClientSecret   string   `env:"CLIENT_SECRET"`
	RedirectURL    string   `env:"REDIRECT_URL"     envDefault:"http://localhost:8080/auth/zoho/callback"`
	Scopes         []string `env:"SCOPES"           envDefault:"openid,email,profile" envSeparator:","`
	ScopeSeparator string   `env:"SCOPE_SEPARATOR"  envDefault:","`
	AuthURL        string   `env:"AUTH_URL"         envDefault:"https://accounts.zoho.com/oauth/v2/auth"`
	TokenURL       string   `env:"TOKEN_URL"        envDefault:"https://accounts.zoho.com/oauth/v2/token"`
	AccessType     string   `env:"ACCESS_TYPE"      envDefault:"offline"`
	// DiscoveryURL enables id_token signature verification when set.
	DiscoveryURL string `env:"DISCOVERY_URL"`
	// EmailClaim is a JMESPath expression selecting the email from the id_token claims.
	EmailClaim      string        `env:"EMAIL_CLAIM"      envDefault:"email"`
	ExchangeTimeout time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email       string `env:"EMAIL"`
	CallbackURL string `env:"CALLBACK_URL" envDefault:"/auth/zoho/callback"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which directory client to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize trims values and restores defaults erased by empty env vars.
func (a *AuthConfig) Sanitize() {
	o := &a.OAuth
	o.ClientID = strings.TrimSpace(o.ClientID)
	o.ClientSecret = strings.TrimSpace(o.ClientSecret)
	o.Scopes = splitTrimmed(o.Scopes)
	if o.ScopeSeparator == "" {
		o.ScopeSeparator = ","
	}
	if strings.TrimSpace(o.EmailClaim) == "" {
		o.EmailClaim = "email"
	}
	if o.ExchangeTimeout <= 0 {
		o.ExchangeTimeout = 10 * time.Second
	}
	if o.ExchangeTimeout > time.Minute {
		o.ExchangeTimeout = time.Minute
	}
	a.DevAuth.Email = strings.TrimSpace(a.DevAuth.Email)
}

// Validate checks that the selected mode has what it needs.
func (a *AuthConfig) Validate() error {
	switch a.Mode {
	case AuthModeMock:
		if a.DevAuth.Email == "" {
			return errors.New("DEV_AUTH_EMAIL is required when AUTH_MODE=mock")
		}
	default:
		if a.OAuth.ClientID == "" || a.OAuth.ClientSecret == "" {
			return errors.New("OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET are required when AUTH_MODE=oauth")
		}
		if a.OAuth.RedirectURL == "" {
			return errors.New("OAUTH_REDIRECT_URL is required when AUTH_MODE=oauth")
		}
	}
	return nil
}

const minSessionSecretLen = 16

// SessionConfig controls signing of the session credential handed to the mobile app.
type SessionConfig struct {
	// Secret is the HS256 signing key.
	Secret string `env:"SECRET"`
	// TTL is the credential validity window. The app expects 180 days.
	TTL    time.Duration `env:"TTL"    envDefault:"4320h"`
	Issuer string        `env:"ISSUER" envDefault:"callyn-backend"`
}

// Sanitize trims the secret and restores defaults.
func (s *SessionConfig) Sanitize() {
	s.Secret = strings.TrimSpace(s.Secret)
	if s.TTL <= 0 {
		s.TTL = 4320 * time.Hour
	}
	if strings.TrimSpace(s.Issuer) == "" {
		s.Issuer = "callyn-backend"
	}
}

// Validate requires a signing secret of reasonable length.
func (s *SessionConfig) Validate() error {
	if s.Secret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if len(s.Secret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLen)
	}
	return nil
}
