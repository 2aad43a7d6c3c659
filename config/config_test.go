package config

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:     "single service - http",
			input:    "http",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true},
		},
		{
			name:     "single service - retention",
			input:    "retention",
			expected: map[ServiceMode]bool{ServiceModeRetention: true},
		},
		{
			name:  "services with spaces and duplicates",
			input: " http , retention , http ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:      true,
				ServiceModeRetention: true,
			},
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,scheduler",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		services          string
		expectedHTTP      bool
		expectedRetention bool
	}{
		{services: "http", expectedHTTP: true},
		{services: "retention", expectedRetention: true},
		{services: "http,retention", expectedHTTP: true, expectedRetention: true},
		{services: "invalid-service"},
	}

	for _, tt := range tests {
		t.Run(tt.services, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}

			if cfg.IsHTTPServerEnabled() != tt.expectedHTTP {
				t.Errorf("IsHTTPServerEnabled(): expected %v, got %v", tt.expectedHTTP, cfg.IsHTTPServerEnabled())
			}
			if cfg.IsRetentionEnabled() != tt.expectedRetention {
				t.Errorf("IsRetentionEnabled(): expected %v, got %v", tt.expectedRetention, cfg.IsRetentionEnabled())
			}
		})
	}
}

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "OAUTH")
	t.Setenv("OAUTH_CLIENT_ID", "zoho-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "zoho-secret")
	t.Setenv("OAUTH_REDIRECT_URL", "https://callyn.example.com/auth/zoho/callback")
	t.Setenv("OAUTH_SCOPES", "openid,email")
	t.Setenv("OAUTH_EMAIL_CLAIM", "profile.mail")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOAuth,
		OAuth: OAuthConfig{
			ClientID:        "zoho-client",
			ClientSecret:    "zoho-secret",
			RedirectURL:     "https://callyn.example.com/auth/zoho/callback",
			Scopes:          []string{"openid", "email"},
			ScopeSeparator:  ",",
			AuthURL:         "https://accounts.zoho.com/oauth/v2/auth",
			TokenURL:        "https://accounts.zoho.com/oauth/v2/token",
			AccessType:      "offline",
			EmailClaim:      "profile.mail",
			ExchangeTimeout: 10 * time.Second,
		},
		DevAuth: DevAuthConfig{
			Email:       "dev@example.com",
			CallbackURL: "/auth/zoho/callback",
		},
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAuthMode_UnmarshalTextRejectsUnknown(t *testing.T) {
	var m AuthMode
	if err := m.UnmarshalText([]byte("saml")); err == nil {
		t.Fatal("expected error for unknown auth mode")
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Session.TTL != 4320*time.Hour {
		t.Errorf("expected 180 day session TTL, got %v", cfg.Session.TTL)
	}
	if cfg.Session.Issuer != "callyn-backend" {
		t.Errorf("unexpected issuer %q", cfg.Session.Issuer)
	}
	if cfg.Retention.CallLogMaxAge != 2160*time.Hour {
		t.Errorf("expected 90 day retention, got %v", cfg.Retention.CallLogMaxAge)
	}
	if cfg.HTTP.AllowedRedirectPrefixes == nil || len(cfg.HTTP.AllowedRedirectPrefixes) != 0 {
		t.Errorf("expected empty allowlist, got %#v", cfg.HTTP.AllowedRedirectPrefixes)
	}
	if cfg.Observability.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.Observability.SlogLevel())
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled by default")
	}
}

func TestAppConfig_SessionSecretFallback(t *testing.T) {
	t.Run("legacy variable used when session secret empty", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "  legacy-secret-value-123  ")

		var cfg AppConfig
		if err := env.Parse(&cfg); err != nil {
			t.Fatalf("parse config: %v", err)
		}
		cfg.Sanitize()

		if cfg.Session.Secret != "legacy-secret-value-123" {
			t.Fatalf("expected legacy secret, got %q", cfg.Session.Secret)
		}
		if cfg.LegacyJWTSecret != "" {
			t.Fatal("expected legacy field to be cleared")
		}
	})

	t.Run("session secret wins", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "legacy-secret-value-123")
		t.Setenv("SESSION_SECRET", "session-secret-value-456")

		var cfg AppConfig
		if err := env.Parse(&cfg); err != nil {
			t.Fatalf("parse config: %v", err)
		}
		cfg.Sanitize()

		if cfg.Session.Secret != "session-secret-value-456" {
			t.Fatalf("expected session secret, got %q", cfg.Session.Secret)
		}
	})
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			Services: "http",
			Session:  SessionConfig{Secret: "0123456789abcdef"},
			Auth: AuthConfig{
				Mode: AuthModeOAuth,
				OAuth: OAuthConfig{
					ClientID:     "id",
					ClientSecret: "secret",
					RedirectURL:  "https://x/cb",
				},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{
			name:    "missing secret",
			mutate:  func(c *AppConfig) { c.Session.Secret = "" },
			wantErr: "SESSION_SECRET is required",
		},
		{
			name:    "short secret",
			mutate:  func(c *AppConfig) { c.Session.Secret = "short" },
			wantErr: "at least 16",
		},
		{
			name:    "missing oauth client",
			mutate:  func(c *AppConfig) { c.Auth.OAuth.ClientSecret = "" },
			wantErr: "OAUTH_CLIENT_ID",
		},
		{
			name: "mock mode needs email",
			mutate: func(c *AppConfig) {
				c.Auth.Mode = AuthModeMock
			},
			wantErr: "DEV_AUTH_EMAIL",
		},
		{
			name: "retention only skips auth checks",
			mutate: func(c *AppConfig) {
				c.Services = "retention"
				c.Session.Secret = ""
			},
		},
		{
			name:    "bad services",
			mutate:  func(c *AppConfig) { c.Services = "nope" },
			wantErr: "invalid service name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRetentionConfig_Sanitize(t *testing.T) {
	cfg := RetentionConfig{Interval: time.Second, CallLogMaxAge: time.Minute, BatchSize: 50000}
	cfg.Sanitize()

	if cfg.Interval != time.Minute {
		t.Errorf("expected interval clamp, got %v", cfg.Interval)
	}
	if cfg.CallLogMaxAge != 24*time.Hour {
		t.Errorf("expected max age clamp, got %v", cfg.CallLogMaxAge)
	}
	if cfg.BatchSize != 10000 {
		t.Errorf("expected batch size clamp, got %d", cfg.BatchSize)
	}
}

func TestObservabilityConfig_Sanitize(t *testing.T) {
	cases := map[string]slog.Level{
		" DEBUG ": slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := ObservabilityConfig{LogLevel: in}
		cfg.Sanitize()
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestHTTPConfig_SanitizeAllowlist(t *testing.T) {
	cfg := HTTPConfig{AllowedRedirectPrefixes: []string{" callyn:// ", "", "https://app.example.com/"}}
	cfg.Sanitize()

	want := []string{"callyn://", "https://app.example.com/"}
	if !reflect.DeepEqual(cfg.AllowedRedirectPrefixes, want) {
		t.Errorf("expected %v, got %v", want, cfg.AllowedRedirectPrefixes)
	}
	if cfg.DefaultFrontendURL != "callyn://auth" {
		t.Errorf("expected default frontend, got %q", cfg.DefaultFrontendURL)
	}
}
