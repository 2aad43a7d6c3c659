package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DefaultFrontendURL is where the callback redirects when the login state
	// carries no usable redirect target.
	DefaultFrontendURL string `env:"DEFAULT_FRONTEND_URL" envDefault:"callyn://auth"`

	// AllowedRedirectPrefixes restricts callback redirect targets.
	// Empty allows any target.
	AllowedRedirectPrefixes []string `env:"ALLOWED_REDIRECT_PREFIXES" envSeparator:","`

	// TrustedProxies are CIDRs or addresses of reverse proxies whose X-Forwarded-For
	// header names the client for rate limiting. Empty trusts no one.
	TrustedProxies []string `env:"HTTP_TRUSTED_PROXIES" envSeparator:","`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	h.DefaultFrontendURL = strings.TrimSpace(h.DefaultFrontendURL)
	if h.DefaultFrontendURL == "" {
		h.DefaultFrontendURL = "callyn://auth"
	}
	h.AllowedRedirectPrefixes = splitTrimmed(h.AllowedRedirectPrefixes)
	h.TrustedProxies = splitTrimmed(h.TrustedProxies)
	if h.ReadHeaderTimeout <= 0 {
		h.ReadHeaderTimeout = 10 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}

// RateLimitConfig controls per-client throttling of the /auth endpoints.
type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Limit   int           `env:"LIMIT"   envDefault:"30"`
	Window  time.Duration `env:"WINDOW"  envDefault:"1m"`
}

// Sanitize clamps the limiter to at least one request per second-long window.
func (r *RateLimitConfig) Sanitize() {
	if r.Limit < 1 {
		r.Limit = 1
	}
	if r.Window < time.Second {
		r.Window = time.Second
	}
}
