package config

import (
	"errors"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Zoho OAuth, dev auth and session credential configuration
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server, redirect and rate limit configuration
//   - services.go: Service modes and call log retention
//   - observability.go: Logging and metrics
type AppConfig struct {
	// Authentication configuration
	Auth AuthConfig

	// Session credential configuration
	Session SessionConfig `envPrefix:"SESSION_"`

	// LegacyJWTSecret is the pre-gateway variable name for the session secret.
	// It is only consulted when SESSION_SECRET is empty.
	LegacyJWTSecret string `env:"JWT_SECRET,unset"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP      HTTPConfig
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"http"`

	// Retention configuration
	Retention RetentionConfig `envPrefix:"RETENTION_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Session.Sanitize()
	if c.Session.Secret == "" {
		c.Session.Secret = strings.TrimSpace(c.LegacyJWTSecret)
	}
	c.LegacyJWTSecret = ""
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.RateLimit.Sanitize()
	c.Retention.Sanitize()
	c.Observability.Sanitize()
}

// Validate enforces values that have no safe default.
func (c *AppConfig) Validate() error {
	var errs []error
	if _, err := c.GetEnabledServices(); err != nil {
		errs = append(errs, err)
	}
	if c.IsHTTPServerEnabled() {
		errs = append(errs, c.Session.Validate(), c.Auth.Validate())
	}
	return errors.Join(errs...)
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsRetentionEnabled returns true if the call log retention service is enabled.
func (c *AppConfig) IsRetentionEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeRetention]
}

func splitTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
