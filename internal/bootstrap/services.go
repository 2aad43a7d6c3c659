package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/milestone2github/callyn-backend/config"
	"github.com/milestone2github/callyn-backend/internal/adapters/jwtsession"
	"github.com/milestone2github/callyn-backend/internal/data"
	"github.com/milestone2github/callyn-backend/internal/observability/metrics"
	"github.com/milestone2github/callyn-backend/internal/ports"
	"github.com/milestone2github/callyn-backend/internal/service"
)

// ServiceContainer holds everything the enabled service modes run on.
type ServiceContainer struct {
	Auth        *service.AuthService
	Sessions    *jwtsession.Codec
	CallLogs    *service.CallLogService
	Contacts    *service.ContactRequestService
	Versions    *service.VersionService
	UserDetails *service.UserDetailsService
	Retention   *service.RetentionService
	Limiters    RateLimiters
	Metrics     *metrics.Metrics
}

// ServiceDependencies contains the infrastructure handed to NewServices.
type ServiceDependencies struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger

	// Directory overrides the client chosen from AUTH_MODE. Tests use it.
	Directory ports.DirectoryClient
	// Registry is where metrics are registered. Defaults to a fresh registry.
	Registry *prometheus.Registry
}

// NewServices wires repositories and services for the enabled service modes.
func NewServices(ctx context.Context, deps ServiceDependencies) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.DB == nil {
		return nil, data.ErrDBRequired
	}
	cfg := deps.Config

	m, err := newMetrics(cfg, deps.Registry)
	if err != nil {
		return nil, err
	}
	container := &ServiceContainer{Metrics: m}

	if cfg.IsHTTPServerEnabled() {
		if err := buildHTTPServices(ctx, deps, container); err != nil {
			return nil, err
		}
	}

	if cfg.IsRetentionEnabled() {
		retention, err := service.NewRetentionService(service.RetentionServiceOptions{
			Purger:  data.NewCallLogRepo(deps.DB),
			Config:  cfg.Retention,
			Logger:  deps.Logger,
			Metrics: m,
		})
		if err != nil {
			return nil, fmt.Errorf("retention service: %w", err)
		}
		container.Retention = retention
	}

	return container, nil
}

func newMetrics(cfg *config.AppConfig, reg *prometheus.Registry) (*metrics.Metrics, error) {
	if !cfg.Observability.MetricsEnabled {
		return nil, nil
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return m, nil
}

func buildHTTPServices(ctx context.Context, deps ServiceDependencies, c *ServiceContainer) error {
	cfg := deps.Config

	directory := deps.Directory
	if directory == nil {
		var err error
		directory, err = BuildDirectoryClient(ctx, cfg.Auth, deps.Logger)
		if err != nil {
			return err
		}
	}

	codec, err := jwtsession.New(jwtsession.Options{
		Secret: []byte(cfg.Session.Secret),
		Issuer: cfg.Session.Issuer,
		TTL:    cfg.Session.TTL,
	})
	if err != nil {
		return fmt.Errorf("session codec: %w", err)
	}

	identity, err := service.NewIdentityService(service.IdentityServiceOptions{
		Directory: data.NewEmployeeRepo(deps.DB),
		Logger:    deps.Logger,
	})
	if err != nil {
		return fmt.Errorf("identity service: %w", err)
	}

	auth, err := service.NewAuthService(service.AuthServiceOptions{
		Directory:               directory,
		Identity:                identity,
		Issuer:                  codec,
		DefaultRedirectURL:      cfg.HTTP.DefaultFrontendURL,
		AllowedRedirectPrefixes: cfg.HTTP.AllowedRedirectPrefixes,
		Logger:                  deps.Logger,
		Metrics:                 c.Metrics,
	})
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}

	limiters, err := BuildRateLimiters(cfg.RateLimit, deps.RedisClient, deps.Logger)
	if err != nil {
		return err
	}

	c.Auth = auth
	c.Sessions = codec
	c.Limiters = limiters
	c.CallLogs = service.NewCallLogService(service.CallLogServiceOptions{
		Repo:   data.NewCallLogRepo(deps.DB),
		Logger: deps.Logger,
	})
	c.Contacts = service.NewContactRequestService(service.ContactRequestServiceOptions{
		Repo:   data.NewContactRequestRepo(deps.DB),
		Logger: deps.Logger,
	})
	c.Versions = service.NewVersionService(data.NewVersionRepo(deps.DB))
	c.UserDetails = service.NewUserDetailsService(service.UserDetailsServiceOptions{
		Repo:   data.NewUserDetailsRepo(deps.DB),
		Logger: deps.Logger,
	})
	return nil
}
