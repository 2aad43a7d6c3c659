package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/milestone2github/callyn-backend/config"
	"github.com/milestone2github/callyn-backend/internal/adapters/devauth"
	"github.com/milestone2github/callyn-backend/internal/adapters/oidc"
	"github.com/milestone2github/callyn-backend/internal/adapters/ratelimit"
	redisadapter "github.com/milestone2github/callyn-backend/internal/adapters/redis"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// BuildDirectoryClient selects the Zoho client or the dev provider from the auth mode.
//
//nolint:ireturn // the concrete client depends on AUTH_MODE.
func BuildDirectoryClient(ctx context.Context, cfg config.AuthConfig, logger *slog.Logger) (ports.DirectoryClient, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		if logger != nil {
			logger.WarnContext(ctx, "dev auth mode enabled; every login asserts DEV_AUTH_EMAIL")
		}
		prov, err := devauth.NewProvider(devauth.Config{
			Email:       cfg.DevAuth.Email,
			CallbackURL: cfg.DevAuth.CallbackURL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev auth provider: %w", err)
		}
		return prov, nil

	default:
		o := cfg.OAuth
		prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:        o.ClientID,
			ClientSecret:    o.ClientSecret,
			RedirectURL:     o.RedirectURL,
			Scopes:          o.Scopes,
			ScopeSeparator:  o.ScopeSeparator,
			AuthURL:         o.AuthURL,
			TokenURL:        o.TokenURL,
			DiscoveryURL:    o.DiscoveryURL,
			EmailClaim:      o.EmailClaim,
			AccessType:      o.AccessType,
			ExchangeTimeout: o.ExchangeTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("zoho oauth provider: %w", err)
		}
		return prov, nil
	}
}

// RateLimiters holds the limiter used by the router and, when in-process,
// the concrete limiter whose idle buckets must be swept.
type RateLimiters struct {
	Auth   ports.RateLimiter
	Memory *ratelimit.MemoryLimiter
}

// BuildRateLimiters prefers the shared redis limiter and falls back to an in-process one.
func BuildRateLimiters(cfg config.RateLimitConfig, client redis.UniversalClient, logger *slog.Logger) (RateLimiters, error) {
	if !cfg.Enabled {
		return RateLimiters{}, nil
	}
	if client != nil {
		rl, err := redisadapter.NewRateLimiter(client, redisadapter.RateLimiterOptions{
			Limit:  cfg.Limit,
			Window: cfg.Window,
			Prefix: "callyn:ratelimit:",
		})
		if err != nil {
			return RateLimiters{}, fmt.Errorf("redis rate limiter: %w", err)
		}
		return RateLimiters{Auth: rl}, nil
	}

	if logger != nil {
		logger.Info("redis disabled; using in-process rate limiter")
	}
	mem := ratelimit.NewMemoryLimiter(cfg.Limit, cfg.Window)
	return RateLimiters{Auth: mem, Memory: mem}, nil
}
