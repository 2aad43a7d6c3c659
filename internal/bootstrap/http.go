package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/milestone2github/callyn-backend/config"
	httpx "github.com/milestone2github/callyn-backend/internal/http"
)

// NewHTTPServer builds the gateway server around the router.
func NewHTTPServer(cfg *config.AppConfig, svcs *ServiceContainer, logger *slog.Logger) (*http.Server, error) {
	if svcs == nil || svcs.Auth == nil || svcs.Sessions == nil {
		return nil, errors.New("http services are not initialized")
	}

	proxies, err := ParseTrustedProxies(cfg.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:           svcs.Auth,
		Verifier:       svcs.Sessions,
		CallLogs:       svcs.CallLogs,
		Contacts:       svcs.Contacts,
		Versions:       svcs.Versions,
		UserDetails:    svcs.UserDetails,
		AuthLimiter:    svcs.Limiters.Auth,
		TrustedProxies: proxies,
		Metrics:        svcs.Metrics,
		Logger:         logger,
	})

	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           otelhttp.NewHandler(router, "callyn-backend"),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}, nil
}

// ParseTrustedProxies accepts CIDRs and bare addresses; a bare address trusts that host only.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// ShutdownHTTPServer gracefully shuts down the HTTP server within timeout.
func ShutdownHTTPServer(ctx context.Context, srv *http.Server, cfg *config.AppConfig, logger *slog.Logger) error {
	if srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if logger != nil {
		logger.InfoContext(ctx, "shutting down HTTP server")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
