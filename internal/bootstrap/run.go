package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/milestone2github/callyn-backend/config"
)

const limiterSweepInterval = time.Minute

// RunServices runs every enabled service mode until ctx is canceled or one of them fails.
func RunServices(ctx context.Context, cfg *config.AppConfig, svcs *ServiceContainer, logger *slog.Logger) error {
	group, gctx := errgroup.WithContext(ctx)

	if cfg.IsHTTPServerEnabled() {
		srv, err := NewHTTPServer(cfg, svcs, logger)
		if err != nil {
			return err
		}

		group.Go(func() error {
			logger.InfoContext(gctx, "HTTP server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		group.Go(func() error {
			<-gctx.Done()
			return ShutdownHTTPServer(gctx, srv, cfg, logger)
		})

		if mem := svcs.Limiters.Memory; mem != nil {
			group.Go(func() error {
				mem.Run(gctx, limiterSweepInterval)
				return nil
			})
		}
	}

	if cfg.IsRetentionEnabled() && svcs.Retention != nil {
		group.Go(func() error {
			return svcs.Retention.Run(gctx)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	logger.InfoContext(ctx, "all services stopped")
	return nil
}
