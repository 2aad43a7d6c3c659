package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/milestone2github/callyn-backend/config"
	"github.com/milestone2github/callyn-backend/internal/observability/metrics"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// RetentionServiceOptions groups dependencies for RetentionService.
type RetentionServiceOptions struct {
	Purger  ports.CallLogPurger    // Required: call log store
	Config  config.RetentionConfig // Required: interval, max age and batch size
	Logger  *slog.Logger           // Optional: structured logger
	Metrics *metrics.Metrics       // Optional: sweep counters
	Now     func() time.Time       // Optional: clock, defaults to time.Now
}

// RetentionService periodically deletes call logs older than the configured max age.
type RetentionService struct {
	purger  ports.CallLogPurger
	config  config.RetentionConfig
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRetentionService constructs a new RetentionService.
func NewRetentionService(opts RetentionServiceOptions) (*RetentionService, error) {
	if opts.Purger == nil {
		return nil, errors.New("CallLogPurger is required")
	}
	if opts.Config.Interval <= 0 {
		return nil, errors.New("retention interval must be positive")
	}
	if opts.Config.CallLogMaxAge <= 0 {
		return nil, errors.New("call log max age must be positive")
	}
	if opts.Config.BatchSize <= 0 {
		return nil, errors.New("retention batch size must be positive")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "retention_service")
		logger.Debug("RetentionService initialized",
			"interval", opts.Config.Interval,
			"call_log_max_age", opts.Config.CallLogMaxAge,
			"batch_size", opts.Config.BatchSize,
		)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &RetentionService{
		purger:  opts.Purger,
		config:  opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
		now:     now,
	}, nil
}

// Run sweeps once after a short jitter and then on every interval until ctx is done.
// Returns nil on graceful shutdown (context.Canceled).
func (s *RetentionService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting retention service", "interval", s.config.Interval)
	}

	// Spread sweeps of replicas started together.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if _, err := s.Sweep(ctx); err != nil {
		s.logSweepError(err, "initial sweep")
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "retention service stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logSweepError(err, "sweep")
			}
		}
	}
}

// waitWithJitter sleeps up to 10% of the interval.
func (s *RetentionService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "error", err)
		}
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	timer := time.NewTimer(jitter)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Sweep deletes expired call logs in batches until a batch comes back empty.
// It returns the number of rows removed.
func (s *RetentionService) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.config.CallLogMaxAge)

	var total int64
	var err error
	for {
		var n int64
		n, err = s.purger.DeleteUploadedBefore(ctx, cutoff, s.config.BatchSize)
		if err != nil {
			err = fmt.Errorf("delete call logs uploaded before %s: %w", cutoff.Format(time.RFC3339), err)
			break
		}
		total += n
		if n < int64(s.config.BatchSize) {
			break
		}
		if ctx.Err() != nil {
			err = ctx.Err()
			break
		}
	}

	s.metrics.RetentionRun(total, suppressContextCancellation(err))
	if total > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "deleted expired call logs",
			"count", total,
			"max_age", s.config.CallLogMaxAge,
		)
	}
	return total, err
}

func (s *RetentionService) logSweepError(err error, label string) {
	if err == nil || s.logger == nil {
		return
	}
	if isContextCancellation(err) {
		s.logger.Debug(label+" cancelled by context", "error", err)
		return
	}
	s.logger.Error(label+" failed", "error", err)
}

func isContextCancellation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func suppressContextCancellation(err error) error {
	if isContextCancellation(err) {
		return nil
	}
	return err
}
