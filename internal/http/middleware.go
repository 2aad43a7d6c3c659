package httpx

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime/debug"
	"strings"
	"time"

	"github.com/milestone2github/callyn-backend/internal/observability/metrics"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// Logging returns a middleware that logs HTTP requests and responses.
// Query strings are never logged; the callback carries credentials there.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: "internal",
						Err:     errors.New("internal server error"),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Metrics records request counts and latencies labelled by the matched route pattern.
// It must wrap the ServeMux directly so the pattern is visible after dispatch.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := m.HTTPStarted()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			done(r.Method, route, ww.status)
		})
	}
}

// RequireAuth returns a middleware that requires a valid bearer credential.
// A missing credential is authentication_required; anything the verifier rejects
// (bad signature, wrong issuer, expired) is invalid_token. Neither response
// carries any part of the decoded token.
func RequireAuth(verifier ports.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			session, err := verifier.Verify(token)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "invalid_token",
					Err:     errors.New("invalid or expired token"),
				})
				return
			}

			ctx := SetSessionInContext(r.Context(), &session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RateLimitOptions configures the RateLimit middleware.
type RateLimitOptions struct {
	Limiter ports.RateLimiter // Required
	Scope   string            // Metric label and key prefix
	Metrics *metrics.Metrics  // Optional
	Logger  *slog.Logger      // Optional

	// OnReject answers denied requests. Defaults to a JSON 429.
	OnReject http.Handler
	// TrustedProxies lists the peers whose X-Forwarded-For is believed.
	// Empty keys every client on RemoteAddr.
	TrustedProxies []netip.Prefix
}

// RateLimit rejects clients, keyed by client IP, once the limiter denies them.
// Limiter errors fail open.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	reject := opts.OnReject
	if reject == nil {
		reject = http.HandlerFunc(writeRateLimited)
	}
	return func(next http.Handler) http.Handler {
		if opts.Limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.Scope + ":" + clientIP(r, opts.TrustedProxies)
			allowed, err := opts.Limiter.Allow(r.Context(), key)
			if err != nil {
				if opts.Logger != nil {
					opts.Logger.WarnContext(r.Context(), "rate limiter unavailable, allowing request",
						"scope", opts.Scope, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				opts.Metrics.RateLimited(opts.Scope)
				reject.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeRateLimited(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusTooManyRequests,
		ErrCode: "rate_limited",
		Err:     errors.New("too many requests, try again later"),
	})
}

// clientIP returns the peer address, or when the peer is a trusted proxy, the
// rightmost X-Forwarded-For hop that is not itself trusted.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(peer); err == nil {
		peer = host
	}
	if len(trusted) == 0 || !isTrusted(peer, trusted) {
		return peer
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			// Garbage in the chain; stop at the last address we can vouch for.
			return peer
		}
		if !isTrusted(hop, trusted) {
			return hop
		}
		peer = hop
	}
	return peer
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
