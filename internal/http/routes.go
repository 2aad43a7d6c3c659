package httpx

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/milestone2github/callyn-backend/internal/observability/metrics"
	"github.com/milestone2github/callyn-backend/internal/ports"
	"github.com/milestone2github/callyn-backend/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     AuthFlow              // Required
	Verifier ports.SessionVerifier // Required: gates every protected route

	CallLogs    *service.CallLogService
	Contacts    *service.ContactRequestService
	Versions    *service.VersionService
	UserDetails *service.UserDetailsService

	// Optional: throttles /auth/* per client IP.
	AuthLimiter ports.RateLimiter
	// Optional: reverse proxies whose X-Forwarded-For identifies the client.
	TrustedProxies []netip.Prefix
	// Optional: request counters and the /metrics endpoint.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewRouter creates the ServeMux with every route and the shared middleware chain.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	protect := RequireAuth(services.Verifier)
	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: logger}
	limit := RateLimitOptions{
		Limiter:        services.AuthLimiter,
		Scope:          "auth",
		Metrics:        services.Metrics,
		Logger:         logger,
		TrustedProxies: services.TrustedProxies,
	}
	throttle := RateLimit(limit)
	// The callback is a browser redirect; a rejection there must still land in the app.
	limit.OnReject = http.HandlerFunc(authHandlers.CallbackThrottled)
	throttleCallback := RateLimit(limit)

	registerAuthRoutes(mux, authHandlers, protect, throttle, throttleCallback)
	if services.CallLogs != nil {
		registerCallLogRoutes(mux, &CallLogHandlers{Svc: services.CallLogs, Logger: logger}, protect)
	}
	if services.Contacts != nil {
		registerContactRoutes(mux, &ContactRequestHandlers{Svc: services.Contacts, Logger: logger}, protect)
	}
	if services.UserDetails != nil {
		registerUserDetailsRoutes(mux, &UserDetailsHandlers{Svc: services.UserDetails, Logger: logger}, protect)
	}
	if services.Versions != nil {
		mux.Handle("GET /version/latest", http.HandlerFunc((&VersionHandlers{Svc: services.Versions, Logger: logger}).Latest))
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = Metrics(services.Metrics)(handler)
	handler = Logging(logger)(handler)
	return Recover(logger)(handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, protect, throttle, throttleCallback func(http.Handler) http.Handler) {
	mux.Handle("GET /auth/zoho", throttle(http.HandlerFunc(h.Login)))
	mux.Handle("GET /auth/zoho/callback", throttleCallback(http.HandlerFunc(h.Callback)))
	mux.Handle("GET /auth/me", protect(http.HandlerFunc(h.Me)))
}

func registerCallLogRoutes(mux *http.ServeMux, h *CallLogHandlers, protect func(http.Handler) http.Handler) {
	mux.Handle("POST /uploadCallLog", protect(http.HandlerFunc(h.Upload)))
	mux.Handle("GET /getCallLogs", protect(http.HandlerFunc(h.List)))
}

func registerContactRoutes(mux *http.ServeMux, h *ContactRequestHandlers, protect func(http.Handler) http.Handler) {
	mux.Handle("POST /requestAsPersonal", protect(http.HandlerFunc(h.Submit)))
	mux.Handle("GET /getPendingRequests", protect(http.HandlerFunc(h.Pending)))
	mux.Handle("PUT /updateRequestStatus", protect(http.HandlerFunc(h.UpdateStatus)))
}

func registerUserDetailsRoutes(mux *http.ServeMux, h *UserDetailsHandlers, protect func(http.Handler) http.Handler) {
	mux.Handle("POST /syncUserDetails", protect(http.HandlerFunc(h.Sync)))
	mux.Handle("GET /getUserDetails", protect(http.HandlerFunc(h.List)))
}
