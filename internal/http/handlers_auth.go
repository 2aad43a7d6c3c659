package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/milestone2github/callyn-backend/internal/service"
)

// AuthFlow is the login pipeline used by AuthHandlers.
type AuthFlow interface {
	BeginLogin(ctx context.Context, redirect string) (*service.BeginLoginResult, error)
	ReturnTarget(ctx context.Context, state string) string
	CompleteLogin(ctx context.Context, code string) (*service.CompleteLoginResult, error)
}

var _ AuthFlow = (*service.AuthService)(nil)

// AuthHandlers provides HTTP handlers for the Zoho login flow.
type AuthHandlers struct {
	Svc    AuthFlow
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login returns the provider authorization URL for the app to open.
// GET /auth/zoho?redirect=<target>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.BeginLogin(r.Context(), r.URL.Query().Get("redirect"))
	if err != nil {
		h.logger().ErrorContext(r.Context(), "begin login failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     errors.New("could not start login"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"authUrl": result.AuthURL})
}

// Callback finishes the provider round trip and redirects to the target carried in state,
// with either the session credential or the failure reason in the query.
// GET /auth/zoho/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target := h.Svc.ReturnTarget(r.Context(), q.Get("state"))

	result, err := h.Svc.CompleteLogin(r.Context(), q.Get("code"))
	if err != nil {
		http.Redirect(w, r, service.FailureRedirect(target, err), http.StatusFound)
		return
	}

	http.Redirect(w, r, service.SuccessRedirect(target, result), http.StatusFound)
}

// CallbackThrottled answers a rate-limited callback with the usual failure redirect.
func (h *AuthHandlers) CallbackThrottled(w http.ResponseWriter, r *http.Request) {
	target := h.Svc.ReturnTarget(r.Context(), r.URL.Query().Get("state"))
	http.Redirect(w, r, service.FailureRedirect(target, service.ErrLoginRateLimited), http.StatusFound)
}

// Me returns the display name of the verified session.
// GET /auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil || strings.TrimSpace(session.Name) == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "invalid_token",
			Err:     errors.New("session has no user name"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"name": session.Name})
}
