package httpx

import (
	"log/slog"
	"net/http"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/service"
)

// VersionHandlers serves the public update check.
type VersionHandlers struct {
	Svc    *service.VersionService
	Logger *slog.Logger
}

// Latest returns the newest published release.
// GET /version/latest.
func (h *VersionHandlers) Latest(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.Latest(r.Context())
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// UserDetailsHandlers serves device reports.
type UserDetailsHandlers struct {
	Svc    *service.UserDetailsService
	Logger *slog.Logger
}

// Sync upserts the caller's device report.
// POST /syncUserDetails.
func (h *UserDetailsHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	var req model.SyncUserDetailsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	out, err := h.Svc.Sync(r.Context(), &req)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User details synced",
		"user":    out,
	})
}

// List returns every device report.
// GET /getUserDetails.
func (h *UserDetailsHandlers) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	if out == nil {
		out = []*model.UserDetails{}
	}
	WriteJSON(w, http.StatusOK, out)
}
