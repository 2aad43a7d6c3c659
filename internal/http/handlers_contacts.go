package httpx

import (
	"log/slog"
	"net/http"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/service"
)

// ContactRequestHandlers serves personal-contact requests.
type ContactRequestHandlers struct {
	Svc    *service.ContactRequestService
	Logger *slog.Logger
}

// Submit records a new pending request.
// POST /requestAsPersonal.
func (h *ContactRequestHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	out, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Request submitted successfully",
		"id":      out.ID,
	})
}

// Pending lists requests awaiting review.
// GET /getPendingRequests.
func (h *ContactRequestHandlers) Pending(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.Pending(r.Context())
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	if out == nil {
		out = []*model.ContactRequest{}
	}
	WriteJSON(w, http.StatusOK, out)
}

// UpdateStatus applies a review decision.
// PUT /updateRequestStatus.
func (h *ContactRequestHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateContactRequestStatus
	if !DecodeJSON(w, r, &req) {
		return
	}
	out, err := h.Svc.UpdateStatus(r.Context(), &req)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Request status updated",
		"data":    out,
	})
}
