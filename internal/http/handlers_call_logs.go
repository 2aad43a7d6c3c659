package httpx

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	apperrors "github.com/milestone2github/callyn-backend/internal/errors"
	"github.com/milestone2github/callyn-backend/internal/service"
)

// CallLogHandlers serves call log upload and listing.
type CallLogHandlers struct {
	Svc    *service.CallLogService
	Logger *slog.Logger
}

// Upload stores one call for the signed-in user.
// POST /uploadCallLog.
func (h *CallLogHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCallLogRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	var uploadedBy string
	if s := GetSessionFromContext(r.Context()); s != nil {
		uploadedBy = s.Name
	}

	out, err := h.Svc.Upload(r.Context(), &req, uploadedBy)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Call log saved successfully",
		"id":      out.ID,
	})
}

// List returns call logs filtered by the query string.
// GET /getCallLogs?rshipManagerName=&uploadedBy=&date=YYYY-MM-DD&limit=&offset=.
func (h *CallLogHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	offset, err := intParam(q.Get("offset"), "offset")
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}

	res, err := h.Svc.List(r.Context(), service.ListCallLogsInput{
		RshipManagerName: q.Get("rshipManagerName"),
		UploadedBy:       q.Get("uploadedBy"),
		Date:             q.Get("date"),
		Limit:            limit,
		Offset:           offset,
	})
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	logs := res.Logs
	if logs == nil {
		logs = []*model.CallLog{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"count": len(logs), "total": res.Total, "data": logs})
}

// intParam parses an optional non-negative integer query value; empty is 0.
func intParam(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.ValidationField(field, field+" must be a non-negative integer")
	}
	return n, nil
}
