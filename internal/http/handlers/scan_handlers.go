package handlers

import (
	"errors"
	"net/http"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
)

func (h *Handlers) Scan(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req domain.ScanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.scanService.Scan(r.Context(), userID, &req)
	if errors.Is(err, domain.ErrGeofenceRejected) && resp != nil {
		response.WriteErrorWithDetails(w, http.StatusUnprocessableEntity, resp.Reason, response.CodeGeofenceRejected, nil, resp)
		return
	}
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) ListAttendance(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	recs, err := h.attendanceService.ListRecent(r.Context(), limit, offset)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, recs)
}

func (h *Handlers) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}
