package handlers

import (
	"net/http"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
)

func (h *Handlers) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, err := h.reportService.Monthly(r.Context(), q.Get("month"), q.Get("year"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handlers) MatrixReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, err := h.reportService.Matrix(r.Context(), q.Get("month"), q.Get("year"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handlers) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := h.scheduleService.Get(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, s)
}

func (h *Handlers) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var in domain.ScheduleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	s, err := h.scheduleService.Update(r.Context(), &in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, s)
}
