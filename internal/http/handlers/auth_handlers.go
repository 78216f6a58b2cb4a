package handlers

import (
	"net/http"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/http/middleware"
	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req, middleware.ClientIP(r))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	info, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, info)
}
