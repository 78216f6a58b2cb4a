package handlers

import (
	"net/http"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/http/response"
)

func (h *Handlers) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	cps, err := h.checkpointService.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, cps)
}

func (h *Handlers) GetCheckpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	cp, err := h.checkpointService.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, cp)
}

func (h *Handlers) CreateCheckpoint(w http.ResponseWriter, r *http.Request) {
	var in domain.CheckpointInput
	if !decodeJSON(w, r, &in) {
		return
	}
	cp, err := h.checkpointService.Create(r.Context(), &in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, cp)
}

func (h *Handlers) UpdateCheckpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var in domain.CheckpointInput
	if !decodeJSON(w, r, &in) {
		return
	}
	cp, err := h.checkpointService.Update(r.Context(), id, &in)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, cp)
}

func (h *Handlers) DeleteCheckpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.checkpointService.Delete(r.Context(), id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}
