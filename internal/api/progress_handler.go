package api

import (
	"net/http"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/store"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /api/progress
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Progress(r.Context()))
}

// GET /api/streak
func (h *Handler) getStreak(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Streak(r.Context()))
}

// POST /api/progress/reset
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetData(r.Context()); h.handleServiceError(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/settings
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Settings(r.Context()))
}

// PUT /api/settings
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req store.Settings
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SaveSettings(r.Context(), req); h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, req)
}
