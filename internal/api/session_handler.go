package api

import (
	"net/http"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type SessionStateResponse struct {
	SessionID    string         `json:"sessionId"`
	State        quiz.State     `json:"state"`
	CurrentIndex int            `json:"currentIndex"`
	Total        int            `json:"total"`
	Question     *quiz.Question `json:"question,omitempty"`
	Selected     *int           `json:"selected,omitempty"`
	Revealed     bool           `json:"revealed"`
}

type SelectAnswerRequest struct {
	Option int `json:"option"`
}

type SubmitResponse struct {
	Revealed     bool   `json:"revealed"`
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"explanation,omitempty"`
}

type AdvanceResponse struct {
	Completed bool          `json:"completed"`
	Summary   *quiz.Summary `json:"summary,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*quiz.Session, bool) {
	sess, ok := h.svc.Session(r.PathValue("sessionID"))
	if !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

// GET /api/sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	resp := SessionStateResponse{
		SessionID: sess.ID,
		State:     sess.State(),
		Total:     len(sess.Questions()),
	}
	if q, index, selected, revealed, active := sess.Current(); active {
		resp.CurrentIndex = index
		resp.Question = &q
		resp.Revealed = revealed
		if selected >= 0 {
			resp.Selected = &selected
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/sessions/{sessionID}/select
func (h *Handler) selectAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := sess.Select(req.Option); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "selected"})
}

// POST /api/sessions/{sessionID}/submit
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	revealed, err := sess.Submit()
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	resp := SubmitResponse{Revealed: revealed}
	if revealed {
		if q, _, selected, _, active := sess.Current(); active {
			resp.Correct = selected == q.CorrectIndex
			resp.CorrectIndex = q.CorrectIndex
			resp.Explanation = q.Explanation
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/sessions/{sessionID}/advance
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if _, ok := h.svc.Session(sessionID); !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	res, err := h.svc.Advance(r.Context(), sessionID)
	if h.handleServiceError(w, err) {
		return
	}

	resp := AdvanceResponse{Completed: res.Completed}
	if res.Completed {
		resp.Summary = &res.Summary
	}
	respondJSON(w, http.StatusOK, resp)
}

// POST /api/sessions/{sessionID}/retry
func (h *Handler) retrySession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if _, ok := h.svc.Session(sessionID); !ok {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	sess, err := h.svc.Retry(r.Context(), sessionID)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, GenerateQuizResponse{
		SessionID: sess.ID,
		Questions: sess.Questions(),
	})
}

// DELETE /api/sessions/{sessionID}
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	h.svc.Remove(r.PathValue("sessionID"))
	w.WriteHeader(http.StatusNoContent)
}
