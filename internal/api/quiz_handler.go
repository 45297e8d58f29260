package api

import (
	"net/http"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/difficulty"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type GenerateQuizRequest struct {
	TopicID    string     `json:"topicId"`
	LanguageID string     `json:"languageId,omitempty"`
	Count      int        `json:"count,omitempty"`
	Language   string     `json:"language,omitempty"` // content locale: en or de
	SkillLevel FlexNumber `json:"skillLevel,omitempty"`
}

type GenerateMixedRequest struct {
	TopicIDs   []string   `json:"topicIds,omitempty"`
	LanguageID string     `json:"languageId,omitempty"`
	Count      int        `json:"count,omitempty"`
	Language   string     `json:"language,omitempty"`
	SkillLevel FlexNumber `json:"skillLevel,omitempty"`
}

type GenerateQuizResponse struct {
	SessionID string          `json:"sessionId"`
	Questions []quiz.Question `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// defaults fills unset language/locale fields from the persisted settings.
func (h *Handler) defaults(r *http.Request, languageID, locale string) (string, string) {
	if languageID != "" && locale != "" {
		return languageID, locale
	}
	st := h.svc.Settings(r.Context())
	if languageID == "" {
		languageID = st.ActiveLanguageID
	}
	if locale == "" {
		locale = st.Locale
	}
	return languageID, locale
}

// overrideLevel converts a client-supplied skill level into a difficulty
// override, clamped into [1,3].
func overrideLevel(f FlexNumber) *int {
	if !f.Set {
		return nil
	}
	lvl := difficulty.ClampQuizLevel(f.Value, difficulty.Beginner)
	return &lvl
}

// POST /api/quiz/generate
func (h *Handler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	languageID, locale := h.defaults(r, req.LanguageID, req.Language)

	sess, err := h.svc.StartTopicQuiz(r.Context(), languageID, req.TopicID, req.Count, locale, overrideLevel(req.SkillLevel))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, GenerateQuizResponse{
		SessionID: sess.ID,
		Questions: sess.Questions(),
	})
}

// POST /api/quiz/generate-mixed
func (h *Handler) generateMixedQuiz(w http.ResponseWriter, r *http.Request) {
	var req GenerateMixedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	languageID, locale := h.defaults(r, req.LanguageID, req.Language)

	sess, err := h.svc.StartMixedQuiz(r.Context(), languageID, req.TopicIDs, req.Count, locale, overrideLevel(req.SkillLevel))
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, GenerateQuizResponse{
		SessionID: sess.ID,
		Questions: sess.Questions(),
	})
}
