package api

import (
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExplainTopicRequest struct {
	TopicID    string `json:"topicId"`
	LanguageID string `json:"languageId,omitempty"`
	Language   string `json:"language,omitempty"`
}

type ExplainTopicResponse struct {
	Explanation string `json:"explanation"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// language resolves the curriculum language from the query string, falling
// back to the persisted settings.
func (h *Handler) language(r *http.Request) string {
	if lang := r.URL.Query().Get("language"); lang != "" {
		return lang
	}
	return h.svc.Settings(r.Context()).ActiveLanguageID
}

// GET /api/languages
func (h *Handler) listLanguages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Languages())
}

// GET /api/topics?language=javascript
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.Topics(r.Context(), h.language(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, topics)
}

// GET /api/topics/due?language=javascript
func (h *Handler) listDueTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.DueTopics(r.Context(), h.language(r))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, topics)
}

// POST /api/topic/explain
func (h *Handler) explainTopic(w http.ResponseWriter, r *http.Request) {
	var req ExplainTopicRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	languageID, locale := h.defaults(r, req.LanguageID, req.Language)

	explanation, err := h.svc.Explain(r.Context(), languageID, req.TopicID, locale)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, ExplainTopicResponse{Explanation: explanation})
}
