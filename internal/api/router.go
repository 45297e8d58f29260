package api

import "net/http"

// RegisterRoutes wires every API endpoint onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Quiz generation
	mux.HandleFunc("POST /api/quiz/generate", h.generateQuiz)
	mux.HandleFunc("POST /api/quiz/generate-mixed", h.generateMixedQuiz)

	// Sessions
	mux.HandleFunc("GET /api/sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /api/sessions/{sessionID}/select", h.selectAnswer)
	mux.HandleFunc("POST /api/sessions/{sessionID}/submit", h.submitAnswer)
	mux.HandleFunc("POST /api/sessions/{sessionID}/advance", h.advanceSession)
	mux.HandleFunc("POST /api/sessions/{sessionID}/retry", h.retrySession)
	mux.HandleFunc("DELETE /api/sessions/{sessionID}", h.deleteSession)

	// Curriculum
	mux.HandleFunc("GET /api/languages", h.listLanguages)
	mux.HandleFunc("GET /api/topics", h.listTopics)
	mux.HandleFunc("GET /api/topics/due", h.listDueTopics)
	mux.HandleFunc("POST /api/topic/explain", h.explainTopic)

	// Progress
	mux.HandleFunc("GET /api/progress", h.getProgress)
	mux.HandleFunc("POST /api/progress/reset", h.resetProgress)
	mux.HandleFunc("GET /api/streak", h.getStreak)

	// Settings
	mux.HandleFunc("GET /api/settings", h.getSettings)
	mux.HandleFunc("PUT /api/settings", h.updateSettings)
}
