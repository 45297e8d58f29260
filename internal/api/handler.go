package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/generator"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers. Every handler
// method receives its dependencies through this struct rather than through
// package-level globals.
type Handler struct {
	svc    *service.QuizService
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.QuizService, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON parses the request body into v. On failure it writes a 400 and
// returns false; the caller should return immediately.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleServiceError maps service errors onto HTTP status codes. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Msg)
		return true
	}

	if errors.Is(err, quiz.ErrInvalidState) {
		respondError(w, http.StatusConflict, err.Error())
		return true
	}

	var gerr *generator.GenerateError
	if errors.As(err, &gerr) {
		h.logger.Error("generation error", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to generate content")
		return true
	}

	h.logger.Error("internal error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// FlexNumber accepts a JSON number, a numeric string, or null. Unparseable
// strings become NaN so the difficulty clamps replace them with their
// fallback, mirroring the loosely typed clients this API serves.
type FlexNumber struct {
	Value float64
	Set   bool
}

func (f *FlexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	f.Set = true
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			f.Value = math.NaN()
			return nil
		}
		s = unquoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.Value = math.NaN()
		return nil
	}
	f.Value = v
	return nil
}
