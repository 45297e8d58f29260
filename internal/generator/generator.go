// Package generator produces quiz questions and topic explanations by
// calling an OpenAI-compatible LLM endpoint. The rest of the system treats
// it as an opaque collaborator: a batch of questions or a text, or an error.
package generator

import (
	"context"
	"fmt"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
)

// Locales supported by the prompt templates.
const (
	LocaleEN = "en"
	LocaleDE = "de"
)

// SupportedLocale reports whether content can be generated in a locale.
func SupportedLocale(locale string) bool {
	return locale == LocaleEN || locale == LocaleDE
}

// Generator creates learning content for a topic. Implementations may call
// an LLM or return canned results (for tests).
type Generator interface {
	// Questions returns count multiple-choice questions for a topic at the
	// given difficulty (1-3), localized to locale.
	Questions(ctx context.Context, languageID, topicID string, count, difficulty int, locale string) ([]quiz.Question, error)

	// Explanation returns a markdown explanation of a topic.
	Explanation(ctx context.Context, languageID, topicID, locale string) (string, error)
}

// GenerateError is returned when generation fails, so callers can
// distinguish "the model produced unusable output" from "the endpoint was
// unreachable."
type GenerateError struct {
	Reason  string
	Wrapped error
}

func (e *GenerateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerateError) Unwrap() error {
	return e.Wrapped
}
