package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/domain/quiz"
	"github.com/DHBWLoerrach/CodeCompanion-sub000/internal/id"
)

// Config holds the LLM endpoint configuration.
type Config struct {
	BaseURL string // OpenAI-compatible endpoint, e.g. "http://localhost:1234/v1"
	APIKey  string
	Model   string // model name, e.g. "gpt-4o-mini" or "qwen3-8b"
	Timeout time.Duration
}

// OpenAIGenerator implements Generator over any OpenAI-compatible chat
// completion API (OpenAI, Ollama, LM Studio, vLLM).
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

var _ Generator = (*OpenAIGenerator)(nil)

// NewOpenAI creates a generator that calls the configured endpoint.
func NewOpenAI(cfg Config, logger *slog.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(newClientConfig(cfg)),
		model:  cfg.Model,
		logger: logger,
	}
}

// newClientConfig translates our Config into the library's. ClientConfig
// only holds the HTTPDoer interface, so the timeout rides on a concrete
// http.Client installed behind it.
func newClientConfig(cfg Config) openai.ClientConfig {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return clientConfig
}

// Small models sometimes need a second try to produce parseable JSON.
const maxAttempts = 2

// rawQuestion is the wire shape the model is asked to produce.
type rawQuestion struct {
	Question     string   `json:"question"`
	Code         string   `json:"code,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Questions asks the model for a batch of multiple-choice questions and
// validates every record; malformed records are dropped. Zero usable
// questions after validation is an error.
func (g *OpenAIGenerator) Questions(ctx context.Context, languageID, topicID string, count, difficulty int, locale string) ([]quiz.Question, error) {
	prompt := buildQuestionPrompt(languageID, topicID, count, difficulty, locale)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		content, err := g.chat(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		jsonStr := extractJSONArray(content)
		if jsonStr == "" {
			lastErr = &GenerateError{Reason: "no JSON array found in model response"}
			continue
		}

		var raw []rawQuestion
		if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
			lastErr = &GenerateError{Reason: "invalid JSON from model", Wrapped: err}
			continue
		}

		questions := make([]quiz.Question, 0, len(raw))
		for _, r := range raw {
			q := quiz.Question{
				ID:           id.GenerateID(),
				Question:     strings.TrimSpace(r.Question),
				Code:         r.Code,
				Options:      r.Options,
				CorrectIndex: r.CorrectIndex,
				Explanation:  strings.TrimSpace(r.Explanation),
			}
			if q.Question == "" || !q.Valid() {
				g.logger.Warn("dropping malformed generated question",
					"topic", topicID, "options", len(r.Options), "correct_index", r.CorrectIndex)
				continue
			}
			questions = append(questions, q)
		}

		if len(questions) == 0 {
			lastErr = &GenerateError{Reason: "model returned no usable questions"}
			continue
		}
		return questions, nil
	}

	return nil, &GenerateError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxAttempts),
		Wrapped: lastErr,
	}
}

// Explanation asks the model for a markdown explanation of a topic.
func (g *OpenAIGenerator) Explanation(ctx context.Context, languageID, topicID, locale string) (string, error) {
	content, err := g.chat(ctx, buildExplanationPrompt(languageID, topicID, locale))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(content)
	if text == "" {
		return "", &GenerateError{Reason: "model returned empty explanation"}
	}
	return text, nil
}

// chat sends a single request and returns the raw text response.
func (g *OpenAIGenerator) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", &GenerateError{Reason: "model request failed", Wrapped: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerateError{Reason: "model returned no choices"}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", &GenerateError{Reason: "model returned empty content"}
	}
	return content, nil
}

// extractJSONArray finds the outermost JSON array in a string, handling
// nested brackets correctly and skipping brackets inside quoted strings.
// Markdown code fences around the payload fall out naturally.
func extractJSONArray(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '[' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == ']' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ============================================================================
// Prompt builders — short and directive, with the JSON schema last so it's
// the final thing the model sees.
// ============================================================================

var difficultyNames = map[int]string{
	1: "beginner",
	2: "intermediate",
	3: "advanced",
}

var localeNames = map[string]string{
	LocaleEN: "English",
	LocaleDE: "German",
}

func buildQuestionPrompt(languageID, topicID string, count, difficulty int, locale string) string {
	return fmt.Sprintf(`You are generating a programming quiz for a learning app.

LANGUAGE: %s
TOPIC: %s
DIFFICULTY: %s
QUESTION LANGUAGE: %s

Create exactly %d multiple-choice questions. Each question has exactly 4
options and exactly one correct option. Include a short "code" snippet when
it helps, otherwise omit it. The explanation states why the correct option
is right in one or two sentences.

Respond with ONLY this JSON — no explanation, no markdown fences:
[{"question": "...", "code": "...", "options": ["...", "...", "...", "..."], "correctIndex": 0, "explanation": "..."}]`,
		languageID, topicID, difficultyNames[difficulty], localeNames[locale], count)
}

func buildExplanationPrompt(languageID, topicID, locale string) string {
	return fmt.Sprintf(`You are writing a short lesson for a programming learning app.

LANGUAGE: %s
TOPIC: %s
LESSON LANGUAGE: %s

Explain the topic for a learner seeing it for the first time. Use markdown
with short paragraphs, one or two fenced code examples, and a closing
bullet list of the key takeaways. Keep it under 400 words.`,
		languageID, topicID, localeNames[locale])
}
