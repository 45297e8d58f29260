package generator

import (
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientConfig(t *testing.T) {
	cc := newClientConfig(Config{
		BaseURL: "http://localhost:1234/v1",
		APIKey:  "k",
		Timeout: 30 * time.Second,
	})

	assert.Equal(t, "http://localhost:1234/v1", cc.BaseURL)
	// The timeout rides on a concrete http.Client behind the library's
	// HTTPDoer interface.
	hc, ok := cc.HTTPClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, hc.Timeout)

	// Without a timeout the library default client stays in place.
	cc = newClientConfig(Config{BaseURL: "http://localhost:1234/v1"})
	assert.NotNil(t, cc.HTTPClient)

	g := NewOpenAI(Config{Model: "qwen3-8b"}, slog.New(slog.DiscardHandler))
	require.NotNil(t, g.client)
	assert.Equal(t, "qwen3-8b", g.model)
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare array",
			input: `[{"question": "q"}]`,
			want:  `[{"question": "q"}]`,
		},
		{
			name:  "surrounded by prose",
			input: "Here you go:\n[{\"question\": \"q\"}]\nHope that helps!",
			want:  `[{"question": "q"}]`,
		},
		{
			name:  "markdown fence",
			input: "```json\n[1, 2, 3]\n```",
			want:  `[1, 2, 3]`,
		},
		{
			name:  "nested arrays",
			input: `[[1, 2], [3, 4]]`,
			want:  `[[1, 2], [3, 4]]`,
		},
		{
			name:  "brackets inside strings ignored",
			input: `[{"question": "what does arr[0] return?"}]`,
			want:  `[{"question": "what does arr[0] return?"}]`,
		},
		{
			name:  "escaped quotes inside strings",
			input: `[{"question": "say \"hi[\" now"}]`,
			want:  `[{"question": "say \"hi[\" now"}]`,
		},
		{
			name:  "no array",
			input: `{"question": "q"}`,
			want:  "",
		},
		{
			name:  "unterminated array",
			input: `[1, 2`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONArray(tt.input))
		})
	}
}

func TestSupportedLocale(t *testing.T) {
	assert.True(t, SupportedLocale("en"))
	assert.True(t, SupportedLocale("de"))
	assert.False(t, SupportedLocale("fr"))
	assert.False(t, SupportedLocale(""))
}

func TestBuildQuestionPrompt(t *testing.T) {
	prompt := buildQuestionPrompt("javascript", "loops", 5, 2, LocaleDE)

	assert.Contains(t, prompt, "javascript")
	assert.Contains(t, prompt, "loops")
	assert.Contains(t, prompt, "intermediate")
	assert.Contains(t, prompt, "German")
	assert.Contains(t, prompt, "exactly 5")
	// Schema comes last so it's the final thing the model sees.
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), `"explanation": "..."}]`))
}

func TestGenerateError(t *testing.T) {
	inner := assert.AnError
	err := &GenerateError{Reason: "model request failed", Wrapped: inner}

	assert.ErrorContains(t, err, "model request failed")
	assert.ErrorIs(t, err, inner)

	bare := &GenerateError{Reason: "no array"}
	assert.ErrorContains(t, bare, "no array")
}
