package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("```json\n{\"response\":\"Hi!\"}\n```", "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Hello"}},
		Schema:    &Schema{Name: "openai-test-reply", Definition: map[string]any{"type": "object", "required": []any{"response"}}},
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"response":"Hi!"}`, string(resp.Content))
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)

	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAIProvider_ImageMessage(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("looks like a triangle", "length"))
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "What is this?", ImageURL: "https://example.com/a.png"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "looks like a triangle", string(resp.Content))
	assert.Equal(t, "max_tokens", resp.StopReason)

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	parts, ok := msgs[0].(map[string]any)["content"].([]any)
	require.True(t, ok, "image messages are sent as multi-part content")
	assert.Len(t, parts, 2)
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("just prose", "stop"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Hello"}},
		Schema:   &Schema{Name: "openai-test-mismatch", Definition: map[string]any{"type": "object"}},
	})

	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "just prose", string(inv.Content))
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "tokens", "message": "Rate limit exceeded", "code": "rate_limit_exceeded"},
		})
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "Internal server error"},
		})
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "")
	assert.Error(t, err)

	p, err := NewOpenAIProvider("test-key", "", "https://openrouter.ai/api/v1")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}
