package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	resp := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	body, _ := json.Marshal(resp)
	return string(body)
}

func TestGenerateText(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotRequest ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  Coverage measures days of stock on hand.  ")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "2024-02-01", "gpt-4o")

	text, err := client.GenerateText(context.Background(), "You are an assistant.", "what is coverage?")
	require.NoError(t, err)

	// Response text comes back trimmed.
	assert.Equal(t, "Coverage measures days of stock on hand.", text)

	assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	require.Len(t, gotRequest.Messages, 2)
	assert.Equal(t, "system", gotRequest.Messages[0].Role)
	assert.Equal(t, "what is coverage?", gotRequest.Messages[1].Content)
}

func TestGenerateTextEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-test", "choices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "2024-02-01", "gpt-4o")

	_, err := client.GenerateText(context.Background(), "role", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable text")
}

func TestChatCompletionErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": "429", "message": "rate limit exceeded", "type": "requests"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "2024-02-01", "gpt-4o")

	_, err := client.ChatCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 16, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestChatCompletionRequiresAPIKey(t *testing.T) {
	client := NewClient("http://localhost:1", "", "2024-02-01", "gpt-4o")

	_, err := client.ChatCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 16, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is not configured")
}
