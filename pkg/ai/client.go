package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a hosted chat-completion REST API. The endpoint can be the
// real service or a reverse proxy that forwards to it; authentication is a
// static api-key header either way.
type Client struct {
	endpoint       string
	apiKey         string
	apiVersion     string
	deploymentName string
	httpClient     *http.Client
}

// NewClient creates a new chat-completion client.
func NewClient(endpoint, apiKey, apiVersion, deploymentName string) *Client {
	return &Client{
		endpoint:       endpoint,
		apiKey:         apiKey,
		apiVersion:     apiVersion,
		deploymentName: deploymentName,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ChatMessage is one message in a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the chat-completion request body.
type ChatCompletionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
	TopP        float32       `json:"top_p,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

// ChatCompletionResponse is the chat-completion response body.
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ErrorResponse is the API's error envelope.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatCompletion executes one chat completion. No retries, no streaming.
func (c *Client) ChatCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float32) (*ChatCompletionResponse, error) {
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimSuffix(c.endpoint, "/"), c.deploymentName, c.apiVersion)

	request := ChatCompletionRequest{
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        0.95,
	}

	var response ChatCompletionResponse
	if err := c.doRequest(ctx, url, request, &response); err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	return &response, nil
}

// GenerateText sends one prompt as a user message and returns the model's
// text. An empty choice list is an error: the caller always needs usable text.
func (c *Client) GenerateText(ctx context.Context, systemRole, prompt string) (string, error) {
	messages := []ChatMessage{
		{Role: "system", Content: systemRole},
		{Role: "user", Content: prompt},
	}

	response, err := c.ChatCompletion(ctx, messages, 512, 0.2)
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("model returned no usable text")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// doRequest executes the HTTP call and decodes the response or error envelope.
func (c *Client) doRequest(ctx context.Context, url string, requestData interface{}, responseData interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("API key is not configured")
	}

	requestBody, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to build HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, errorResp.Error.Message)
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, responseData); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
