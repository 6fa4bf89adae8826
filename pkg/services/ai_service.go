package services

import (
	"context"
	"time"

	"retail-insights-api/pkg/ai"
)

// DefaultSystemRole frames the model as the chain's management assistant.
const DefaultSystemRole = "You are the retail chain's operations management assistant."

// TextGenerator is the language-model capability the orchestrator consumes.
type TextGenerator interface {
	GenerateChatResponse(userMessage, contextBlock, systemRole string) (string, error)
}

// AIService wraps the hosted chat-completion client with prompt assembly.
type AIService struct {
	client *ai.Client
}

// NewAIService creates a new AI service.
func NewAIService(endpoint, apiKey, apiVersion, deploymentName string) *AIService {
	return &AIService{
		client: ai.NewClient(endpoint, apiKey, apiVersion, deploymentName),
	}
}

// GenerateChatResponse asks the model to answer the user's question using the
// retrieved context. An empty systemRole falls back to the default assistant
// framing. One shot: failures propagate, retry policy lives with the caller's
// transport if anywhere.
func (as *AIService) GenerateChatResponse(userMessage, contextBlock, systemRole string) (string, error) {
	if systemRole == "" {
		systemRole = DefaultSystemRole
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompt := contextBlock + "\n\nQuestion: \"" + userMessage + "\"\n\nAnswer in an executive, actionable tone:"

	return as.client.GenerateText(ctx, systemRole, prompt)
}

// TestConnection probes the model with a minimal completion. Used by the
// health endpoints only.
func (as *AIService) TestConnection() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := as.client.ChatCompletion(ctx, []ai.ChatMessage{{Role: "user", Content: "ping"}}, 5, 0)
	return err == nil
}
