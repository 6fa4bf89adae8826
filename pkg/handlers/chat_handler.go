package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"retail-insights-api/pkg/models"
	"retail-insights-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler serves the chat endpoint.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat processes one user message and returns the generated answer.
func (ch *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	// Session ids are accepted for future use; fill one in so clients always
	// get a handle back.
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	result, err := ch.chatService.ProcessMessage(c.Request.Context(), req.Message)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
			return
		}

		// Upstream detail stays in the log; clients get a generic retry line.
		log.Printf("chat processing failed (session %s): %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong while processing your message. Please try again.",
		})
		return
	}

	log.Printf("chat answered with intent %s (session %s)", result.Intent, req.SessionID)

	c.JSON(http.StatusOK, models.ChatResponse{
		Response:  result.Response,
		Intent:    result.Intent,
		DataUsed:  result.DataUsed,
		SessionID: req.SessionID,
		Timestamp: time.Now(),
	})
}
