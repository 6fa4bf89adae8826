package handlers

import (
	"net/http"
	"time"

	"retail-insights-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// connectionTester is the probe surface the AI service exposes for health
// checks.
type connectionTester interface {
	TestConnection() bool
}

// HealthHandler serves liveness and dependency health endpoints.
type HealthHandler struct {
	store services.DataStore
	ai    connectionTester
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store services.DataStore, ai connectionTester) *HealthHandler {
	return &HealthHandler{store: store, ai: ai}
}

// Health reports overall service health: healthy only when both the database
// and the model endpoint respond.
func (hh *HealthHandler) Health(c *gin.Context) {
	dbConnected := hh.store.Ping(c.Request.Context()) == nil
	aiConnected := hh.ai.TestConnection()

	status := "healthy"
	code := http.StatusOK
	if !dbConnected || !aiConnected {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":       status,
		"db_connected": dbConnected,
		"ai_connected": aiConnected,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

// HealthDB reports database connectivity.
func (hh *HealthHandler) HealthDB(c *gin.Context) {
	connected := hh.store.Ping(c.Request.Context()) == nil
	c.JSON(http.StatusOK, gin.H{
		"service":   "database",
		"connected": connected,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HealthAI reports model endpoint connectivity.
func (hh *HealthHandler) HealthAI(c *gin.Context) {
	connected := hh.ai.TestConnection()
	c.JSON(http.StatusOK, gin.H{
		"service":   "ai",
		"connected": connected,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
