package handlers

import (
	"net/http"
	"strconv"

	"retail-insights-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// MonitoringHandler exposes the in-memory request log.
type MonitoringHandler struct {
	monitoringService *services.MonitoringService
}

// NewMonitoringHandler creates a new monitoring handler.
func NewMonitoringHandler(monitoringService *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService}
}

// GetLogs returns the most recent request log entries, newest first.
func (mh *MonitoringHandler) GetLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": mh.monitoringService.RecentLogs(limit),
	})
}
