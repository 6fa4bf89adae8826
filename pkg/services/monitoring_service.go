package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LogEntry records a single handled request.
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// MonitoringService keeps an in-memory request log for the monitoring API.
type MonitoringService struct {
	logs []LogEntry
	mu   sync.RWMutex
}

// NewMonitoringService creates a new monitoring service.
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]LogEntry, 0),
	}
}

// LogRequest appends one request record.
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
}

// RecentLogs returns up to limit of the most recent entries, newest first.
func (s *MonitoringService) RecentLogs(limit int) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.logs) {
		limit = len(s.logs)
	}

	recent := make([]LogEntry, 0, limit)
	for i := len(s.logs) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, s.logs[i])
	}
	return recent
}

// LoggingMiddleware records every request except the monitoring API's own.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}
