package main

import (
	"log"
	"net/http"
	"strings"

	config "retail-insights-api/configs"
	"retail-insights-api/pkg/handlers"
	"retail-insights-api/pkg/services"
	"retail-insights-api/pkg/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	r := gin.Default()

	// Data access layer
	analyticsStore, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open analytics database: %v", err)
	}
	defer analyticsStore.Close()

	// Services
	monitoringService := services.NewMonitoringService()
	metricsService := services.NewMetricsService(config.BenchmarkMinDays, config.BenchmarkMaxDays)
	intentService := services.NewIntentService()
	aiService := services.NewAIService(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIAPIVersion, cfg.AIDeploymentName)
	chatService := services.NewChatService(analyticsStore, aiService, intentService, metricsService)
	dashboardService := services.NewDashboardService(analyticsStore, metricsService)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(analyticsStore, aiService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// Middleware
	r.Use(monitoringService.LoggingMiddleware())
	r.Use(corsMiddleware(cfg.CORSOrigins))

	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// Root banner
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Retail Insights API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Health endpoints
	r.GET("/health", healthHandler.Health)
	r.GET("/health/db", healthHandler.HealthDB)
	r.GET("/health/ai", healthHandler.HealthAI)

	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		v1.POST("/chat", chatHandler.Chat)

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/stores", dashboardHandler.ListStores)
			dashboard.GET("/stores/:name", dashboardHandler.GetStore)
			dashboard.GET("/analysis", dashboardHandler.GetAnalysis)
			dashboard.GET("/historical", dashboardHandler.GetHistorical)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Printf("Starting Retail Insights API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// corsMiddleware builds the CORS policy from the comma-separated origins
// configuration; "*" or empty means allow everything.
func corsMiddleware(origins string) gin.HandlerFunc {
	origins = strings.TrimSpace(origins)
	if origins == "" || origins == "*" {
		return cors.Default()
	}

	allowed := make([]string, 0)
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowed = append(allowed, trimmed)
		}
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowed
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
