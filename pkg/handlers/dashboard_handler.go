package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	config "retail-insights-api/configs"
	"retail-insights-api/pkg/models"
	"retail-insights-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard query endpoints.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// periodFromQuery parses year/month query parameters, applying the configured
// defaults, and validates them against the available data range.
func periodFromQuery(c *gin.Context) (year, month int, ok bool) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(config.DefaultYear)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return 0, 0, false
	}

	month, err = strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(config.DefaultMonth)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return 0, 0, false
	}

	if valid, reason := services.ValidatePeriod(year, month); !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return 0, 0, false
	}

	return year, month, true
}

// GetSummary returns aggregated metrics across every store for a period.
func (dh *DashboardHandler) GetSummary(c *gin.Context) {
	year, month, ok := periodFromQuery(c)
	if !ok {
		return
	}

	summary, err := dh.dashboardService.Summary(c.Request.Context(), year, month)
	if err != nil {
		dh.renderError(c, err, fmt.Sprintf("No data available for %d/%d", month, year))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListStores returns every store's metrics for a period.
func (dh *DashboardHandler) ListStores(c *gin.Context) {
	year, month, ok := periodFromQuery(c)
	if !ok {
		return
	}

	stores, err := dh.dashboardService.Stores(c.Request.Context(), year, month)
	if err != nil {
		dh.renderError(c, err, fmt.Sprintf("No data available for %d/%d", month, year))
		return
	}

	c.JSON(http.StatusOK, stores)
}

// GetAnalysis returns the chain-wide performance classification, resupply
// ranking and health grade for a period.
func (dh *DashboardHandler) GetAnalysis(c *gin.Context) {
	year, month, ok := periodFromQuery(c)
	if !ok {
		return
	}

	report, err := dh.dashboardService.Analysis(c.Request.Context(), year, month)
	if err != nil {
		dh.renderError(c, err, fmt.Sprintf("No data available for %d/%d", month, year))
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStore returns one store's per-business-unit breakdown for a period.
func (dh *DashboardHandler) GetStore(c *gin.Context) {
	year, month, ok := periodFromQuery(c)
	if !ok {
		return
	}

	name := c.Param("name")
	detail, err := dh.dashboardService.StoreDetail(c.Request.Context(), name, year, month)
	if err != nil {
		dh.renderError(c, err, fmt.Sprintf("No data available for %s in %d/%d", name, month, year))
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetHistorical returns the monthly series for a year, optionally scoped to
// one store.
func (dh *DashboardHandler) GetHistorical(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", "2024"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	if year < config.MinDataYear || year > config.MaxDataYear {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Year %d is outside the available range (%d-%d).", year, config.MinDataYear, config.MaxDataYear),
		})
		return
	}

	store := c.Query("store")
	series, err := dh.dashboardService.Historical(c.Request.Context(), year, store)
	if err != nil {
		detail := fmt.Sprintf("No historical data available for %d", year)
		if store != "" {
			detail += " - " + store
		}
		dh.renderError(c, err, detail)
		return
	}

	c.JSON(http.StatusOK, series)
}

// renderError maps the expected no-data outcome to 404 and everything else
// to a generic 500, keeping upstream detail out of the response.
func (dh *DashboardHandler) renderError(c *gin.Context, err error, notFoundDetail string) {
	if errors.Is(err, models.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundDetail})
		return
	}

	log.Printf("dashboard query failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving dashboard data. Please try again."})
}
