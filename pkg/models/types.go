package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoData marks a query that matched no rows. Expected outcome, not a fault:
// handlers map it to 404, the chat orchestrator to a templated reply.
var ErrNoData = errors.New("no data for requested period")

// ValidationError reports a period outside the supported data range.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// CoverageStatus classifies a coverage value against the benchmark window.
type CoverageStatus string

const (
	StatusCritical  CoverageStatus = "CRITICAL"
	StatusOptimal   CoverageStatus = "OPTIMAL"
	StatusOverstock CoverageStatus = "OVERSTOCK"
	StatusNoSales   CoverageStatus = "NO_SALES"
)

// StockOutRisk levels.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)

// Overall business health bands.
const (
	HealthExcellent = "EXCELLENT"
	HealthGood      = "GOOD"
	HealthFair      = "FAIR"
	HealthPoor      = "POOR"
	HealthCritical  = "CRITICAL"
	HealthNoData    = "NO_DATA"
)

// Intent labels exposed on the chat contract.
const (
	IntentSpecificStore   = "specific_store"
	IntentStoreSummary    = "resumen_tiendas"
	IntentGeneralQuestion = "pregunta_general"
)

// Coverage is the projected number of days current inventory lasts at the
// observed sales rate. NoSales marks the case where no depletion rate exists
// (zero sales); it must never be used in arithmetic. Exported structures
// serialize it as 0.
type Coverage struct {
	Days    float64
	NoSales bool
}

// FiniteCoverage wraps a computed day count.
func FiniteCoverage(days float64) Coverage {
	return Coverage{Days: days}
}

// NoSalesCoverage returns the no-sales marker.
func NoSalesCoverage() Coverage {
	return Coverage{NoSales: true}
}

// Exported collapses the no-sales marker to 0 for external serialization.
func (c Coverage) Exported() float64 {
	if c.NoSales {
		return 0
	}
	return c.Days
}

// Label renders the coverage for context blocks, substituting the "no sales"
// literal for the marker.
func (c Coverage) Label() string {
	if c.NoSales {
		return "no sales"
	}
	return fmt.Sprintf("%.1f", c.Days)
}

// ExtractedEntities is the result of one extraction pass over a message.
// Zero values mean "not present in the text".
type ExtractedEntities struct {
	Store string
	Year  int
	Month int
}

// --- Data access rows ---

// UnitRow is one business unit's inventory/sales within a store and period.
type UnitRow struct {
	BusinessUnit string `json:"business_unit"`
	Inventory    int    `json:"inventory"`
	Sales        int    `json:"sales"`
}

// StoreRow is one store's aggregated inventory/sales for a period.
type StoreRow struct {
	Store     string `json:"store"`
	Inventory int    `json:"inventory"`
	Sales     int    `json:"sales"`
}

// MonthlyRow is one month's aggregated inventory/sales within a year.
type MonthlyRow struct {
	Month     int `json:"month"`
	Inventory int `json:"inventory"`
	Sales     int `json:"sales"`
}

// --- Computed metrics ---

// StoreMetric is a store's numbers plus the metrics derived from them.
// Recomputed per query, never persisted.
type StoreMetric struct {
	Store     string
	Inventory int
	Sales     int
	Coverage  Coverage
	Status    CoverageStatus
}

// MetricsSummary bundles every derived metric for one set of numbers.
type MetricsSummary struct {
	Inventory       int            `json:"inventory"`
	Sales           int            `json:"sales"`
	CoverageDays    float64        `json:"coverage_days"`
	Status          CoverageStatus `json:"status"`
	StockOutRisk    string         `json:"stock_out_risk"`
	MonthlyRotation float64        `json:"monthly_rotation"`
	WithinBenchmark bool           `json:"within_benchmark"`
}

// PerformanceClassification partitions store names into performance buckets.
// Every input store lands in exactly one bucket.
type PerformanceClassification struct {
	Critical  []string `json:"critical"`
	Alert     []string `json:"alert"`
	Optimal   []string `json:"optimal"`
	Excellent []string `json:"excellent"`
}

// ResupplyPriority is one store's 1-based position in the resupply ranking.
type ResupplyPriority struct {
	Store string `json:"store"`
	Rank  int    `json:"rank"`
}

// OverallHealth summarizes how much of the chain sits inside the benchmark.
type OverallHealth struct {
	Health         string  `json:"health"`
	Score          int     `json:"score"`
	HealthyPct     float64 `json:"healthy_pct"`
	CriticalStores int     `json:"critical_stores"`
	OptimalStores  int     `json:"optimal_stores"`
	TotalStores    int     `json:"total_stores"`
}

// AnalysisReport bundles the chain-wide classification, resupply ranking and
// health grade for one period.
type AnalysisReport struct {
	Period         string                    `json:"period"`
	Classification PerformanceClassification `json:"classification"`
	ResupplyOrder  []ResupplyPriority        `json:"resupply_order"`
	Health         OverallHealth             `json:"health"`
}

// --- Chat contract ---

// ChatRequest is the inbound chat payload. SessionID is accepted for future
// use; no conversation state hangs off it.
type ChatRequest struct {
	Message   string `json:"message" binding:"required,min=1,max=1000"`
	SessionID string `json:"session_id"`
}

// StoreDataUsed is the structured audit block for a specific-store answer.
type StoreDataUsed struct {
	Store     string  `json:"store"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Inventory int     `json:"inventory"`
	Sales     int     `json:"sales"`
	Coverage  float64 `json:"coverage"`
}

// SummaryDataUsed is the structured audit block for an aggregate answer.
type SummaryDataUsed struct {
	Year           int `json:"year"`
	Month          int `json:"month"`
	TotalStores    int `json:"total_stores"`
	CriticalStores int `json:"critical_stores"`
	AlertStores    int `json:"alert_stores"`
	TotalInventory int `json:"total_inventory"`
	TotalSales     int `json:"total_sales"`
}

// ChatResult is what the orchestrator hands back to the transport layer.
// DataUsed holds a StoreDataUsed or SummaryDataUsed, or nil when no database
// numbers backed the answer.
type ChatResult struct {
	Response string `json:"response"`
	Intent   string `json:"intent"`
	DataUsed any    `json:"data_used,omitempty"`
}

// ChatResponse is the wire shape of a chat answer.
type ChatResponse struct {
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	DataUsed  any       `json:"data_used,omitempty"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// --- Dashboard contract ---

// DashboardSummary aggregates every store for one period.
type DashboardSummary struct {
	TotalStores     int     `json:"total_stores"`
	CriticalStores  int     `json:"critical_stores"`
	AlertStores     int     `json:"alert_stores"`
	OptimalStores   int     `json:"optimal_stores"`
	TotalInventory  int     `json:"total_inventory"`
	TotalSales      int     `json:"total_sales"`
	AverageCoverage float64 `json:"average_coverage"`
	Period          string  `json:"period"`
}

// StoreSummary is one store's row in the dashboard listing.
type StoreSummary struct {
	Store     string  `json:"store"`
	Inventory int     `json:"inventory"`
	Sales     int     `json:"sales"`
	Coverage  float64 `json:"coverage"`
	Status    string  `json:"status"`
}

// BusinessUnitDetail is one business unit's row inside a store detail.
type BusinessUnitDetail struct {
	Unit      string  `json:"unit"`
	Inventory int     `json:"inventory"`
	Sales     int     `json:"sales"`
	Coverage  float64 `json:"coverage"`
}

// StoreDetail is one store's full breakdown for a period.
type StoreDetail struct {
	Store          string               `json:"store"`
	Period         string               `json:"period"`
	TotalInventory int                  `json:"total_inventory"`
	TotalSales     int                  `json:"total_sales"`
	Coverage       float64              `json:"coverage"`
	Units          []BusinessUnitDetail `json:"units"`
}

// HistoricalPoint is one month in a historical series.
type HistoricalPoint struct {
	Month     int     `json:"month"`
	Inventory int     `json:"inventory"`
	Sales     int     `json:"sales"`
	Coverage  float64 `json:"coverage"`
}

// HistoricalSeries is a year of monthly points, chain-wide or for one store.
type HistoricalSeries struct {
	Store  string            `json:"store,omitempty"`
	Year   int               `json:"year"`
	Points []HistoricalPoint `json:"points"`
}
