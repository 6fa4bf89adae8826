package services

import (
	"math"

	"retail-insights-api/pkg/models"
)

// DefaultPeriodDays is the period length used for monthly coverage.
const DefaultPeriodDays = 30

// MetricsService computes inventory coverage metrics and classifications.
// Pure computation, no I/O, safe for concurrent use.
type MetricsService struct {
	benchmarkMin float64
	benchmarkMax float64
}

// NewMetricsService creates a metrics service with the given benchmark window.
func NewMetricsService(benchmarkMin, benchmarkMax float64) *MetricsService {
	return &MetricsService{
		benchmarkMin: benchmarkMin,
		benchmarkMax: benchmarkMax,
	}
}

// CalculateCoverageDays computes how many days of stock remain at the current
// sales velocity: (inventory / sales) * periodDays, rounded to 2 decimals.
// Zero sales means no meaningful depletion rate exists, so the no-sales marker
// is returned (even for zero inventory).
func (ms *MetricsService) CalculateCoverageDays(inventory, sales, periodDays int) models.Coverage {
	if sales == 0 {
		return models.NoSalesCoverage()
	}
	if inventory == 0 {
		return models.FiniteCoverage(0)
	}

	coverage := float64(inventory) / float64(sales) * float64(periodDays)
	return models.FiniteCoverage(round2(coverage))
}

// DetermineStatus classifies a coverage value against the benchmark window.
// Both window boundaries count as OPTIMAL.
func (ms *MetricsService) DetermineStatus(coverage models.Coverage) models.CoverageStatus {
	switch {
	case coverage.NoSales:
		return models.StatusNoSales
	case coverage.Days < ms.benchmarkMin:
		return models.StatusCritical
	case coverage.Days <= ms.benchmarkMax:
		return models.StatusOptimal
	default:
		return models.StatusOverstock
	}
}

// CalculateStockOutRisk grades the risk of running out of stock. The 14-day
// HIGH cutoff is deliberately tighter than the benchmark minimum.
func (ms *MetricsService) CalculateStockOutRisk(coverage models.Coverage) string {
	switch {
	case coverage.NoSales:
		return models.RiskLow
	case coverage.Days < 14:
		return models.RiskHigh
	case coverage.Days < ms.benchmarkMin:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// CalculateTurnover computes the inventory turnover index:
// period sales / average inventory, rounded to 2 decimals.
func (ms *MetricsService) CalculateTurnover(salesPeriod, avgInventory float64) float64 {
	if avgInventory == 0 {
		return 0
	}
	return round2(salesPeriod / avgInventory)
}

// CalculateSellThrough computes the percentage of the initial inventory sold
// during the period, rounded to 2 decimals.
func (ms *MetricsService) CalculateSellThrough(sales, initialInventory float64) float64 {
	if initialInventory == 0 {
		return 0
	}
	return round2(sales / initialInventory * 100)
}

// CalculatePercentVariation computes the percent change between two periods,
// rounded to 2 decimals. Positive means growth.
func (ms *MetricsService) CalculatePercentVariation(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

// BuildMetricsSummary bundles every derived metric for one set of numbers.
// The approximate monthly rotation is 30/coverage; it degrades to 0 when no
// rotation can be computed.
func (ms *MetricsService) BuildMetricsSummary(inventory, sales int, coverage models.Coverage) models.MetricsSummary {
	rotation := 0.0
	if !coverage.NoSales && coverage.Days > 0 {
		rotation = round2(DefaultPeriodDays / coverage.Days)
	}

	withinBenchmark := !coverage.NoSales &&
		coverage.Days >= ms.benchmarkMin && coverage.Days <= ms.benchmarkMax

	return models.MetricsSummary{
		Inventory:       inventory,
		Sales:           sales,
		CoverageDays:    coverage.Exported(),
		Status:          ms.DetermineStatus(coverage),
		StockOutRisk:    ms.CalculateStockOutRisk(coverage),
		MonthlyRotation: rotation,
		WithinBenchmark: withinBenchmark,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
