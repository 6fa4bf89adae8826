package services

import (
	"context"
	"fmt"

	config "retail-insights-api/configs"
	"retail-insights-api/pkg/models"
)

// DashboardService computes the dashboard aggregates served to the frontend.
// Read-only: every result is recomputed from raw rows per request.
type DashboardService struct {
	store   DataStore
	metrics *MetricsService
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store DataStore, metrics *MetricsService) *DashboardService {
	return &DashboardService{store: store, metrics: metrics}
}

// Summary aggregates every store for one period. Returns models.ErrNoData
// when the period has no rows.
func (ds *DashboardService) Summary(ctx context.Context, year, month int) (*models.DashboardSummary, error) {
	rows, err := ds.store.AllStoreRows(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching store rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNoData
	}

	summary := &models.DashboardSummary{
		Period: fmt.Sprintf("%s %d", config.MonthLabel(month), year),
	}

	for _, row := range rows {
		summary.TotalStores++
		summary.TotalInventory += row.Inventory
		summary.TotalSales += row.Sales

		coverage := ds.metrics.CalculateCoverageDays(row.Inventory, row.Sales, DefaultPeriodDays)
		switch ds.metrics.DetermineStatus(coverage) {
		case models.StatusCritical:
			summary.CriticalStores++
		case models.StatusOverstock, models.StatusNoSales:
			summary.AlertStores++
		default:
			summary.OptimalStores++
		}
	}

	averageCoverage := ds.metrics.CalculateCoverageDays(summary.TotalInventory, summary.TotalSales, DefaultPeriodDays)
	summary.AverageCoverage = averageCoverage.Exported()

	return summary, nil
}

// Stores lists every store with its coverage and status for one period.
func (ds *DashboardService) Stores(ctx context.Context, year, month int) ([]models.StoreSummary, error) {
	rows, err := ds.store.AllStoreRows(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching store rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNoData
	}

	stores := make([]models.StoreSummary, 0, len(rows))
	for _, row := range rows {
		coverage := ds.metrics.CalculateCoverageDays(row.Inventory, row.Sales, DefaultPeriodDays)
		stores = append(stores, models.StoreSummary{
			Store:     row.Store,
			Inventory: row.Inventory,
			Sales:     row.Sales,
			Coverage:  coverage.Exported(),
			Status:    string(ds.metrics.DetermineStatus(coverage)),
		})
	}

	return stores, nil
}

// StoreDetail breaks one store down by business unit for one period.
func (ds *DashboardService) StoreDetail(ctx context.Context, store string, year, month int) (*models.StoreDetail, error) {
	rows, err := ds.store.StoreUnitRows(ctx, store, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching unit rows for %s: %w", store, err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNoData
	}

	detail := &models.StoreDetail{
		Store:  store,
		Period: fmt.Sprintf("%s %d", config.MonthLabel(month), year),
		Units:  make([]models.BusinessUnitDetail, 0, len(rows)),
	}

	for _, row := range rows {
		coverage := ds.metrics.CalculateCoverageDays(row.Inventory, row.Sales, DefaultPeriodDays)
		detail.Units = append(detail.Units, models.BusinessUnitDetail{
			Unit:      row.BusinessUnit,
			Inventory: row.Inventory,
			Sales:     row.Sales,
			Coverage:  coverage.Exported(),
		})
		detail.TotalInventory += row.Inventory
		detail.TotalSales += row.Sales
	}

	totalCoverage := ds.metrics.CalculateCoverageDays(detail.TotalInventory, detail.TotalSales, DefaultPeriodDays)
	detail.Coverage = totalCoverage.Exported()

	return detail, nil
}

// Analysis grades the whole chain for one period: performance buckets,
// resupply ranking and the overall health score.
func (ds *DashboardService) Analysis(ctx context.Context, year, month int) (*models.AnalysisReport, error) {
	rows, err := ds.store.AllStoreRows(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching store rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNoData
	}

	metrics := make([]models.StoreMetric, 0, len(rows))
	for _, row := range rows {
		coverage := ds.metrics.CalculateCoverageDays(row.Inventory, row.Sales, DefaultPeriodDays)
		metrics = append(metrics, models.StoreMetric{
			Store:     row.Store,
			Inventory: row.Inventory,
			Sales:     row.Sales,
			Coverage:  coverage,
			Status:    ds.metrics.DetermineStatus(coverage),
		})
	}

	return &models.AnalysisReport{
		Period:         fmt.Sprintf("%s %d", config.MonthLabel(month), year),
		Classification: ds.metrics.ClassifyStoresByPerformance(metrics),
		ResupplyOrder:  ds.metrics.CalculateResupplyPriority(metrics),
		Health:         ds.metrics.CalculateOverallHealth(metrics),
	}, nil
}

// Historical returns the ordered monthly series for a year, chain-wide when
// store is empty.
func (ds *DashboardService) Historical(ctx context.Context, year int, store string) (*models.HistoricalSeries, error) {
	rows, err := ds.store.MonthlySeries(ctx, year, store)
	if err != nil {
		return nil, fmt.Errorf("fetching monthly series: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNoData
	}

	series := &models.HistoricalSeries{
		Store:  store,
		Year:   year,
		Points: make([]models.HistoricalPoint, 0, len(rows)),
	}

	for _, row := range rows {
		coverage := ds.metrics.CalculateCoverageDays(row.Inventory, row.Sales, DefaultPeriodDays)
		series.Points = append(series.Points, models.HistoricalPoint{
			Month:     row.Month,
			Inventory: row.Inventory,
			Sales:     row.Sales,
			Coverage:  coverage.Exported(),
		})
	}

	return series, nil
}
