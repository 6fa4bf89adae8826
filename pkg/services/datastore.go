package services

import (
	"context"

	"retail-insights-api/pkg/models"
)

// DataStore is the read-only query contract the services depend on. The
// sqlite implementation lives in pkg/store; tests substitute fakes. Every
// method may legitimately return zero rows.
type DataStore interface {
	// StoreUnitRows returns per-business-unit inventory/sales for one store
	// and period.
	StoreUnitRows(ctx context.Context, store string, year, month int) ([]models.UnitRow, error)

	// AllStoreRows returns per-store aggregated inventory/sales for a period.
	AllStoreRows(ctx context.Context, year, month int) ([]models.StoreRow, error)

	// MonthlySeries returns the monthly inventory/sales series for a year,
	// chain-wide when store is empty.
	MonthlySeries(ctx context.Context, year int, store string) ([]models.MonthlyRow, error)

	// Ping verifies connectivity for health checks.
	Ping(ctx context.Context) error
}
