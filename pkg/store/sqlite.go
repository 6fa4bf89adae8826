// Package store provides the SQLite-backed data access layer for the
// inventory and sales tables. Read paths match the services.DataStore
// contract; the write path exists only for the import command and tests.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"retail-insights-api/pkg/models"
)

// SQLiteStore implements services.DataStore on a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for an in-memory database in tests.
func New(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies connectivity for health checks.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS inventory (
		store           TEXT    NOT NULL,
		business_unit   TEXT    NOT NULL,
		year            INTEGER NOT NULL,
		month           INTEGER NOT NULL,
		inventory_units INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (store, business_unit, year, month)
	);

	CREATE TABLE IF NOT EXISTS sales (
		store         TEXT    NOT NULL,
		business_unit TEXT    NOT NULL,
		year          INTEGER NOT NULL,
		month         INTEGER NOT NULL,
		sales_units   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (store, business_unit, year, month)
	);

	CREATE INDEX IF NOT EXISTS idx_inventory_period ON inventory(year, month);
	CREATE INDEX IF NOT EXISTS idx_sales_period ON sales(year, month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// StoreUnitRows returns per-business-unit inventory/sales for one store and
// period. The full outer join keeps units that sold without stock on hand and
// units that sat without selling.
func (s *SQLiteStore) StoreUnitRows(ctx context.Context, store string, year, month int) ([]models.UnitRow, error) {
	query := `
	SELECT
		COALESCE(i.business_unit, sl.business_unit) AS business_unit,
		COALESCE(i.inventory_units, 0)              AS inventory_units,
		COALESCE(sl.sales_units, 0)                 AS sales_units
	FROM inventory i
	FULL OUTER JOIN sales sl
		ON i.store = sl.store
		AND i.year = sl.year
		AND i.month = sl.month
		AND i.business_unit = sl.business_unit
	WHERE COALESCE(i.store, sl.store) = ?
		AND COALESCE(i.year, sl.year) = ?
		AND COALESCE(i.month, sl.month) = ?
	ORDER BY business_unit`

	rows, err := s.db.QueryContext(ctx, query, store, year, month)
	if err != nil {
		return nil, fmt.Errorf("querying unit rows: %w", err)
	}
	defer rows.Close()

	var units []models.UnitRow
	for rows.Next() {
		var unit models.UnitRow
		if err := rows.Scan(&unit.BusinessUnit, &unit.Inventory, &unit.Sales); err != nil {
			return nil, fmt.Errorf("scanning unit row: %w", err)
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

// AllStoreRows returns per-store aggregated inventory/sales for one period.
func (s *SQLiteStore) AllStoreRows(ctx context.Context, year, month int) ([]models.StoreRow, error) {
	query := `
	SELECT
		i.store,
		SUM(i.inventory_units)              AS total_inventory,
		SUM(COALESCE(sl.sales_units, 0))    AS total_sales
	FROM inventory i
	LEFT JOIN sales sl
		ON i.store = sl.store
		AND i.year = sl.year
		AND i.month = sl.month
		AND i.business_unit = sl.business_unit
	WHERE i.year = ? AND i.month = ?
	GROUP BY i.store
	ORDER BY i.store`

	rows, err := s.db.QueryContext(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("querying store rows: %w", err)
	}
	defer rows.Close()

	var stores []models.StoreRow
	for rows.Next() {
		var store models.StoreRow
		if err := rows.Scan(&store.Store, &store.Inventory, &store.Sales); err != nil {
			return nil, fmt.Errorf("scanning store row: %w", err)
		}
		stores = append(stores, store)
	}

	return stores, rows.Err()
}

// MonthlySeries returns the monthly inventory/sales series for a year,
// chain-wide when store is empty.
func (s *SQLiteStore) MonthlySeries(ctx context.Context, year int, store string) ([]models.MonthlyRow, error) {
	query := `
	SELECT
		i.month,
		SUM(i.inventory_units)           AS total_inventory,
		SUM(COALESCE(sl.sales_units, 0)) AS total_sales
	FROM inventory i
	LEFT JOIN sales sl
		ON i.store = sl.store
		AND i.year = sl.year
		AND i.month = sl.month
		AND i.business_unit = sl.business_unit
	WHERE i.year = ?`

	args := []any{year}
	if store != "" {
		query += ` AND i.store = ?`
		args = append(args, store)
	}
	query += `
	GROUP BY i.month
	ORDER BY i.month`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying monthly series: %w", err)
	}
	defer rows.Close()

	var series []models.MonthlyRow
	for rows.Next() {
		var point models.MonthlyRow
		if err := rows.Scan(&point.Month, &point.Inventory, &point.Sales); err != nil {
			return nil, fmt.Errorf("scanning monthly row: %w", err)
		}
		series = append(series, point)
	}

	return series, rows.Err()
}

// UpsertInventory writes one inventory row, replacing any existing row for
// the same store/unit/period. Used by the import command.
func (s *SQLiteStore) UpsertInventory(ctx context.Context, store, businessUnit string, year, month, units int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO inventory (store, business_unit, year, month, inventory_units) VALUES (?, ?, ?, ?, ?)`,
		store, businessUnit, year, month, units)
	if err != nil {
		return fmt.Errorf("upserting inventory row: %w", err)
	}
	return nil
}

// UpsertSales writes one sales row, replacing any existing row for the same
// store/unit/period. Used by the import command.
func (s *SQLiteStore) UpsertSales(ctx context.Context, store, businessUnit string, year, month, units int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sales (store, business_unit, year, month, sales_units) VALUES (?, ?, ?, ?, ?)`,
		store, businessUnit, year, month, units)
	if err != nil {
		return fmt.Errorf("upserting sales row: %w", err)
	}
	return nil
}
