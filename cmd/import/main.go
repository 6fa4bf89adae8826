// Command import loads inventory and sales workbooks into the analytics
// database. The workbook needs an "Inventory" and a "Sales" sheet, each with
// a header row followed by: store, business unit, year, month, units.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	config "retail-insights-api/configs"
	"retail-insights-api/pkg/store"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	dbPath := flag.String("db", cfg.DatabasePath, "path to the analytics database")
	filePath := flag.String("file", "", "path to the .xlsx workbook to import")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: import -file data.xlsx [-db path]")
	}

	analyticsStore, err := store.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open analytics database: %v", err)
	}
	defer analyticsStore.Close()

	workbook, err := excelize.OpenFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer workbook.Close()

	ctx := context.Background()

	inventoryCount, err := importSheet(ctx, workbook, "Inventory", analyticsStore.UpsertInventory)
	if err != nil {
		log.Fatalf("Failed to import inventory: %v", err)
	}
	log.Printf("Imported %d inventory rows", inventoryCount)

	salesCount, err := importSheet(ctx, workbook, "Sales", analyticsStore.UpsertSales)
	if err != nil {
		log.Fatalf("Failed to import sales: %v", err)
	}
	log.Printf("Imported %d sales rows", salesCount)
}

// importSheet walks one sheet and writes each data row through upsert.
// Blank rows are skipped; malformed rows abort the import with the row number.
func importSheet(ctx context.Context, workbook *excelize.File, sheet string, upsert func(ctx context.Context, store, businessUnit string, year, month, units int) error) (int, error) {
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		if len(row) < 5 {
			return count, fmt.Errorf("sheet %q row %d: expected 5 columns, got %d", sheet, i+1, len(row))
		}

		storeName := strings.TrimSpace(row[0])
		businessUnit := strings.TrimSpace(row[1])

		year, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return count, fmt.Errorf("sheet %q row %d: bad year %q", sheet, i+1, row[2])
		}
		month, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || month < 1 || month > 12 {
			return count, fmt.Errorf("sheet %q row %d: bad month %q", sheet, i+1, row[3])
		}
		units, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil || units < 0 {
			return count, fmt.Errorf("sheet %q row %d: bad units %q", sheet, i+1, row[4])
		}

		if err := upsert(ctx, storeName, businessUnit, year, month, units); err != nil {
			return count, fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
		}
		count++
	}

	return count, nil
}
