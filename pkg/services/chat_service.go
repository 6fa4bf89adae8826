package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	config "retail-insights-api/configs"
	"retail-insights-api/pkg/models"
)

// consultantSystemRole frames the model for conceptual questions that need no
// database numbers.
const consultantSystemRole = "You are an expert consultant in retail and operations optimization."

// generalContext is the static background handed to the model for general
// questions. It describes the operational problem the chain is working on and
// the benchmark used everywhere else in the API.
const generalContext = `Business context for the retail chain:

1. Chaos in the merchandise flow:
   - Manual processes with no supporting technology
   - Unscheduled receiving (trucks arrive unannounced)
   - Reactive replenishment ("firefighting")
   - Manual sorting that consumes hours

2. Overstock and lost sales:
   - Warehouses are full yet customers cannot find their size
   - Phantom inventory (system counts vs. reality)
   - Over 6,000 SKUs, but 80% of sales comes from 20% of them
   - Damaged product piling up

3. Organizational problems:
   - High staff turnover (60% per year)
   - Over 40 job codes with overlapping roles
   - Managers in the back room instead of on the sales floor

4. Retail benchmark:
   - Optimal coverage: 28-90 days
   - Under 28 days: stock-out risk
   - Over 90 days: overstock`

// ChatService routes an incoming message to one of three intents, gathers the
// data the intent needs, and asks the model to phrase the final answer. No
// state survives a message: concurrent messages cannot interfere.
type ChatService struct {
	store        DataStore
	generator    TextGenerator
	intents      *IntentService
	metrics      *MetricsService
	defaultYear  int
	defaultMonth int
}

// NewChatService wires the orchestrator. The store and generator handles are
// owned by the bootstrap layer.
func NewChatService(store DataStore, generator TextGenerator, intents *IntentService, metrics *MetricsService) *ChatService {
	return &ChatService{
		store:        store,
		generator:    generator,
		intents:      intents,
		metrics:      metrics,
		defaultYear:  config.DefaultYear,
		defaultMonth: config.DefaultMonth,
	}
}

// ProcessMessage handles one chat message end to end. At most one database
// round-trip and one model invocation happen per message; a templated "no
// data" reply skips the model entirely.
func (cs *ChatService) ProcessMessage(ctx context.Context, message string) (*models.ChatResult, error) {
	entities := cs.intents.ExtractEntities(message)
	needsDatabase := cs.intents.RequiresDatabase(message)

	// Computed for observability only; routing never consults it.
	if explicit := cs.intents.DetectExplicitIntent(message); explicit != "" {
		log.Printf("explicit intent hint: %s", explicit)
	}

	log.Printf("entities: store=%q year=%d month=%d needs_database=%v",
		entities.Store, entities.Year, entities.Month, needsDatabase)

	switch {
	case entities.Store != "":
		return cs.handleSpecificStore(ctx, message, entities)
	case needsDatabase || entities.Year != 0 || entities.Month != 0:
		return cs.handleStoreSummary(ctx, message, entities)
	default:
		return cs.handleGeneralQuestion(message)
	}
}

// resolvePeriod validates an extracted period and fills in defaults. Only the
// two data-backed intents call it; general questions never get defaults.
func (cs *ChatService) resolvePeriod(entities models.ExtractedEntities) (year, month int, err error) {
	if ok, reason := ValidatePeriod(entities.Year, entities.Month); !ok {
		return 0, 0, &models.ValidationError{Reason: reason}
	}

	year, month = entities.Year, entities.Month
	if year == 0 {
		year = cs.defaultYear
	}
	if month == 0 {
		month = cs.defaultMonth
	}
	return year, month, nil
}

func (cs *ChatService) handleSpecificStore(ctx context.Context, message string, entities models.ExtractedEntities) (*models.ChatResult, error) {
	year, month, err := cs.resolvePeriod(entities)
	if err != nil {
		return nil, err
	}

	store := entities.Store
	monthLabel := config.MonthLabel(month)
	log.Printf("intent %s: %s, %s %d", models.IntentSpecificStore, store, monthLabel, year)

	units, err := cs.store.StoreUnitRows(ctx, store, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching unit rows for %s: %w", store, err)
	}

	if len(units) == 0 {
		return &models.ChatResult{
			Response: fmt.Sprintf("No data found for %s in %s %d. Available data ranges from January 2023 to May 2025. Please check the store name and period.",
				store, monthLabel, year),
			Intent: models.IntentSpecificStore,
		}, nil
	}

	totalInventory := 0
	totalSales := 0
	var detail strings.Builder
	for _, unit := range units {
		coverage := cs.metrics.CalculateCoverageDays(unit.Inventory, unit.Sales, DefaultPeriodDays)
		detail.WriteString(fmt.Sprintf("  • %s: %d inv, %d sold, %s days\n",
			unit.BusinessUnit, unit.Inventory, unit.Sales, coverage.Label()))
		totalInventory += unit.Inventory
		totalSales += unit.Sales
	}

	totalCoverage := cs.metrics.CalculateCoverageDays(totalInventory, totalSales, DefaultPeriodDays)

	var contextBlock strings.Builder
	contextBlock.WriteString("Database records:\n")
	contextBlock.WriteString(fmt.Sprintf("- Store: %s\n", store))
	contextBlock.WriteString(fmt.Sprintf("- Period: %s %d\n", monthLabel, year))
	contextBlock.WriteString(fmt.Sprintf("- Total inventory: %d units\n", totalInventory))
	contextBlock.WriteString(fmt.Sprintf("- Total sales: %d units\n", totalSales))
	contextBlock.WriteString(fmt.Sprintf("- Coverage: %.1f days\n", totalCoverage.Exported()))
	contextBlock.WriteString("\nBusiness unit breakdown:\n")
	contextBlock.WriteString(detail.String())
	contextBlock.WriteString("\nRetail benchmark: 28-90 days of coverage is optimal.")

	response, err := cs.generator.GenerateChatResponse(message, contextBlock.String(), "")
	if err != nil {
		return nil, fmt.Errorf("generating store answer: %w", err)
	}

	return &models.ChatResult{
		Response: response,
		Intent:   models.IntentSpecificStore,
		DataUsed: models.StoreDataUsed{
			Store:     store,
			Year:      year,
			Month:     month,
			Inventory: totalInventory,
			Sales:     totalSales,
			Coverage:  totalCoverage.Exported(),
		},
	}, nil
}

func (cs *ChatService) handleStoreSummary(ctx context.Context, message string, entities models.ExtractedEntities) (*models.ChatResult, error) {
	year, month, err := cs.resolvePeriod(entities)
	if err != nil {
		return nil, err
	}

	monthLabel := config.MonthLabel(month)
	log.Printf("intent %s: %s %d", models.IntentStoreSummary, monthLabel, year)

	stores, err := cs.store.AllStoreRows(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("fetching store rows: %w", err)
	}

	if len(stores) == 0 {
		return &models.ChatResult{
			Response: fmt.Sprintf("No data found for %s %d. Available data ranges from January 2023 to May 2025. Please check the period.",
				monthLabel, year),
			Intent: models.IntentStoreSummary,
		}, nil
	}

	var contextBlock strings.Builder
	contextBlock.WriteString(fmt.Sprintf("Store summary (%s %d):\n\n", monthLabel, year))

	var critical, alert []string
	totalInventory := 0
	totalSales := 0

	for _, row := range stores {
		coverage := cs.metrics.CalculateCoverageDays(row.Inventory, row.Sales, DefaultPeriodDays)
		status := cs.metrics.DetermineStatus(coverage)

		contextBlock.WriteString(fmt.Sprintf("• %s: %d inv, %d sold, %s days → %s\n",
			row.Store, row.Inventory, row.Sales, coverage.Label(), status))

		totalInventory += row.Inventory
		totalSales += row.Sales

		switch status {
		case models.StatusCritical:
			critical = append(critical, row.Store)
		case models.StatusOverstock, models.StatusNoSales:
			alert = append(alert, row.Store)
		}
	}

	contextBlock.WriteString(fmt.Sprintf("\nTOTALS: %d units in inventory, %d units sold", totalInventory, totalSales))
	contextBlock.WriteString(fmt.Sprintf("\nCritical stores: %d", len(critical)))
	contextBlock.WriteString(fmt.Sprintf("\nStores on alert: %d", len(alert)))

	if len(critical) > 0 {
		contextBlock.WriteString(fmt.Sprintf("\nCritical stores: %s", strings.Join(critical, ", ")))
	}
	if len(alert) > 0 {
		contextBlock.WriteString(fmt.Sprintf("\nStores on alert: %s", strings.Join(alert, ", ")))
	}

	response, err := cs.generator.GenerateChatResponse(message, contextBlock.String(), "")
	if err != nil {
		return nil, fmt.Errorf("generating summary answer: %w", err)
	}

	return &models.ChatResult{
		Response: response,
		Intent:   models.IntentStoreSummary,
		DataUsed: models.SummaryDataUsed{
			Year:           year,
			Month:          month,
			TotalStores:    len(stores),
			CriticalStores: len(critical),
			AlertStores:    len(alert),
			TotalInventory: totalInventory,
			TotalSales:     totalSales,
		},
	}, nil
}

func (cs *ChatService) handleGeneralQuestion(message string) (*models.ChatResult, error) {
	log.Printf("intent %s", models.IntentGeneralQuestion)

	response, err := cs.generator.GenerateChatResponse(message, generalContext, consultantSystemRole)
	if err != nil {
		return nil, fmt.Errorf("generating general answer: %w", err)
	}

	return &models.ChatResult{
		Response: response,
		Intent:   models.IntentGeneralQuestion,
	}, nil
}
