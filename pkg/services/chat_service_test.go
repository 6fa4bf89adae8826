package services

import (
	"context"
	"errors"
	"testing"

	"retail-insights-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDataStore is a canned-response DataStore recording how it was called.
type fakeDataStore struct {
	unitRows  []models.UnitRow
	storeRows []models.StoreRow
	monthly   []models.MonthlyRow
	err       error

	unitCalls   int
	storeCalls  int
	seriesCalls int
	lastStore   string
	lastYear    int
	lastMonth   int
}

func (f *fakeDataStore) StoreUnitRows(_ context.Context, store string, year, month int) ([]models.UnitRow, error) {
	f.unitCalls++
	f.lastStore, f.lastYear, f.lastMonth = store, year, month
	return f.unitRows, f.err
}

func (f *fakeDataStore) AllStoreRows(_ context.Context, year, month int) ([]models.StoreRow, error) {
	f.storeCalls++
	f.lastYear, f.lastMonth = year, month
	return f.storeRows, f.err
}

func (f *fakeDataStore) MonthlySeries(_ context.Context, year int, store string) ([]models.MonthlyRow, error) {
	f.seriesCalls++
	f.lastYear, f.lastStore = year, store
	return f.monthly, f.err
}

func (f *fakeDataStore) Ping(_ context.Context) error {
	return f.err
}

// fakeGenerator is a canned TextGenerator recording prompts.
type fakeGenerator struct {
	response    string
	err         error
	calls       int
	lastMessage string
	lastContext string
	lastRole    string
}

func (f *fakeGenerator) GenerateChatResponse(userMessage, contextBlock, systemRole string) (string, error) {
	f.calls++
	f.lastMessage = userMessage
	f.lastContext = contextBlock
	f.lastRole = systemRole
	return f.response, f.err
}

func newTestChatService(store *fakeDataStore, generator *fakeGenerator) *ChatService {
	return NewChatService(store, generator, NewIntentService(), newTestMetrics())
}

func TestProcessMessageSpecificStoreNoRows(t *testing.T) {
	store := &fakeDataStore{}
	generator := &fakeGenerator{response: "should not be used"}
	cs := newTestChatService(store, generator)

	result, err := cs.ProcessMessage(context.Background(), "how is store 9 doing?")
	require.NoError(t, err)

	// Fast-fail: templated reply, no model invocation.
	assert.Equal(t, 0, generator.calls)
	assert.Equal(t, models.IntentSpecificStore, result.Intent)
	assert.Contains(t, result.Response, "No data found for Store 9 in May 2025")
	assert.Contains(t, result.Response, "January 2023 to May 2025")
	assert.Nil(t, result.DataUsed)

	// Defaults applied for the data fetch.
	assert.Equal(t, 1, store.unitCalls)
	assert.Equal(t, "Store 9", store.lastStore)
	assert.Equal(t, 2025, store.lastYear)
	assert.Equal(t, 5, store.lastMonth)
}

func TestProcessMessageSpecificStore(t *testing.T) {
	store := &fakeDataStore{
		unitRows: []models.UnitRow{
			{BusinessUnit: "Shoes", Inventory: 2000, Sales: 1500},
			{BusinessUnit: "Accessories", Inventory: 500, Sales: 0},
		},
	}
	generator := &fakeGenerator{response: "Store 5 is in good shape."}
	cs := newTestChatService(store, generator)

	result, err := cs.ProcessMessage(context.Background(), "inventory of store 5 in May 2024")
	require.NoError(t, err)

	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, models.IntentSpecificStore, result.Intent)
	assert.Equal(t, "Store 5 is in good shape.", result.Response)

	// Totals: 2500 inventory, 1500 sales, coverage 2500/1500*30 = 50.
	dataUsed, ok := result.DataUsed.(models.StoreDataUsed)
	require.True(t, ok)
	assert.Equal(t, "Store 5", dataUsed.Store)
	assert.Equal(t, 2024, dataUsed.Year)
	assert.Equal(t, 5, dataUsed.Month)
	assert.Equal(t, 2500, dataUsed.Inventory)
	assert.Equal(t, 1500, dataUsed.Sales)
	assert.Equal(t, 50.0, dataUsed.Coverage)

	// The context block carries the per-unit lines with the no-sales literal.
	assert.Contains(t, generator.lastContext, "Store: Store 5")
	assert.Contains(t, generator.lastContext, "Period: May 2024")
	assert.Contains(t, generator.lastContext, "Shoes: 2000 inv, 1500 sold, 40.0 days")
	assert.Contains(t, generator.lastContext, "Accessories: 500 inv, 0 sold, no sales days")
	assert.Contains(t, generator.lastContext, "Retail benchmark: 28-90 days")
}

func TestProcessMessageStoreSummary(t *testing.T) {
	store := &fakeDataStore{
		storeRows: []models.StoreRow{
			{Store: "A", Inventory: 100, Sales: 10},
			{Store: "B", Inventory: 50, Sales: 60},
		},
	}
	generator := &fakeGenerator{response: "One store is critical."}
	cs := newTestChatService(store, generator)

	result, err := cs.ProcessMessage(context.Background(), "summary of all stores for May 2025")
	require.NoError(t, err)

	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, models.IntentStoreSummary, result.Intent)

	// A: 100/10*30 = 300 days (OVERSTOCK, alert); B: 50/60*30 = 25 (CRITICAL).
	dataUsed, ok := result.DataUsed.(models.SummaryDataUsed)
	require.True(t, ok)
	assert.Equal(t, 2, dataUsed.TotalStores)
	assert.Equal(t, 1, dataUsed.CriticalStores)
	assert.Equal(t, 1, dataUsed.AlertStores)
	assert.Equal(t, 150, dataUsed.TotalInventory)
	assert.Equal(t, 70, dataUsed.TotalSales)

	assert.Contains(t, generator.lastContext, "A: 100 inv, 10 sold, 300.0 days → OVERSTOCK")
	assert.Contains(t, generator.lastContext, "B: 50 inv, 60 sold, 25.0 days → CRITICAL")
	assert.Contains(t, generator.lastContext, "TOTALS: 150 units in inventory, 70 units sold")
}

func TestProcessMessageStoreSummaryNoRows(t *testing.T) {
	store := &fakeDataStore{}
	generator := &fakeGenerator{}
	cs := newTestChatService(store, generator)

	result, err := cs.ProcessMessage(context.Background(), "inventory report for January 2024")
	require.NoError(t, err)

	assert.Equal(t, 0, generator.calls)
	assert.Equal(t, models.IntentStoreSummary, result.Intent)
	assert.Contains(t, result.Response, "No data found for January 2024")
	assert.Nil(t, result.DataUsed)
}

func TestProcessMessageGeneralQuestion(t *testing.T) {
	store := &fakeDataStore{}
	generator := &fakeGenerator{response: "The benchmark keeps stock between replenishments."}
	cs := newTestChatService(store, generator)

	result, err := cs.ProcessMessage(context.Background(), "explain the benchmark concept")
	require.NoError(t, err)

	// General questions never touch the database.
	assert.Equal(t, 0, store.unitCalls)
	assert.Equal(t, 0, store.storeCalls)
	assert.Equal(t, 1, generator.calls)

	assert.Equal(t, models.IntentGeneralQuestion, result.Intent)
	assert.Nil(t, result.DataUsed)
	assert.Equal(t, consultantSystemRole, generator.lastRole)
	assert.Equal(t, generalContext, generator.lastContext)
}

func TestProcessMessageYearAloneRoutesToSummary(t *testing.T) {
	store := &fakeDataStore{
		storeRows: []models.StoreRow{{Store: "A", Inventory: 10, Sales: 5}},
	}
	generator := &fakeGenerator{response: "ok"}
	cs := newTestChatService(store, generator)

	result, err := cs.ProcessMessage(context.Background(), "2024?")
	require.NoError(t, err)

	assert.Equal(t, models.IntentStoreSummary, result.Intent)
	assert.Equal(t, 2024, store.lastYear)
	// Missing month falls back to the default.
	assert.Equal(t, 5, store.lastMonth)
}

func TestProcessMessageInvalidPeriod(t *testing.T) {
	store := &fakeDataStore{}
	generator := &fakeGenerator{}
	cs := newTestChatService(store, generator)

	_, err := cs.ProcessMessage(context.Background(), "store 3 report for 7/2025")

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Reason, "May 2025")

	// Rejected before any fetch or model call.
	assert.Equal(t, 0, store.unitCalls)
	assert.Equal(t, 0, generator.calls)
}

func TestProcessMessageGeneratorFailure(t *testing.T) {
	store := &fakeDataStore{
		storeRows: []models.StoreRow{{Store: "A", Inventory: 10, Sales: 5}},
	}
	generator := &fakeGenerator{err: errors.New("model unavailable")}
	cs := newTestChatService(store, generator)

	_, err := cs.ProcessMessage(context.Background(), "inventory summary")
	require.Error(t, err)

	var validationErr *models.ValidationError
	assert.False(t, errors.As(err, &validationErr))
}
