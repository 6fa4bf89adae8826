package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntitiesStoreMonthYear(t *testing.T) {
	is := NewIntentService()

	entities := is.ExtractEntities("inventory of store 5 in May 2024")
	assert.Equal(t, "Store 5", entities.Store)
	assert.Equal(t, 5, entities.Month)
	assert.Equal(t, 2024, entities.Year)
}

func TestExtractEntitiesStoreForms(t *testing.T) {
	is := NewIntentService()

	for _, text := range []string{
		"store 7 status",
		"how is the store 7 doing",
		"sales at store 7",
		"STORE 7 report",
	} {
		entities := is.ExtractEntities(text)
		assert.Equal(t, "Store 7", entities.Store, "text: %s", text)
	}

	entities := is.ExtractEntities("how are all stores doing")
	assert.Empty(t, entities.Store)
}

func TestExtractEntitiesSlashDate(t *testing.T) {
	is := NewIntentService()

	// The slash form sets month and year together, bypassing the year rule.
	entities := is.ExtractEntities("12/2023 sales report")
	assert.Equal(t, 12, entities.Month)
	assert.Equal(t, 2023, entities.Year)
}

func TestExtractEntitiesMonthNameWinsOverSlash(t *testing.T) {
	is := NewIntentService()

	entities := is.ExtractEntities("compare march against 12/2023")
	assert.Equal(t, 3, entities.Month)
	assert.Equal(t, 2023, entities.Year)
}

func TestExtractEntitiesMonthNumber(t *testing.T) {
	is := NewIntentService()

	entities := is.ExtractEntities("report for month 11 please")
	assert.Equal(t, 11, entities.Month)

	// Out-of-range month numbers are discarded, not clamped.
	entities = is.ExtractEntities("report for month 13 please")
	assert.Equal(t, 0, entities.Month)
}

func TestExtractEntitiesYearRange(t *testing.T) {
	is := NewIntentService()

	assert.Equal(t, 2023, is.ExtractEntities("totals for 2023").Year)
	assert.Equal(t, 2025, is.ExtractEntities("totals for 2025").Year)
	// Years outside 2023-2025 never match.
	assert.Equal(t, 0, is.ExtractEntities("totals for 2022").Year)
	assert.Equal(t, 0, is.ExtractEntities("totals for 2026").Year)
}

func TestExtractEntitiesNothing(t *testing.T) {
	is := NewIntentService()

	entities := is.ExtractEntities("good morning!")
	assert.Empty(t, entities.Store)
	assert.Equal(t, 0, entities.Year)
	assert.Equal(t, 0, entities.Month)
}

func TestRequiresDatabase(t *testing.T) {
	is := NewIntentService()

	assert.True(t, is.RequiresDatabase("show me the inventory"))
	assert.True(t, is.RequiresDatabase("how many units are left?"))
	assert.True(t, is.RequiresDatabase("ranking of stores"))

	// Data keywords win over conceptual markers: "inventory" routes this to
	// the database even though it reads like a definition question.
	assert.True(t, is.RequiresDatabase("what is inventory coverage?"))

	// Purely conceptual questions skip the database.
	assert.False(t, is.RequiresDatabase("explain the concept of merchandising"))

	// Containment is substring-based: "overstock" matches the "stock" keyword,
	// so even a conceptual phrasing about overstock routes to the database.
	assert.True(t, is.RequiresDatabase("why does overstock happen?"))

	// Neither set matches: default is no database.
	assert.False(t, is.RequiresDatabase("good morning!"))
}

func TestDetectExplicitIntent(t *testing.T) {
	is := NewIntentService()

	assert.Equal(t, "resumen_tiendas", is.DetectExplicitIntent("give me a summary"))
	assert.Equal(t, "identificar_problemas", is.DetectExplicitIntent("which stores have problems"))
	assert.Equal(t, "ranking_tiendas", is.DetectExplicitIntent("ranking by coverage"))
	assert.Equal(t, "historico", is.DetectExplicitIntent("historical trend for 2024"))
	assert.Equal(t, "recomendacion", is.DetectExplicitIntent("any recommendation for resupply?"))
	assert.Equal(t, "", is.DetectExplicitIntent("good morning!"))
}

func TestValidatePeriod(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month int
		valid bool
	}{
		{"both unset", 0, 0, true},
		{"year unset", 0, 5, true},
		{"month unset", 2024, 0, true},
		{"valid period", 2024, 12, true},
		{"horizon edge", 2025, 5, true},
		{"year too early", 2022, 1, false},
		{"year too late", 2026, 1, false},
		{"month out of range", 2024, 13, false},
		{"beyond data horizon", 2025, 6, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid, reason := ValidatePeriod(tc.year, tc.month)
			assert.Equal(t, tc.valid, valid)
			if !tc.valid {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestValidatePeriodReasons(t *testing.T) {
	_, reason := ValidatePeriod(2026, 1)
	assert.Contains(t, reason, "2023-2025")

	_, reason = ValidatePeriod(2024, 13)
	assert.Contains(t, reason, "between 1 and 12")

	_, reason = ValidatePeriod(2025, 7)
	assert.Contains(t, reason, "May 2025")
}
