package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	config "retail-insights-api/configs"
	"retail-insights-api/pkg/models"
)

// IntentService extracts entities from user messages and decides whether a
// message needs database-backed context. Pattern based, not a learned model.
type IntentService struct {
	storePatterns    []*regexp.Regexp
	monthNumPattern  *regexp.Regexp
	dateSlashPattern *regexp.Regexp
	yearPattern      *regexp.Regexp
}

// NewIntentService compiles the extraction patterns once.
func NewIntentService() *IntentService {
	return &IntentService{
		storePatterns: []*regexp.Regexp{
			regexp.MustCompile(`store\s*(\d+)`),
			regexp.MustCompile(`the\s+store\s*(\d+)`),
			regexp.MustCompile(`at\s+store\s*(\d+)`),
		},
		monthNumPattern:  regexp.MustCompile(`month\s+(\d{1,2})`),
		dateSlashPattern: regexp.MustCompile(`(\d{1,2})/(\d{4})`),
		yearPattern:      regexp.MustCompile(`(202[3-5])`),
	}
}

// Keywords signalling that a message asks for numbers the database holds.
// Containment is a plain substring scan, so a keyword may match inside a
// larger word.
var dataKeywords = []string{
	// Metrics
	"inventory", "sales", "sale", "coverage",
	"units", "pieces", "stock", "warehouse", "storage",

	// Query verbs
	"summary", "report", "data", "information", "info",
	"total", "totals", "sum", "show", "give me",
	"tell me", "display", "query", "view", "list",

	// Quantity questions
	"how much", "how many", "which", "what is the",
	"have", "has", "remain", "remaining", "left",

	// Comparison and analysis
	"all", "every", "stores", "comparison", "compare",
	"best", "worst", "top", "ranking", "highest", "lowest",

	// Problems and states
	"problems", "critical", "alert", "state",
	"situation", "status", "condition",

	// Temporal references
	"month", "year", "period", "date", "quarter",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",

	// Other
	"analysis", "statistics", "kpi", "metric", "indicator",
}

// Keywords marking conceptual questions that need no data lookup. Checked
// only after the data keywords: a message matching both is routed to data.
var conceptualKeywords = []string{
	"what is", "define", "definition", "concept",
	"explain", "how", "why", "meaning",
	"what does", "it mean",
	"difference between", "types of", "examples of",
}

// ExtractEntities parses (store, year, month) out of free text. Each entity
// is extracted by its own ordered rule chain; absent entities stay zero.
func (is *IntentService) ExtractEntities(text string) models.ExtractedEntities {
	lower := strings.ToLower(text)
	entities := models.ExtractedEntities{}

	// Store: "store 3", "the store 3", "at store 3".
	for _, pattern := range is.storePatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			entities.Store = "Store " + match[1]
			break
		}
	}

	// Month by name. The table's declared order is the tie-break, not the
	// position of the name in the text.
	for _, entry := range config.MonthTable {
		if strings.Contains(lower, entry.Name) {
			entities.Month = entry.Number
			break
		}
	}

	// Month by number: "month 5". Out-of-range values are discarded.
	if entities.Month == 0 {
		if match := is.monthNumPattern.FindStringSubmatch(lower); match != nil {
			if m, err := strconv.Atoi(match[1]); err == nil && m >= 1 && m <= 12 {
				entities.Month = m
			}
		}
	}

	// Date form "5/2024" sets month and year together. Runs on the original
	// text and short-circuits the separate year rule.
	if entities.Month == 0 {
		if match := is.dateSlashPattern.FindStringSubmatch(text); match != nil {
			entities.Month, _ = strconv.Atoi(match[1])
			entities.Year, _ = strconv.Atoi(match[2])
		}
	}

	// Year: the pattern only admits the three years data exists for.
	if entities.Year == 0 {
		if match := is.yearPattern.FindStringSubmatch(text); match != nil {
			entities.Year, _ = strconv.Atoi(match[1])
		}
	}

	return entities
}

// RequiresDatabase reports whether the message asks for stored numbers.
// Data keywords win over conceptual markers; a message matching neither set
// defaults to no database.
func (is *IntentService) RequiresDatabase(text string) bool {
	lower := strings.ToLower(text)

	for _, keyword := range dataKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	for _, keyword := range conceptualKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	return false
}

// DetectExplicitIntent maps obvious phrasings to a named intent label.
// Auxiliary signal only: the routing decision never consults it.
func (is *IntentService) DetectExplicitIntent(text string) string {
	lower := strings.ToLower(text)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("summary", "all stores", "general"):
		return "resumen_tiendas"
	case contains("problems", "critical", "alert"):
		return "identificar_problemas"
	case contains("best", "top", "ranking"):
		return "ranking_tiendas"
	case contains("historical", "history", "trend", "evolution"):
		return "historico"
	case contains("recommendation", "suggestion", "what to do"):
		return "recomendacion"
	}

	return ""
}

// ValidatePeriod checks a requested period against the available data range.
// Unset components are trivially valid: defaults apply later. The reason
// names the violated constraint.
func ValidatePeriod(year, month int) (bool, string) {
	if year == 0 || month == 0 {
		return true, ""
	}

	if year < config.MinDataYear || year > config.MaxDataYear {
		return false, fmt.Sprintf("Year %d is outside the available range (%d-%d).", year, config.MinDataYear, config.MaxDataYear)
	}

	if month < 1 || month > 12 {
		return false, fmt.Sprintf("Month %d is not valid (must be between 1 and 12).", month)
	}

	if year == config.MaxDataYear && month > config.MaxDataMonth {
		return false, fmt.Sprintf("No data is available for %d/%d. Data runs through %s %d.",
			month, year, config.MonthLabel(config.MaxDataMonth), config.MaxDataYear)
	}

	return true, ""
}
