package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration
type Config struct {
	Port             string
	Environment      string
	APIKey           string
	DatabasePath     string
	AIEndpoint       string
	AIAPIKey         string
	AIAPIVersion     string
	AIDeploymentName string
	CORSOrigins      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		APIKey:           getEnv("API_KEY", ""),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/retail.db"),
		AIEndpoint:       getEnv("AI_ENDPOINT", ""),
		AIAPIKey:         getEnv("AI_API_KEY", ""),
		AIAPIVersion:     getEnv("AI_API_VERSION", "2023-12-01-preview"),
		AIDeploymentName: getEnv("AI_DEPLOYMENT_NAME", "gpt-4o-mini"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Business constants. The coverage benchmark window and the data horizon are
// fixed properties of the dataset, not deployment knobs.
const (
	// BenchmarkMinDays and BenchmarkMaxDays bound the healthy coverage window.
	BenchmarkMinDays = 28.0
	BenchmarkMaxDays = 90.0

	// Data is available from January 2023 through May 2025.
	MinDataYear  = 2023
	MaxDataYear  = 2025
	MaxDataMonth = 5

	// Defaults applied when a data-backed query names no period.
	DefaultYear  = 2025
	DefaultMonth = 5
)

// MonthEntry pairs a month name with its number.
type MonthEntry struct {
	Name   string
	Number int
}

// MonthTable maps month names to numbers. Order matters: entity extraction
// scans this table front to back and the first name found in the text wins.
var MonthTable = []MonthEntry{
	{"january", 1},
	{"february", 2},
	{"march", 3},
	{"april", 4},
	{"may", 5},
	{"june", 6},
	{"july", 7},
	{"august", 8},
	{"september", 9},
	{"october", 10},
	{"november", 11},
	{"december", 12},
}

var monthLabels = [...]string{
	1:  "January",
	2:  "February",
	3:  "March",
	4:  "April",
	5:  "May",
	6:  "June",
	7:  "July",
	8:  "August",
	9:  "September",
	10: "October",
	11: "November",
	12: "December",
}

// MonthLabel returns the display name for a month number ("May"), or a
// "Month N" fallback for out-of-range input.
func MonthLabel(month int) string {
	if month >= 1 && month <= 12 {
		return monthLabels[month]
	}
	return fmt.Sprintf("Month %d", month)
}
