package services

import (
	"sort"

	"retail-insights-api/pkg/models"
)

// ClassifyStoresByPerformance partitions stores into performance buckets.
// OPTIMAL stores sitting near the middle of the benchmark window (40-70 days)
// are promoted to the excellent bucket; every input store lands in exactly
// one bucket.
func (ms *MetricsService) ClassifyStoresByPerformance(stores []models.StoreMetric) models.PerformanceClassification {
	classification := models.PerformanceClassification{
		Critical:  []string{},
		Alert:     []string{},
		Optimal:   []string{},
		Excellent: []string{},
	}

	for _, store := range stores {
		switch store.Status {
		case models.StatusCritical:
			classification.Critical = append(classification.Critical, store.Store)
		case models.StatusOverstock, models.StatusNoSales:
			classification.Alert = append(classification.Alert, store.Store)
		case models.StatusOptimal:
			if store.Coverage.Days >= 40 && store.Coverage.Days <= 70 {
				classification.Excellent = append(classification.Excellent, store.Store)
			} else {
				classification.Optimal = append(classification.Optimal, store.Store)
			}
		}
	}

	return classification
}

// CalculateResupplyPriority ranks stores by resupply urgency: low coverage
// combined with high sales ranks first. Stores with no coverage signal (no
// sales, or nothing on hand) are parked at the bottom with a fixed score.
// The sort is stable so input order breaks ties deterministically.
func (ms *MetricsService) CalculateResupplyPriority(stores []models.StoreMetric) []models.ResupplyPriority {
	type scored struct {
		store string
		score float64
	}

	scoredStores := make([]scored, 0, len(stores))
	for _, store := range stores {
		score := 1000.0
		if !store.Coverage.NoSales && store.Coverage.Days != 0 {
			score = (1 / store.Coverage.Days) * float64(store.Sales)
		}
		scoredStores = append(scoredStores, scored{store: store.Store, score: score})
	}

	sort.SliceStable(scoredStores, func(i, j int) bool {
		return scoredStores[i].score > scoredStores[j].score
	})

	priorities := make([]models.ResupplyPriority, len(scoredStores))
	for i, s := range scoredStores {
		priorities[i] = models.ResupplyPriority{Store: s.store, Rank: i + 1}
	}

	return priorities
}

// CalculateOverallHealth summarizes how much of the chain sits inside the
// benchmark window. An empty input is reported as NO_DATA, not an error.
func (ms *MetricsService) CalculateOverallHealth(stores []models.StoreMetric) models.OverallHealth {
	total := len(stores)
	if total == 0 {
		return models.OverallHealth{
			Health:     models.HealthNoData,
			Score:      0,
			HealthyPct: 0,
		}
	}

	critical := 0
	optimal := 0
	for _, store := range stores {
		switch store.Status {
		case models.StatusCritical:
			critical++
		case models.StatusOptimal:
			optimal++
		}
	}

	healthyPct := float64(optimal) / float64(total) * 100

	var health string
	var score int
	switch {
	case healthyPct >= 80:
		health, score = models.HealthExcellent, 5
	case healthyPct >= 60:
		health, score = models.HealthGood, 4
	case healthyPct >= 40:
		health, score = models.HealthFair, 3
	case healthyPct >= 20:
		health, score = models.HealthPoor, 2
	default:
		health, score = models.HealthCritical, 1
	}

	return models.OverallHealth{
		Health:         health,
		Score:          score,
		HealthyPct:     round1(healthyPct),
		CriticalStores: critical,
		OptimalStores:  optimal,
		TotalStores:    total,
	}
}
