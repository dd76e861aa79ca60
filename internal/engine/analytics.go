package engine

import (
	"sort"

	"github.com/craveless/backend/internal/models"
)

const dateLayout = "2006-01-02"

// ComputeAnalytics computes the descriptive aggregates over a snapshot
// of craving events. An empty snapshot yields zero values for every
// field; no aggregate ever fails on sparse data.
func ComputeAnalytics(events []models.CravingEvent) models.AnalyticsSummary {
	summary := models.AnalyticsSummary{
		CommonTriggers:      []models.TriggerCount{},
		TriggersByTimeOfDay: make(map[models.TimeBucket][]models.TriggerCount, len(models.AllTimeBuckets)),
		IntensityTrend:      []models.TrendPoint{},
	}
	for _, bucket := range models.AllTimeBuckets {
		summary.TriggersByTimeOfDay[bucket] = []models.TriggerCount{}
	}

	summary.TotalCravings = len(events)
	if len(events) == 0 {
		return summary
	}

	intensitySum := 0
	byBucket := make(map[models.TimeBucket][]models.CravingEvent, len(models.AllTimeBuckets))
	for _, e := range events {
		if e.Resisted {
			summary.ResistedCravings++
		}
		intensitySum += e.Intensity
		b := BucketFor(e.Timestamp)
		byBucket[b] = append(byBucket[b], e)
	}

	summary.ResistanceRate = float64(summary.ResistedCravings) / float64(summary.TotalCravings) * 100
	summary.AverageIntensity = float64(intensitySum) / float64(summary.TotalCravings)
	summary.CommonTriggers = countTriggers(events)
	for _, bucket := range models.AllTimeBuckets {
		summary.TriggersByTimeOfDay[bucket] = countTriggers(byBucket[bucket])
	}
	summary.IntensityTrend = computeIntensityTrend(events)

	return summary
}

// countTriggers builds a trigger frequency table sorted by count
// descending. Ties keep first-seen order, so results are deterministic
// for any fixed input ordering.
func countTriggers(events []models.CravingEvent) []models.TriggerCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	for i, e := range events {
		if _, ok := counts[e.Trigger]; !ok {
			firstSeen[e.Trigger] = i
			order = append(order, e.Trigger)
		}
		counts[e.Trigger]++
	}

	table := make([]models.TriggerCount, 0, len(order))
	for _, trigger := range order {
		table = append(table, models.TriggerCount{Trigger: trigger, Count: counts[trigger]})
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return firstSeen[table[i].Trigger] < firstSeen[table[j].Trigger]
	})
	return table
}

// computeIntensityTrend groups events by calendar date and returns the
// per-date mean intensity, sorted ascending by date string.
func computeIntensityTrend(events []models.CravingEvent) []models.TrendPoint {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, e := range events {
		date := e.Timestamp.Format(dateLayout)
		sums[date] += e.Intensity
		counts[date]++
	}

	dates := make([]string, 0, len(sums))
	for date := range sums {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trend := make([]models.TrendPoint, 0, len(dates))
	for _, date := range dates {
		trend = append(trend, models.TrendPoint{
			Date:             date,
			AverageIntensity: float64(sums[date]) / float64(counts[date]),
			Count:            counts[date],
		})
	}
	return trend
}
