package engine

import (
	"sort"
	"time"

	"github.com/craveless/backend/internal/models"
)

// Filtering and sorting produce new slices; inputs are never mutated.
// Sorts are stable so that ties keep their original relative order,
// which keeps downstream expectations deterministic.

// FilterByTrigger returns the events whose trigger matches the given
// normalized label.
func FilterByTrigger(events []models.CravingEvent, trigger string) []models.CravingEvent {
	trigger = models.NormalizeTrigger(trigger)
	out := make([]models.CravingEvent, 0)
	for _, e := range events {
		if e.Trigger == trigger {
			out = append(out, e)
		}
	}
	return out
}

// FilterByResisted returns the events whose resisted flag matches
func FilterByResisted(events []models.CravingEvent, resisted bool) []models.CravingEvent {
	out := make([]models.CravingEvent, 0)
	for _, e := range events {
		if e.Resisted == resisted {
			out = append(out, e)
		}
	}
	return out
}

// FilterByDateRange returns the events with start <= timestamp < end
func FilterByDateRange(events []models.CravingEvent, start, end time.Time) []models.CravingEvent {
	out := make([]models.CravingEvent, 0)
	for _, e := range events {
		if !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			out = append(out, e)
		}
	}
	return out
}

// SortByTimestampDesc returns a copy sorted most recent first. This is
// the default ordering for every consumer-facing list.
func SortByTimestampDesc(events []models.CravingEvent) []models.CravingEvent {
	out := make([]models.CravingEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// SortByIntensity returns a copy sorted by intensity. Ties keep their
// original relative order.
func SortByIntensity(events []models.CravingEvent, ascending bool) []models.CravingEvent {
	out := make([]models.CravingEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Intensity < out[j].Intensity
		}
		return out[i].Intensity > out[j].Intensity
	})
	return out
}
