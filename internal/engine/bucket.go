// Package engine implements the craving analytics and recommendation
// engine: a stateless transform from a snapshot of craving events and
// intervention outcomes to derived analytics, risk classifications, and
// recommendations. Every function is a pure batch pass over its inputs;
// wall-clock time is always an explicit parameter.
package engine

import (
	"time"

	"github.com/craveless/backend/internal/models"
)

// Bucket boundaries in local hours
const (
	morningStart   = 5
	afternoonStart = 12
	eveningStart   = 17
	nightStart     = 22
)

// BucketFor maps a timestamp to its day-part bucket using the local
// hour of day. Total: every timestamp maps to exactly one bucket.
func BucketFor(t time.Time) models.TimeBucket {
	hour := t.Hour()
	switch {
	case hour >= morningStart && hour < afternoonStart:
		return models.BucketMorning
	case hour >= afternoonStart && hour < eveningStart:
		return models.BucketAfternoon
	case hour >= eveningStart && hour < nightStart:
		return models.BucketEvening
	default:
		return models.BucketNight
	}
}
