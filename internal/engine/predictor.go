package engine

import (
	"math"
	"time"

	"github.com/craveless/backend/internal/models"
)

// Fixed risk policy thresholds (not learned)
const (
	riskHighThreshold   = 0.4
	riskMediumThreshold = 0.2

	// similarIntensityDelta bounds "similar intensity" when matching
	// history for a success prediction.
	similarIntensityDelta = 2

	topTriggersPerWindow = 2
)

// recommendedActions maps a primary trigger label to a fixed coaching
// action. Anything not listed falls through to genericAction; an
// unknown trigger must never fail.
var recommendedActions = map[string]string{
	"stress":  "try a 4-7-8 breathing exercise before the craving peaks",
	"anxiety": "try a 4-7-8 breathing exercise before the craving peaks",
	"boredom": "line up a short distraction activity for this time of day",
	"social":  "rehearse a refusal phrase before social situations",
	"alcohol": "plan an alcohol-free alternative for this window",
	"coffee":  "pair your coffee with a substitute ritual",
	"food":    "take a short walk after meals in this window",
	"meal":    "take a short walk after meals in this window",
	"fatigue": "schedule a rest break before this window starts",
}

const genericAction = "use distraction techniques when the craving starts"

// ActionForTrigger returns the fixed coaching action for a trigger
// label, falling back to the generic distraction action.
func ActionForTrigger(trigger string) string {
	if action, ok := recommendedActions[models.NormalizeTrigger(trigger)]; ok {
		return action
	}
	return genericAction
}

// PredictRiskWindows classifies each time bucket by the mean intensity
// of its historical events. All four buckets are always present, in day
// order, so the consumer contract is stable even with no data.
func PredictRiskWindows(events []models.CravingEvent) []models.RiskWindow {
	byBucket := make(map[models.TimeBucket][]models.CravingEvent, len(models.AllTimeBuckets))
	for _, e := range events {
		b := BucketFor(e.Timestamp)
		byBucket[b] = append(byBucket[b], e)
	}

	windows := make([]models.RiskWindow, 0, len(models.AllTimeBuckets))
	for _, bucket := range models.AllTimeBuckets {
		bucketEvents := byBucket[bucket]
		window := models.RiskWindow{
			Bucket:            bucket,
			RiskLevel:         models.RiskLow,
			TopTriggers:       []models.TriggerCount{},
			RecommendedAction: genericAction,
		}

		if len(bucketEvents) > 0 {
			sum := 0
			for _, e := range bucketEvents {
				sum += e.Intensity
			}
			window.RiskScore = float64(sum) / float64(len(bucketEvents)) / 10
			window.RiskLevel = classifyRisk(window.RiskScore)

			triggers := countTriggers(bucketEvents)
			if len(triggers) > topTriggersPerWindow {
				triggers = triggers[:topTriggersPerWindow]
			}
			window.TopTriggers = triggers
			window.RecommendedAction = ActionForTrigger(triggers[0].Trigger)
		}

		windows = append(windows, window)
	}
	return windows
}

func classifyRisk(score float64) models.RiskLevel {
	switch {
	case score > riskHighThreshold:
		return models.RiskHigh
	case score > riskMediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// PredictSuccessProbability estimates the chance a proposed
// intervention succeeds right now. History is restricted to events with
// the same trigger and either a similar intensity (within
// similarIntensityDelta) or the same time bucket; when nothing matches,
// the user's overall success rate is used instead. The result is a
// rounded integer percentage.
func PredictSuccessProbability(events []models.CravingEvent, trigger string, intensity int, bucket models.TimeBucket) models.SuccessPrediction {
	prediction := models.SuccessPrediction{
		Trigger:   models.NormalizeTrigger(trigger),
		Intensity: intensity,
		Bucket:    bucket,
	}

	matches := make([]models.CravingEvent, 0)
	for _, e := range events {
		if e.Trigger != prediction.Trigger {
			continue
		}
		similar := abs(e.Intensity-intensity) <= similarIntensityDelta
		if similar || BucketFor(e.Timestamp) == bucket {
			matches = append(matches, e)
		}
	}

	if len(matches) == 0 {
		prediction.UsedFallback = true
		matches = events
	}
	prediction.SampleSize = len(matches)
	if len(matches) == 0 {
		return prediction // no history at all: probability 0
	}

	successes := 0
	for _, e := range matches {
		if eventSucceeded(e) {
			successes++
		}
	}
	prediction.Probability = int(math.Round(float64(successes) / float64(len(matches)) * 100))
	return prediction
}

// eventSucceeded reports whether a historical craving counts as a
// success: the craving was resisted, or its intervention succeeded.
func eventSucceeded(e models.CravingEvent) bool {
	if e.Resisted {
		return true
	}
	return e.Outcome != nil && e.Outcome.Successful
}

// RecommendForNow is the "best first-try method right now" entry point:
// it buckets the given instant and delegates to RecommendBestMethod.
func RecommendForNow(outcomes []models.InterventionOutcome, now time.Time, minSamples int) (models.MethodRecommendation, bool) {
	return RecommendBestMethod(outcomes, BucketFor(now), minSamples)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
