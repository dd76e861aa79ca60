package engine

import (
	"testing"
	"time"

	"github.com/craveless/backend/internal/models"
)

func TestPredictRiskWindows_AllBucketsAlwaysPresent(t *testing.T) {
	windows := PredictRiskWindows(nil)
	if len(windows) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(windows))
	}
	for i, bucket := range models.AllTimeBuckets {
		w := windows[i]
		if w.Bucket != bucket {
			t.Errorf("expected bucket %s at position %d, got %s", bucket, i, w.Bucket)
		}
		if w.RiskLevel != models.RiskLow || w.RiskScore != 0 {
			t.Errorf("empty bucket %s should be low risk, got %+v", bucket, w)
		}
		if w.RecommendedAction == "" {
			t.Errorf("bucket %s has no recommended action", bucket)
		}
	}
}

func TestPredictRiskWindows_Classification(t *testing.T) {
	evening := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	night := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		// Evening mean 3 -> score 0.3 -> medium
		makeEvent("a", evening, 3, "stress", false),
		// Night mean 2 -> score 0.2 -> low (threshold is strict)
		makeEvent("b", night, 2, "boredom", false),
	}

	windows := PredictRiskWindows(events)
	for _, w := range windows {
		switch w.Bucket {
		case models.BucketEvening:
			if w.RiskLevel != models.RiskMedium {
				t.Errorf("expected evening medium, got %s", w.RiskLevel)
			}
		case models.BucketNight:
			if w.RiskLevel != models.RiskLow {
				t.Errorf("expected night low at exactly 0.2, got %s", w.RiskLevel)
			}
		}
	}
}

func TestPredictRiskWindows_TopTriggersCappedAtTwo(t *testing.T) {
	morning := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		makeEvent("a", morning, 5, "stress", false),
		makeEvent("b", morning.Add(time.Minute), 5, "stress", false),
		makeEvent("c", morning.Add(2*time.Minute), 5, "boredom", false),
		makeEvent("d", morning.Add(3*time.Minute), 5, "coffee", false),
	}

	windows := PredictRiskWindows(events)
	morningWindow := windows[0]
	if len(morningWindow.TopTriggers) != 2 {
		t.Fatalf("expected 2 top triggers, got %d", len(morningWindow.TopTriggers))
	}
	if morningWindow.TopTriggers[0].Trigger != "stress" {
		t.Errorf("expected stress as primary trigger, got %s", morningWindow.TopTriggers[0].Trigger)
	}
}

func TestActionForTrigger_UnknownFallsBack(t *testing.T) {
	if got := ActionForTrigger("stress"); got == genericAction {
		t.Error("known trigger should get its specific action")
	}
	if got := ActionForTrigger("quantum flux"); got != genericAction {
		t.Errorf("unknown trigger must fall back to the generic action, got %q", got)
	}
	if got := ActionForTrigger(""); got != genericAction {
		t.Errorf("empty trigger must fall back to the generic action, got %q", got)
	}
}

func TestPredictSuccessProbability_MatchingHistory(t *testing.T) {
	morning := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	night := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		// Same trigger, similar intensity: matches
		makeEvent("a", night, 6, "stress", true),
		// Same trigger, same bucket: matches
		makeEvent("b", morning, 10, "stress", false),
		// Different trigger: never matches
		makeEvent("c", morning, 5, "boredom", true),
	}

	p := PredictSuccessProbability(events, "stress", 5, models.BucketMorning)
	if p.UsedFallback {
		t.Error("expected direct matches, not the fallback")
	}
	if p.SampleSize != 2 {
		t.Errorf("expected 2 matches, got %d", p.SampleSize)
	}
	if p.Probability != 50 {
		t.Errorf("expected 50%%, got %d", p.Probability)
	}
}

func TestPredictSuccessProbability_FallbackToOverallRate(t *testing.T) {
	// The requested trigger never appears in history, so the overall
	// success rate is used.
	morning := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		makeEvent("a", morning, 5, "stress", true),
		makeEvent("b", morning.Add(time.Hour), 7, "stress", true),
		makeEvent("c", morning.Add(2*time.Hour), 6, "boredom", false),
	}

	p := PredictSuccessProbability(events, "loneliness", 5, models.BucketMorning)
	if !p.UsedFallback {
		t.Error("expected fallback to overall success rate")
	}
	if p.SampleSize != 3 {
		t.Errorf("expected sample size 3, got %d", p.SampleSize)
	}
	if p.Probability != 67 {
		t.Errorf("expected 67%% (2/3 rounded), got %d", p.Probability)
	}
}

func TestPredictSuccessProbability_NoHistoryAtAll(t *testing.T) {
	p := PredictSuccessProbability(nil, "stress", 5, models.BucketMorning)
	if p.Probability != 0 || p.SampleSize != 0 {
		t.Errorf("expected zero prediction on empty history, got %+v", p)
	}
}

func TestPredictSuccessProbability_OutcomeCountsAsSuccess(t *testing.T) {
	morning := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	event := makeEvent("a", morning, 5, "stress", false)
	event.Outcome = &models.InterventionOutcome{
		Type:       models.InterventionBreathing,
		Successful: true,
		Timestamp:  morning.Add(5 * time.Minute),
	}

	p := PredictSuccessProbability([]models.CravingEvent{event}, "stress", 5, models.BucketMorning)
	if p.Probability != 100 {
		t.Errorf("a successful intervention should count as success, got %d%%", p.Probability)
	}
}

func TestRecommendForNow_UsesCurrentBucket(t *testing.T) {
	afternoon := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	outcomes := []models.InterventionOutcome{
		makeOutcome(afternoon, models.InterventionBreathing, true, 0, 0),
		makeOutcome(afternoon.Add(time.Minute), models.InterventionBreathing, true, 0, 0),
		makeOutcome(afternoon.Add(2*time.Minute), models.InterventionBreathing, true, 0, 0),
	}

	now := time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC) // afternoon
	rec, ok := RecommendForNow(outcomes, now, 0)
	if !ok || rec.Method != models.InterventionBreathing {
		t.Errorf("expected breathing for the afternoon bucket, got %+v (ok=%v)", rec, ok)
	}

	nightNow := time.Date(2025, 3, 2, 23, 0, 0, 0, time.UTC)
	if _, ok := RecommendForNow(outcomes, nightNow, 0); ok {
		t.Error("expected no recommendation for the night bucket")
	}
}
