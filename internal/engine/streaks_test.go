package engine

import (
	"testing"
	"time"

	"github.com/craveless/backend/internal/models"
)

func makeOutcome(ts time.Time, method models.InterventionType, successful bool, before, after int) models.InterventionOutcome {
	o := models.InterventionOutcome{
		UserID:     "user-123",
		Type:       method,
		Successful: successful,
		Timestamp:  ts,
	}
	if before > 0 {
		o.IntensityBefore = &before
	}
	if after > 0 {
		o.IntensityAfter = &after
	}
	return o
}

func TestComputeInterventionStreaks_Empty(t *testing.T) {
	streak := ComputeInterventionStreaks(nil)
	if streak.Current != 0 || streak.Longest != 0 {
		t.Errorf("expected zero streaks, got %+v", streak)
	}
}

func TestComputeInterventionStreaks_RecentFailureBreaksCurrent(t *testing.T) {
	// Success then failure: most recent attempt failed, so current is 0
	// but longest is 1.
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	outcomes := []models.InterventionOutcome{
		makeOutcome(base, models.InterventionBreathing, true, 8, 3),
		makeOutcome(base.Add(time.Hour), models.InterventionBreathing, false, 7, 7),
	}

	streak := ComputeInterventionStreaks(outcomes)
	if streak.Current != 0 {
		t.Errorf("expected current 0, got %d", streak.Current)
	}
	if streak.Longest != 1 {
		t.Errorf("expected longest 1, got %d", streak.Longest)
	}
}

func TestComputeInterventionStreaks_OrderIndependent(t *testing.T) {
	// Same history in any input permutation must produce the same
	// streaks; the engine sorts chronologically itself.
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	history := []models.InterventionOutcome{
		makeOutcome(base, models.InterventionTimer, true, 0, 0),
		makeOutcome(base.Add(1*time.Hour), models.InterventionTimer, true, 0, 0),
		makeOutcome(base.Add(2*time.Hour), models.InterventionTimer, false, 0, 0),
		makeOutcome(base.Add(3*time.Hour), models.InterventionTimer, true, 0, 0),
		makeOutcome(base.Add(4*time.Hour), models.InterventionTimer, true, 0, 0),
		makeOutcome(base.Add(5*time.Hour), models.InterventionTimer, true, 0, 0),
	}

	permutations := [][]int{
		{0, 1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1, 0},
		{2, 0, 5, 1, 4, 3},
		{3, 5, 0, 4, 2, 1},
	}
	for _, perm := range permutations {
		shuffled := make([]models.InterventionOutcome, 0, len(history))
		for _, idx := range perm {
			shuffled = append(shuffled, history[idx])
		}
		streak := ComputeInterventionStreaks(shuffled)
		if streak.Current != 3 || streak.Longest != 3 {
			t.Errorf("permutation %v: expected current 3 / longest 3, got %+v", perm, streak)
		}
	}
}

func TestComputeInterventionStreaks_LongestEarlierInHistory(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	outcomes := []models.InterventionOutcome{
		makeOutcome(base, models.InterventionBreathing, true, 0, 0),
		makeOutcome(base.Add(1*time.Hour), models.InterventionBreathing, true, 0, 0),
		makeOutcome(base.Add(2*time.Hour), models.InterventionBreathing, true, 0, 0),
		makeOutcome(base.Add(3*time.Hour), models.InterventionBreathing, true, 0, 0),
		makeOutcome(base.Add(4*time.Hour), models.InterventionBreathing, false, 0, 0),
		makeOutcome(base.Add(5*time.Hour), models.InterventionBreathing, true, 0, 0),
	}

	streak := ComputeInterventionStreaks(outcomes)
	if streak.Current != 1 {
		t.Errorf("expected current 1, got %d", streak.Current)
	}
	if streak.Longest != 4 {
		t.Errorf("expected longest 4, got %d", streak.Longest)
	}
}

func TestComputeDayStreaks_Empty(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	streak := ComputeDayStreaks(nil, now)
	if streak.Current != 0 || streak.Longest != 0 {
		t.Errorf("expected zero streaks, got %+v", streak)
	}
}

func TestComputeDayStreaks_CurrentCountsBackFromToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		makeEvent("a", time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC), 5, "stress", false),
		makeEvent("b", time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC), 5, "stress", false),
		makeEvent("c", time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), 5, "stress", false),
		// Multiple entries on one day count once
		makeEvent("d", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 5, "stress", false),
	}

	streak := ComputeDayStreaks(events, now)
	if streak.Current != 3 {
		t.Errorf("expected current 3, got %d", streak.Current)
	}
	if streak.Longest != 3 {
		t.Errorf("expected longest 3, got %d", streak.Longest)
	}
}

func TestComputeDayStreaks_LatestYesterdayStillCounts(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		makeEvent("a", time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC), 5, "stress", false),
		makeEvent("b", time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC), 5, "stress", false),
	}

	streak := ComputeDayStreaks(events, now)
	if streak.Current != 2 {
		t.Errorf("expected current 2 when latest log was yesterday, got %d", streak.Current)
	}
}

func TestComputeDayStreaks_GapOverOneDayBreaksCurrent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.CravingEvent{
		makeEvent("a", time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC), 5, "stress", false),
		makeEvent("b", time.Date(2025, 3, 6, 8, 0, 0, 0, time.UTC), 5, "stress", false),
		makeEvent("c", time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC), 5, "stress", false),
	}

	streak := ComputeDayStreaks(events, now)
	if streak.Current != 0 {
		t.Errorf("expected current 0 after a multi-day gap, got %d", streak.Current)
	}
	if streak.Longest != 3 {
		t.Errorf("expected longest 3, got %d", streak.Longest)
	}
}
