package engine

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/craveless/backend/internal/models"
)

func TestComputeMethodEffectiveness_Empty(t *testing.T) {
	table := ComputeMethodEffectiveness(nil, 0)
	if len(table.Methods) != 0 {
		t.Errorf("expected empty method list, got %d", len(table.Methods))
	}
	for _, bucket := range models.AllTimeBuckets {
		if len(table.ByBucket[bucket]) != 0 {
			t.Errorf("expected empty cells for bucket %s", bucket)
		}
	}
}

func TestComputeMethodEffectiveness_SuccessRateAndReduction(t *testing.T) {
	afternoon := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	outcomes := []models.InterventionOutcome{
		makeOutcome(afternoon, models.InterventionBreathing, true, 8, 3),
		makeOutcome(afternoon.Add(time.Hour), models.InterventionBreathing, false, 7, 7),
		// No before/after data: excluded from the reduction mean, not
		// counted as zero.
		makeOutcome(afternoon.Add(2*time.Hour), models.InterventionBreathing, true, 0, 0),
	}

	table := ComputeMethodEffectiveness(outcomes, 0)
	if len(table.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(table.Methods))
	}
	stats := table.Methods[0]
	if stats.TotalUsed != 3 || stats.Successes != 2 {
		t.Errorf("expected 3 used / 2 successes, got %d / %d", stats.TotalUsed, stats.Successes)
	}
	if math.Abs(stats.SuccessRate-200.0/3) > 1e-9 {
		t.Errorf("expected success rate 66.67, got %f", stats.SuccessRate)
	}
	if stats.ReductionSamples != 2 {
		t.Errorf("expected 2 reduction samples, got %d", stats.ReductionSamples)
	}
	if want := (5 + 0) / 2.0; stats.AvgReduction != want {
		t.Errorf("expected avg reduction %f, got %f", want, stats.AvgReduction)
	}
}

func TestComputeMethodEffectiveness_NegativeReductionPreserved(t *testing.T) {
	ts := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	// Worsened craving: after is higher than before
	outcomes := []models.InterventionOutcome{
		makeOutcome(ts, models.InterventionDistract, false, 4, 7),
	}

	table := ComputeMethodEffectiveness(outcomes, 0)
	if table.Methods[0].AvgReduction != -3 {
		t.Errorf("expected avg reduction -3, got %f", table.Methods[0].AvgReduction)
	}
}

func TestComputeMethodEffectiveness_RankingTieBreaks(t *testing.T) {
	ts := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	// timer: 2/2 successes; breathing: 4/4 successes. Equal rates,
	// breathing used more so it ranks first.
	outcomes := []models.InterventionOutcome{
		makeOutcome(ts, models.InterventionTimer, true, 0, 0),
		makeOutcome(ts.Add(1*time.Minute), models.InterventionTimer, true, 0, 0),
		makeOutcome(ts.Add(2*time.Minute), models.InterventionBreathing, true, 0, 0),
		makeOutcome(ts.Add(3*time.Minute), models.InterventionBreathing, true, 0, 0),
		makeOutcome(ts.Add(4*time.Minute), models.InterventionBreathing, true, 0, 0),
		makeOutcome(ts.Add(5*time.Minute), models.InterventionBreathing, true, 0, 0),
	}

	table := ComputeMethodEffectiveness(outcomes, 0)
	if table.Methods[0].Method != models.InterventionBreathing {
		t.Errorf("expected breathing ranked first on totalUsed tie-break, got %s", table.Methods[0].Method)
	}

	// Fully tied cells keep first-seen order
	tied := []models.InterventionOutcome{
		makeOutcome(ts, models.InterventionReframe, true, 0, 0),
		makeOutcome(ts.Add(time.Minute), models.InterventionHolistic, true, 0, 0),
	}
	table = ComputeMethodEffectiveness(tied, 0)
	if table.Methods[0].Method != models.InterventionReframe {
		t.Errorf("expected first-seen method first on full tie, got %s", table.Methods[0].Method)
	}
}

func TestRecommendBestMethod_SampleFloorScenario(t *testing.T) {
	// Three breathing outcomes in the afternoon, 2 successful (66.67%,
	// eligible). Two timer outcomes, both successful (100% but below the
	// sample floor). Breathing must win.
	afternoon := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	outcomes := []models.InterventionOutcome{
		makeOutcome(afternoon, models.InterventionBreathing, true, 0, 0),
		makeOutcome(afternoon.Add(10*time.Minute), models.InterventionBreathing, true, 0, 0),
		makeOutcome(afternoon.Add(20*time.Minute), models.InterventionBreathing, false, 0, 0),
		makeOutcome(afternoon.Add(30*time.Minute), models.InterventionTimer, true, 0, 0),
		makeOutcome(afternoon.Add(40*time.Minute), models.InterventionTimer, true, 0, 0),
	}

	rec, ok := RecommendBestMethod(outcomes, models.BucketAfternoon, 0)
	if !ok {
		t.Fatal("expected a recommendation")
	}
	if rec.Method != models.InterventionBreathing {
		t.Errorf("expected breathing, got %s", rec.Method)
	}
	if math.Abs(rec.SuccessRate-200.0/3) > 1e-9 {
		t.Errorf("expected success rate 66.67, got %f", rec.SuccessRate)
	}
}

func TestRecommendBestMethod_NoCellMeetsFloor(t *testing.T) {
	morning := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	outcomes := []models.InterventionOutcome{
		makeOutcome(morning, models.InterventionBreathing, true, 0, 0),
		makeOutcome(morning.Add(time.Hour), models.InterventionTimer, true, 0, 0),
	}

	if _, ok := RecommendBestMethod(outcomes, models.BucketMorning, 0); ok {
		t.Error("expected no recommendation when every cell is below the floor")
	}
}

func TestRecommendBestMethod_NeverSurfacesBelowFloor(t *testing.T) {
	// Randomized histories: a recommended cell always has at least
	// MinSamplesPerCell uses.
	rng := rand.New(rand.NewSource(42))
	methods := []models.InterventionType{
		models.InterventionBreathing,
		models.InterventionDistract,
		models.InterventionReframe,
		models.InterventionTimer,
		models.InterventionHolistic,
	}

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(20)
		outcomes := make([]models.InterventionOutcome, 0, n)
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < n; i++ {
			ts := base.Add(time.Duration(rng.Intn(24*60)) * time.Minute)
			outcomes = append(outcomes, makeOutcome(ts, methods[rng.Intn(len(methods))], rng.Intn(2) == 0, 0, 0))
		}

		for _, bucket := range models.AllTimeBuckets {
			rec, ok := RecommendBestMethod(outcomes, bucket, 0)
			if !ok {
				continue
			}
			if rec.TotalUsed < MinSamplesPerCell {
				t.Fatalf("trial %d: recommended %s in %s with only %d uses", trial, rec.Method, bucket, rec.TotalUsed)
			}
		}
	}
}
