package engine

import (
	"sort"

	"github.com/craveless/backend/internal/models"
)

// MinSamplesPerCell is the minimum number of uses a method (or a
// method x bucket cell) needs before it may be surfaced as a
// recommendation. One lucky attempt is not a signal.
const MinSamplesPerCell = 3

// ComputeMethodEffectiveness computes success rate and average
// intensity reduction per intervention method, and the same broken down
// by time bucket. Cells below minSamples are retained in the table but
// flagged ineligible. minSamples <= 0 falls back to MinSamplesPerCell.
//
// Methods in the ranked slice are ordered by success rate descending;
// ties break to the method with more uses, then to first-seen order.
func ComputeMethodEffectiveness(outcomes []models.InterventionOutcome, minSamples int) models.EffectivenessTable {
	if minSamples <= 0 {
		minSamples = MinSamplesPerCell
	}

	table := models.EffectivenessTable{
		Methods:  []models.MethodStats{},
		ByBucket: make(map[models.TimeBucket]map[models.InterventionType]models.MethodStats, len(models.AllTimeBuckets)),
	}
	for _, bucket := range models.AllTimeBuckets {
		table.ByBucket[bucket] = make(map[models.InterventionType]models.MethodStats)
	}
	if len(outcomes) == 0 {
		return table
	}

	type cellAcc struct {
		total        int
		successes    int
		reductionSum int
		reductionN   int
	}
	overall := make(map[models.InterventionType]*cellAcc)
	perBucket := make(map[models.TimeBucket]map[models.InterventionType]*cellAcc)
	firstSeen := make(map[models.InterventionType]int)
	order := make([]models.InterventionType, 0)

	accumulate := func(acc *cellAcc, o models.InterventionOutcome) {
		acc.total++
		if o.Successful {
			acc.successes++
		}
		if reduction, ok := o.IntensityReduction(); ok {
			acc.reductionSum += reduction
			acc.reductionN++
		}
	}

	for i, o := range outcomes {
		if _, ok := overall[o.Type]; !ok {
			overall[o.Type] = &cellAcc{}
			firstSeen[o.Type] = i
			order = append(order, o.Type)
		}
		accumulate(overall[o.Type], o)

		bucket := BucketFor(o.Timestamp)
		if perBucket[bucket] == nil {
			perBucket[bucket] = make(map[models.InterventionType]*cellAcc)
		}
		if perBucket[bucket][o.Type] == nil {
			perBucket[bucket][o.Type] = &cellAcc{}
		}
		accumulate(perBucket[bucket][o.Type], o)
	}

	toStats := func(method models.InterventionType, acc *cellAcc) models.MethodStats {
		stats := models.MethodStats{
			Method:           method,
			TotalUsed:        acc.total,
			Successes:        acc.successes,
			ReductionSamples: acc.reductionN,
			MeetsSampleFloor: acc.total >= minSamples,
		}
		if acc.total > 0 {
			stats.SuccessRate = float64(acc.successes) / float64(acc.total) * 100
		}
		if acc.reductionN > 0 {
			stats.AvgReduction = float64(acc.reductionSum) / float64(acc.reductionN)
		}
		return stats
	}

	for _, method := range order {
		table.Methods = append(table.Methods, toStats(method, overall[method]))
	}
	sort.SliceStable(table.Methods, func(i, j int) bool {
		a, b := table.Methods[i], table.Methods[j]
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate > b.SuccessRate
		}
		if a.TotalUsed != b.TotalUsed {
			return a.TotalUsed > b.TotalUsed
		}
		return firstSeen[a.Method] < firstSeen[b.Method]
	})

	for bucket, cells := range perBucket {
		for method, acc := range cells {
			table.ByBucket[bucket][method] = toStats(method, acc)
		}
	}

	return table
}

// RecommendBestMethod picks the highest-success-rate method among the
// cells of the given bucket meeting the sample floor. Returns ok=false
// when no cell qualifies: absence, not a guess.
func RecommendBestMethod(outcomes []models.InterventionOutcome, bucket models.TimeBucket, minSamples int) (models.MethodRecommendation, bool) {
	table := ComputeMethodEffectiveness(outcomes, minSamples)
	cells := table.ByBucket[bucket]

	methods := make([]models.InterventionType, 0, len(cells))
	for method := range cells {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })

	var best models.MethodRecommendation
	found := false
	for _, method := range methods {
		cell := cells[method]
		if !cell.MeetsSampleFloor {
			continue
		}
		if !found || cell.SuccessRate > best.SuccessRate ||
			(cell.SuccessRate == best.SuccessRate && cell.TotalUsed > best.TotalUsed) {
			best = models.MethodRecommendation{
				Bucket:      bucket,
				Method:      method,
				SuccessRate: cell.SuccessRate,
				TotalUsed:   cell.TotalUsed,
			}
			found = true
		}
	}
	return best, found
}
