package models

// TimeBucket is one of the four fixed day parts used for temporal
// pattern analysis.
type TimeBucket string

const (
	BucketMorning   TimeBucket = "morning"   // [05:00, 12:00)
	BucketAfternoon TimeBucket = "afternoon" // [12:00, 17:00)
	BucketEvening   TimeBucket = "evening"   // [17:00, 22:00)
	BucketNight     TimeBucket = "night"     // [22:00, 05:00)
)

// AllTimeBuckets lists the buckets in day order, starting at morning.
// Iterating this slice instead of a map keeps response ordering stable.
var AllTimeBuckets = []TimeBucket{BucketMorning, BucketAfternoon, BucketEvening, BucketNight}

// RiskLevel classifies a time bucket by historical craving intensity
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// TriggerCount is one row of a trigger frequency table
type TriggerCount struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

// TrendPoint is the mean craving intensity for one calendar date
type TrendPoint struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	AverageIntensity float64 `json:"average_intensity"`
	Count            int     `json:"count"`
}

// AnalyticsSummary holds the descriptive aggregates for a date range.
// Every field has a defined zero value for an empty collection.
type AnalyticsSummary struct {
	TotalCravings       int                           `json:"total_cravings"`
	ResistedCravings    int                           `json:"resisted_cravings"`
	ResistanceRate      float64                       `json:"resistance_rate"` // 0-100
	AverageIntensity    float64                       `json:"average_intensity"`
	CommonTriggers      []TriggerCount                `json:"common_triggers"`
	TriggersByTimeOfDay map[TimeBucket][]TriggerCount `json:"triggers_by_time_of_day"`
	IntensityTrend      []TrendPoint                  `json:"intensity_trend"`
}

// Streak is a current/longest pair for one streak concept
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// StreakSummary combines both streak concepts
type StreakSummary struct {
	Interventions Streak `json:"interventions"` // consecutive successful attempts
	Days          Streak `json:"days"`          // consecutive calendar days with an entry
}

// MethodStats is one cell of the effectiveness table, either a
// per-method total or a method x bucket cell.
type MethodStats struct {
	Method           InterventionType `json:"method"`
	TotalUsed        int              `json:"total_used"`
	Successes        int              `json:"successes"`
	SuccessRate      float64          `json:"success_rate"` // 0-100
	AvgReduction     float64          `json:"avg_reduction"`
	ReductionSamples int              `json:"reduction_samples"`
	MeetsSampleFloor bool             `json:"meets_sample_floor"`
}

// EffectivenessTable holds per-method stats and the method x bucket
// cross tabulation. Cells below the sample floor stay in the table for
// transparency but are never surfaced as recommendations.
type EffectivenessTable struct {
	Methods  []MethodStats                                   `json:"methods"` // ranked
	ByBucket map[TimeBucket]map[InterventionType]MethodStats `json:"by_bucket"`
}

// RiskWindow classifies one time bucket for the risk report
type RiskWindow struct {
	Bucket            TimeBucket     `json:"bucket"`
	RiskScore         float64        `json:"risk_score"` // 0-1
	RiskLevel         RiskLevel      `json:"risk_level"`
	TopTriggers       []TriggerCount `json:"top_triggers"` // at most 2
	RecommendedAction string         `json:"recommended_action"`
}

// SuccessPrediction is the estimated probability of a successful
// intervention for a proposed attempt right now.
type SuccessPrediction struct {
	Trigger      string     `json:"trigger"`
	Intensity    int        `json:"intensity"`
	Bucket       TimeBucket `json:"bucket"`
	Probability  int        `json:"probability"` // 0-100, rounded
	SampleSize   int        `json:"sample_size"`
	UsedFallback bool       `json:"used_fallback"` // true when no similar history matched
}

// MethodRecommendation is the best first-try method for a bucket
type MethodRecommendation struct {
	Bucket      TimeBucket       `json:"bucket"`
	Method      InterventionType `json:"method"`
	SuccessRate float64          `json:"success_rate"`
	TotalUsed   int              `json:"total_used"`
}
