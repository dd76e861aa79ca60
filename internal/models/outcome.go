package models

import (
	"strings"
	"time"
)

// InterventionType is the closed set of coping techniques. Free-text
// labels from clients are parsed once at ingestion; anything unknown
// collapses to InterventionOther rather than failing.
type InterventionType string

const (
	InterventionBreathing InterventionType = "breathing"
	InterventionDistract  InterventionType = "distract"
	InterventionReframe   InterventionType = "reframe"
	InterventionTimer     InterventionType = "timer"
	InterventionHolistic  InterventionType = "holistic"
	InterventionOther     InterventionType = "other"
)

// ParseInterventionType maps a label to its InterventionType.
// Unrecognized labels map to InterventionOther.
func ParseInterventionType(label string) InterventionType {
	switch InterventionType(strings.ToLower(strings.TrimSpace(label))) {
	case InterventionBreathing:
		return InterventionBreathing
	case InterventionDistract:
		return InterventionDistract
	case InterventionReframe:
		return InterventionReframe
	case InterventionTimer:
		return InterventionTimer
	case InterventionHolistic:
		return InterventionHolistic
	default:
		return InterventionOther
	}
}

// InterventionOutcome is the terminal result of one intervention attempt
// tied to a craving event. Created once at session completion, never
// mutated. IntensityBefore/After are optional: outcomes recorded without
// them are skipped in reduction averages instead of counting as zero.
type InterventionOutcome struct {
	ID              string           `json:"id"`
	CravingEventID  string           `json:"craving_event_id"`
	UserID          string           `json:"user_id"`
	Type            InterventionType `json:"intervention_type"`
	Successful      bool             `json:"successful"`
	IntensityBefore *int             `json:"intensity_before,omitempty"`
	IntensityAfter  *int             `json:"intensity_after,omitempty"`
	DurationSeconds int              `json:"duration_seconds"`
	Timestamp       time.Time        `json:"timestamp"`
	CreatedAt       time.Time        `json:"created_at"`
}

// IntensityReduction returns before minus after. The value may be
// negative (a worsened craving) and is preserved as-is; ok is false when
// either side is missing.
func (o *InterventionOutcome) IntensityReduction() (int, bool) {
	if o.IntensityBefore == nil || o.IntensityAfter == nil {
		return 0, false
	}
	return *o.IntensityBefore - *o.IntensityAfter, true
}

// RecordOutcomeRequest represents the request to attach an outcome to a
// logged craving.
type RecordOutcomeRequest struct {
	InterventionType string     `json:"intervention_type" binding:"required"`
	Successful       bool       `json:"successful"`
	IntensityBefore  *int       `json:"intensity_before" binding:"omitempty,intensity"`
	IntensityAfter   *int       `json:"intensity_after" binding:"omitempty,intensity"`
	DurationSeconds  int        `json:"duration_seconds" binding:"gte=0"`
	Timestamp        *time.Time `json:"timestamp"`
}
