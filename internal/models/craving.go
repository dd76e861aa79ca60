package models

import (
	"strings"
	"time"
)

// CravingEvent represents one logged craving instance.
// Timestamp is immutable once created; the trigger label is normalized
// at ingestion so frequency tables never fragment on case or whitespace.
type CravingEvent struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	Timestamp       time.Time            `json:"timestamp"`
	Intensity       int                  `json:"intensity"`
	Trigger         string               `json:"trigger"`
	DurationMinutes *int                 `json:"duration_minutes,omitempty"`
	Location        *string              `json:"location,omitempty"`
	Resisted        bool                 `json:"resisted"`
	MoodBefore      *int                 `json:"mood_before,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	Outcome         *InterventionOutcome `json:"outcome,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateCravingRequest represents the request to log a craving
type CreateCravingRequest struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp" binding:"required"`
	Intensity       int       `json:"intensity" binding:"required,intensity"`
	Trigger         string    `json:"trigger" binding:"required"`
	DurationMinutes *int      `json:"duration_minutes" binding:"omitempty,gt=0"`
	Location        *string   `json:"location"`
	Resisted        bool      `json:"resisted"`
	MoodBefore      *int      `json:"mood_before" binding:"omitempty,intensity"`
	Notes           *string   `json:"notes"`
}

// ListCravingsQuery holds the optional filters for listing cravings
type ListCravingsQuery struct {
	Trigger  string     `form:"trigger"`
	Resisted *bool      `form:"resisted"`
	Start    *time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00"`
	End      *time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// NormalizeTrigger canonicalizes a free-text trigger label: lowercased,
// trimmed, inner whitespace collapsed to single spaces.
func NormalizeTrigger(trigger string) string {
	return strings.Join(strings.Fields(strings.ToLower(trigger)), " ")
}

// ClampScale clamps a 1-10 scale value into its valid range.
func ClampScale(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
