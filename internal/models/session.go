package models

import "time"

// SessionStatus is the lifecycle state of a live intervention session
type SessionStatus string

const (
	SessionRunning   SessionStatus = "running"
	SessionCompleted SessionStatus = "completed"
)

// StartSessionRequest starts a live intervention session against a
// logged craving. InitialIntensity may be omitted; see the session
// engine for the fallback it implies.
type StartSessionRequest struct {
	CravingEventID   string `json:"craving_event_id" binding:"required"`
	InterventionType string `json:"intervention_type" binding:"required"`
	InitialIntensity *int   `json:"initial_intensity" binding:"omitempty,intensity"`
}

// UpdateSessionIntensityRequest reports the running intensity estimate
// mid-session.
type UpdateSessionIntensityRequest struct {
	Intensity int `json:"intensity" binding:"required,intensity"`
}

// CompleteSessionRequest carries the terminal signal for a session:
// resolved (craving passed) or still craving.
type CompleteSessionRequest struct {
	Resolved bool `json:"resolved"`
}

// SessionResponse is the API view of a live or completed session
type SessionResponse struct {
	ID               string               `json:"id"`
	CravingEventID   string               `json:"craving_event_id"`
	InterventionType InterventionType     `json:"intervention_type"`
	Status           SessionStatus        `json:"status"`
	StartedAt        time.Time            `json:"started_at"`
	ElapsedSeconds   int                  `json:"elapsed_seconds"`
	CurrentIntensity *int                 `json:"current_intensity,omitempty"`
	Outcome          *InterventionOutcome `json:"outcome,omitempty"`
}
