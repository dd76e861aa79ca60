package engine

import (
	"errors"
	"time"

	"github.com/craveless/backend/internal/models"
)

// ErrSessionCompleted is returned when a terminal session is driven
// again. Completed is a terminal state; a new attempt needs a new
// session.
var ErrSessionCompleted = errors.New("session already completed")

// Session is the one mutable object in the engine: a live intervention
// attempt moving idle -> running -> completed. A session is single
// owner: one caller drives it at a time, so it carries no locking.
// Abandoning a running session simply records nothing.
//
// The clock is injected so elapsed time and outcome timestamps are
// deterministic under test.
type Session struct {
	ID             string
	CravingEventID string
	UserID         string
	Type           models.InterventionType

	startedAt        time.Time
	initialIntensity *int
	latestIntensity  *int
	completed        bool
	now              func() time.Time
}

// StartSession transitions idle -> running, capturing the start time
// and the initial intensity estimate (which may be absent).
func StartSession(id, cravingEventID, userID string, method models.InterventionType, initialIntensity *int, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		ID:             id,
		CravingEventID: cravingEventID,
		UserID:         userID,
		Type:           method,
		startedAt:      now(),
		now:            now,
	}
	if initialIntensity != nil {
		v := models.ClampScale(*initialIntensity)
		s.initialIntensity = &v
		s.latestIntensity = &v
	}
	return s
}

// UpdateIntensity records a running current-intensity estimate while
// the session is live.
func (s *Session) UpdateIntensity(intensity int) error {
	if s.completed {
		return ErrSessionCompleted
	}
	v := models.ClampScale(intensity)
	s.latestIntensity = &v
	return nil
}

// Elapsed returns the live elapsed time of the session. After
// completion it keeps growing with the clock; callers read it before
// the terminal transition.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.startedAt)
}

// Status reports the lifecycle state
func (s *Session) Status() models.SessionStatus {
	if s.completed {
		return models.SessionCompleted
	}
	return models.SessionRunning
}

// StartedAt returns the captured start instant
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// CurrentIntensity returns the latest reported intensity, if any
func (s *Session) CurrentIntensity() *int {
	return s.latestIntensity
}

// Complete transitions running -> completed on the consumer's terminal
// signal and returns the single InterventionOutcome for this attempt:
// successful = resolved, intensity_after = latest reported intensity,
// duration = elapsed since start.
//
// When the session was started without an explicit initial intensity,
// intensity_before falls back to the latest reported value. This
// approximates the true starting intensity and can misattribute
// reductions when the first report arrives late; it is kept for
// comparability with historical data.
func (s *Session) Complete(resolved bool) (models.InterventionOutcome, error) {
	if s.completed {
		return models.InterventionOutcome{}, ErrSessionCompleted
	}
	s.completed = true

	completedAt := s.now()
	outcome := models.InterventionOutcome{
		CravingEventID:  s.CravingEventID,
		UserID:          s.UserID,
		Type:            s.Type,
		Successful:      resolved,
		DurationSeconds: int(completedAt.Sub(s.startedAt) / time.Second),
		Timestamp:       completedAt,
	}

	before := s.initialIntensity
	if before == nil {
		before = s.latestIntensity
	}
	if before != nil {
		v := *before
		outcome.IntensityBefore = &v
	}
	if s.latestIntensity != nil {
		v := *s.latestIntensity
		outcome.IntensityAfter = &v
	}

	return outcome, nil
}
