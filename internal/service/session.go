package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/craveless/backend/internal/engine"
	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/internal/repository"
)

// ErrSessionNotFound indicates the session does not exist or belongs
// to a different user
var ErrSessionNotFound = errors.New("session not found")

// sessionService keeps live sessions in memory. Each session is driven
// by a single caller; the registry map is the only shared state and is
// guarded by a mutex. Abandoned sessions simply stay running and
// record nothing, which is a valid outcome.
type sessionService struct {
	cravingRepo repository.CravingEventRepository
	outcomeRepo repository.OutcomeRepository

	mu       sync.Mutex
	sessions map[string]*sessionEntry

	now func() time.Time
}

type sessionEntry struct {
	userID  string
	session *engine.Session
	outcome *models.InterventionOutcome
}

// NewSessionService creates a new session service
func NewSessionService(cravingRepo repository.CravingEventRepository, outcomeRepo repository.OutcomeRepository) SessionService {
	return &sessionService{
		cravingRepo: cravingRepo,
		outcomeRepo: outcomeRepo,
		sessions:    make(map[string]*sessionEntry),
		now:         time.Now,
	}
}

func (s *sessionService) Start(ctx context.Context, userID string, req *models.StartSessionRequest) (*models.SessionResponse, error) {
	event, err := s.cravingRepo.GetByID(ctx, req.CravingEventID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, repository.ErrNotFound
	}

	// One intervention attempt per logged craving
	if _, err := s.outcomeRepo.GetByCravingEventID(ctx, req.CravingEventID); err == nil {
		return nil, ErrOutcomeExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	session := engine.StartSession(
		uuid.New().String(),
		req.CravingEventID,
		userID,
		models.ParseInterventionType(req.InterventionType),
		req.InitialIntensity,
		s.now,
	)

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{userID: userID, session: session}
	s.mu.Unlock()

	return s.toResponse(session, nil), nil
}

func (s *sessionService) Get(ctx context.Context, userID, sessionID string) (*models.SessionResponse, error) {
	entry, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(entry.session, entry.outcome), nil
}

func (s *sessionService) UpdateIntensity(ctx context.Context, userID, sessionID string, intensity int) (*models.SessionResponse, error) {
	entry, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := entry.session.UpdateIntensity(intensity); err != nil {
		return nil, err
	}
	return s.toResponse(entry.session, entry.outcome), nil
}

// Complete drives the terminal transition and persists the single
// InterventionOutcome onto the originating craving event.
func (s *sessionService) Complete(ctx context.Context, userID, sessionID string, resolved bool) (*models.SessionResponse, error) {
	entry, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := entry.session.Complete(resolved)
	if err != nil {
		return nil, err
	}

	created, err := s.outcomeRepo.Create(ctx, &outcome)
	if err != nil {
		return nil, fmt.Errorf("failed to persist outcome: %w", err)
	}

	s.mu.Lock()
	entry.outcome = created
	s.mu.Unlock()

	return s.toResponse(entry.session, created), nil
}

func (s *sessionService) lookup(userID, sessionID string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok || entry.userID != userID {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

func (s *sessionService) toResponse(session *engine.Session, outcome *models.InterventionOutcome) *models.SessionResponse {
	return &models.SessionResponse{
		ID:               session.ID,
		CravingEventID:   session.CravingEventID,
		InterventionType: session.Type,
		Status:           session.Status(),
		StartedAt:        session.StartedAt(),
		ElapsedSeconds:   int(session.Elapsed() / time.Second),
		CurrentIntensity: session.CurrentIntensity(),
		Outcome:          outcome,
	}
}
