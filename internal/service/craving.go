package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craveless/backend/internal/engine"
	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/internal/repository"
)

var (
	// ErrInvalidID indicates a client-supplied ID is not a valid UUID
	ErrInvalidID = errors.New("invalid UUID format")
	// ErrOutcomeExists indicates the craving already has its one outcome
	ErrOutcomeExists = errors.New("craving already has an intervention outcome")
)

type cravingService struct {
	cravingRepo repository.CravingEventRepository
	outcomeRepo repository.OutcomeRepository
	now         func() time.Time
}

// NewCravingService creates a new craving service
func NewCravingService(cravingRepo repository.CravingEventRepository, outcomeRepo repository.OutcomeRepository) CravingService {
	return &cravingService{
		cravingRepo: cravingRepo,
		outcomeRepo: outcomeRepo,
		now:         time.Now,
	}
}

func (s *cravingService) CreateCraving(ctx context.Context, userID string, req *models.CreateCravingRequest) (*models.CravingEvent, error) {
	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
	}

	event := &models.CravingEvent{
		ID:              req.ID,
		UserID:          userID,
		Timestamp:       req.Timestamp,
		Intensity:       models.ClampScale(req.Intensity),
		Trigger:         models.NormalizeTrigger(req.Trigger),
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Resisted:        req.Resisted,
		Notes:           req.Notes,
	}
	if req.MoodBefore != nil {
		mood := models.ClampScale(*req.MoodBefore)
		event.MoodBefore = &mood
	}

	created, err := s.cravingRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create craving: %w", err)
	}
	return created, nil
}

func (s *cravingService) GetCraving(ctx context.Context, userID, cravingID string) (*models.CravingEvent, error) {
	event, err := s.cravingRepo.GetByID(ctx, cravingID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		// Hide other users' records rather than acknowledging them
		return nil, repository.ErrNotFound
	}

	outcome, err := s.outcomeRepo.GetByCravingEventID(ctx, cravingID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	event.Outcome = outcome
	return event, nil
}

func (s *cravingService) ListCravings(ctx context.Context, userID string, query *models.ListCravingsQuery) ([]models.CravingEvent, error) {
	var events []models.CravingEvent
	var err error

	if query.Start != nil && query.End != nil {
		events, err = s.cravingRepo.GetByUserIDAndDateRange(ctx, userID, *query.Start, *query.End)
	} else {
		events, err = s.cravingRepo.GetByUserID(ctx, userID, query.Limit, query.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cravings: %w", err)
	}

	if query.Trigger != "" {
		events = engine.FilterByTrigger(events, query.Trigger)
	}
	if query.Resisted != nil {
		events = engine.FilterByResisted(events, *query.Resisted)
	}
	return engine.SortByTimestampDesc(events), nil
}

func (s *cravingService) DeleteCraving(ctx context.Context, userID, cravingID string) error {
	event, err := s.cravingRepo.GetByID(ctx, cravingID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return repository.ErrNotFound
	}
	return s.cravingRepo.Delete(ctx, cravingID)
}

// RecordOutcome attaches the single intervention outcome to a logged
// craving. A craving has at most one outcome; a second attempt fails
// with ErrOutcomeExists.
func (s *cravingService) RecordOutcome(ctx context.Context, userID, cravingID string, req *models.RecordOutcomeRequest) (*models.InterventionOutcome, error) {
	event, err := s.cravingRepo.GetByID(ctx, cravingID)
	if err != nil {
		return nil, err
	}
	if event.UserID != userID {
		return nil, repository.ErrNotFound
	}

	if _, err := s.outcomeRepo.GetByCravingEventID(ctx, cravingID); err == nil {
		return nil, ErrOutcomeExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	outcome := &models.InterventionOutcome{
		CravingEventID:  cravingID,
		UserID:          userID,
		Type:            models.ParseInterventionType(req.InterventionType),
		Successful:      req.Successful,
		DurationSeconds: req.DurationSeconds,
		Timestamp:       s.now(),
	}
	if req.Timestamp != nil {
		outcome.Timestamp = *req.Timestamp
	}
	if req.IntensityBefore != nil {
		v := models.ClampScale(*req.IntensityBefore)
		outcome.IntensityBefore = &v
	}
	if req.IntensityAfter != nil {
		v := models.ClampScale(*req.IntensityAfter)
		outcome.IntensityAfter = &v
	}

	created, err := s.outcomeRepo.Create(ctx, outcome)
	if err != nil {
		return nil, fmt.Errorf("failed to record outcome: %w", err)
	}
	return created, nil
}
