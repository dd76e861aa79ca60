package service

import (
	"context"
	"fmt"
	"time"

	"github.com/craveless/backend/internal/engine"
	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/internal/repository"
)

// historyWindowDays bounds how far back the full-history analytics
// reach. Matches the range the trend views consume.
const historyWindowDays = 90

type analyticsService struct {
	cravingRepo repository.CravingEventRepository
	outcomeRepo repository.OutcomeRepository
	minSamples  int
	now         func() time.Time
}

// NewAnalyticsService creates a new analytics service. minSamples <= 0
// uses the engine default.
func NewAnalyticsService(cravingRepo repository.CravingEventRepository, outcomeRepo repository.OutcomeRepository, minSamples int) AnalyticsService {
	return &analyticsService{
		cravingRepo: cravingRepo,
		outcomeRepo: outcomeRepo,
		minSamples:  minSamples,
		now:         time.Now,
	}
}

// loadHistory fetches the user's recent events with outcomes attached
func (s *analyticsService) loadHistory(ctx context.Context, userID string) ([]models.CravingEvent, error) {
	end := s.now()
	start := end.AddDate(0, 0, -historyWindowDays)

	events, err := s.cravingRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	outcomes, err := s.outcomeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outcomes: %w", err)
	}

	byEvent := make(map[string]*models.InterventionOutcome, len(outcomes))
	for i := range outcomes {
		byEvent[outcomes[i].CravingEventID] = &outcomes[i]
	}
	for i := range events {
		events[i].Outcome = byEvent[events[i].ID]
	}
	return events, nil
}

func (s *analyticsService) GetSummary(ctx context.Context, userID string, start, end time.Time) (*models.AnalyticsSummary, error) {
	events, err := s.cravingRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	summary := engine.ComputeAnalytics(events)
	return &summary, nil
}

func (s *analyticsService) GetStreaks(ctx context.Context, userID string) (*models.StreakSummary, error) {
	events, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.outcomeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outcomes: %w", err)
	}

	return &models.StreakSummary{
		Interventions: engine.ComputeInterventionStreaks(outcomes),
		Days:          engine.ComputeDayStreaks(events, s.now()),
	}, nil
}

func (s *analyticsService) GetEffectiveness(ctx context.Context, userID string) (*models.EffectivenessTable, error) {
	outcomes, err := s.outcomeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outcomes: %w", err)
	}

	table := engine.ComputeMethodEffectiveness(outcomes, s.minSamples)
	return &table, nil
}

func (s *analyticsService) GetRiskWindows(ctx context.Context, userID string) ([]models.RiskWindow, error) {
	events, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.PredictRiskWindows(events), nil
}

func (s *analyticsService) PredictSuccess(ctx context.Context, userID, trigger string, intensity int) (*models.SuccessPrediction, error) {
	events, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	bucket := engine.BucketFor(s.now())
	prediction := engine.PredictSuccessProbability(events, trigger, models.ClampScale(intensity), bucket)
	return &prediction, nil
}

func (s *analyticsService) RecommendMethod(ctx context.Context, userID string) (*models.MethodRecommendation, bool, error) {
	outcomes, err := s.outcomeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get outcomes: %w", err)
	}

	rec, ok := engine.RecommendForNow(outcomes, s.now(), s.minSamples)
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}
