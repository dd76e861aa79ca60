package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/pkg/supabase"
)

type outcomeRepository struct {
	client *supabase.Client
}

// NewOutcomeRepository creates a new intervention outcome repository
func NewOutcomeRepository(client *supabase.Client) OutcomeRepository {
	return &outcomeRepository{client: client}
}

func (r *outcomeRepository) Create(ctx context.Context, outcome *models.InterventionOutcome) (*models.InterventionOutcome, error) {
	data := map[string]interface{}{
		"craving_event_id":  outcome.CravingEventID,
		"user_id":           outcome.UserID,
		"intervention_type": outcome.Type,
		"successful":        outcome.Successful,
		"duration_seconds":  outcome.DurationSeconds,
		"timestamp":         outcome.Timestamp,
	}
	if outcome.ID != "" {
		data["id"] = outcome.ID
	}
	if outcome.IntensityBefore != nil {
		data["intensity_before"] = *outcome.IntensityBefore
	}
	if outcome.IntensityAfter != nil {
		data["intensity_after"] = *outcome.IntensityAfter
	}

	body, err := r.client.Insert("intervention_outcomes", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create outcome: %w", err)
	}

	var outcomes []models.InterventionOutcome
	if err := json.Unmarshal(body, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("no outcome returned")
	}
	return &outcomes[0], nil
}

func (r *outcomeRepository) GetByCravingEventID(ctx context.Context, cravingEventID string) (*models.InterventionOutcome, error) {
	body, err := r.client.Query("intervention_outcomes", map[string]string{
		"craving_event_id": "eq." + cravingEventID,
		"select":           "*",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get outcome: %w", err)
	}

	var outcomes []models.InterventionOutcome
	if err := json.Unmarshal(body, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(outcomes) == 0 {
		return nil, ErrNotFound
	}
	return &outcomes[0], nil
}

func (r *outcomeRepository) GetByUserID(ctx context.Context, userID string) ([]models.InterventionOutcome, error) {
	body, err := r.client.Query("intervention_outcomes", map[string]string{
		"user_id": "eq." + userID,
		"select":  "*",
		"order":   "timestamp.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}

	var outcomes []models.InterventionOutcome
	if err := json.Unmarshal(body, &outcomes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return outcomes, nil
}
