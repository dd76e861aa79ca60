package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/pkg/supabase"
)

type cravingEventRepository struct {
	client *supabase.Client
}

// NewCravingEventRepository creates a new craving event repository
func NewCravingEventRepository(client *supabase.Client) CravingEventRepository {
	return &cravingEventRepository{client: client}
}

func (r *cravingEventRepository) Create(ctx context.Context, event *models.CravingEvent) (*models.CravingEvent, error) {
	data := map[string]interface{}{
		"user_id":   event.UserID,
		"timestamp": event.Timestamp,
		"intensity": event.Intensity,
		"trigger":   event.Trigger,
		"resisted":  event.Resisted,
	}

	// Use the client-provided ID when present (offline-first clients)
	if event.ID != "" {
		data["id"] = event.ID
	}
	if event.DurationMinutes != nil {
		data["duration_minutes"] = *event.DurationMinutes
	}
	if event.Location != nil {
		data["location"] = *event.Location
	}
	if event.MoodBefore != nil {
		data["mood_before"] = *event.MoodBefore
	}
	if event.Notes != nil {
		data["notes"] = *event.Notes
	}

	body, err := r.client.Insert("craving_events", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create craving event: %w", err)
	}

	var events []models.CravingEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no craving event returned")
	}
	return &events[0], nil
}

func (r *cravingEventRepository) GetByID(ctx context.Context, id string) (*models.CravingEvent, error) {
	body, err := r.client.Query("craving_events", map[string]string{
		"id":     "eq." + id,
		"select": "*",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get craving event: %w", err)
	}

	var events []models.CravingEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return &events[0], nil
}

func (r *cravingEventRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.CravingEvent, error) {
	params := map[string]string{
		"user_id": "eq." + userID,
		"select":  "*",
		"order":   "timestamp.desc", // most recent first is the default view
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	if offset > 0 {
		params["offset"] = strconv.Itoa(offset)
	}

	body, err := r.client.Query("craving_events", params)
	if err != nil {
		return nil, fmt.Errorf("failed to list craving events: %w", err)
	}

	var events []models.CravingEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return events, nil
}

func (r *cravingEventRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.CravingEvent, error) {
	body, err := r.client.Query("craving_events", map[string]string{
		"user_id": "eq." + userID,
		"and": fmt.Sprintf("(timestamp.gte.%s,timestamp.lt.%s)",
			start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)),
		"select": "*",
		"order":  "timestamp.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list craving events by range: %w", err)
	}

	var events []models.CravingEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return events, nil
}

func (r *cravingEventRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("craving_events", id); err != nil {
		return fmt.Errorf("failed to delete craving event: %w", err)
	}
	return nil
}
