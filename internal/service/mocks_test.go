package service

import (
	"context"
	"fmt"
	"time"

	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/internal/repository"
)

// mockCravingRepository is a mock implementation of CravingEventRepository for testing
type mockCravingRepository struct {
	events      map[string]*models.CravingEvent // id -> event
	createCalls int
	deleteCalls int
	nextID      int
}

func newMockCravingRepository() *mockCravingRepository {
	return &mockCravingRepository{
		events: make(map[string]*models.CravingEvent),
	}
}

func (m *mockCravingRepository) generateID() string {
	m.nextID++
	return fmt.Sprintf("craving-%d", m.nextID)
}

func (m *mockCravingRepository) Create(ctx context.Context, event *models.CravingEvent) (*models.CravingEvent, error) {
	m.createCalls++
	if event.ID == "" {
		event.ID = m.generateID()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	m.events[event.ID] = event
	return event, nil
}

func (m *mockCravingRepository) GetByID(ctx context.Context, id string) (*models.CravingEvent, error) {
	if event, ok := m.events[id]; ok {
		copied := *event
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockCravingRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.CravingEvent, error) {
	var result []models.CravingEvent
	for _, event := range m.events {
		if event.UserID == userID {
			result = append(result, *event)
		}
	}
	return result, nil
}

func (m *mockCravingRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.CravingEvent, error) {
	var result []models.CravingEvent
	for _, event := range m.events {
		if event.UserID != userID {
			continue
		}
		if event.Timestamp.Before(start) || !event.Timestamp.Before(end) {
			continue
		}
		result = append(result, *event)
	}
	return result, nil
}

func (m *mockCravingRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if _, ok := m.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// mockOutcomeRepository is a mock implementation of OutcomeRepository for testing
type mockOutcomeRepository struct {
	outcomes    map[string]*models.InterventionOutcome // craving_event_id -> outcome
	createCalls int
	nextID      int
}

func newMockOutcomeRepository() *mockOutcomeRepository {
	return &mockOutcomeRepository{
		outcomes: make(map[string]*models.InterventionOutcome),
	}
}

func (m *mockOutcomeRepository) Create(ctx context.Context, outcome *models.InterventionOutcome) (*models.InterventionOutcome, error) {
	m.createCalls++
	if outcome.ID == "" {
		m.nextID++
		outcome.ID = fmt.Sprintf("outcome-%d", m.nextID)
	}
	outcome.CreatedAt = time.Now()
	m.outcomes[outcome.CravingEventID] = outcome
	return outcome, nil
}

func (m *mockOutcomeRepository) GetByCravingEventID(ctx context.Context, cravingEventID string) (*models.InterventionOutcome, error) {
	if outcome, ok := m.outcomes[cravingEventID]; ok {
		copied := *outcome
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockOutcomeRepository) GetByUserID(ctx context.Context, userID string) ([]models.InterventionOutcome, error) {
	var result []models.InterventionOutcome
	for _, outcome := range m.outcomes {
		if outcome.UserID == userID {
			result = append(result, *outcome)
		}
	}
	return result, nil
}

func intPtr(v int) *int { return &v }
