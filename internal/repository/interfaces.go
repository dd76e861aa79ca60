// Package repository provides data access for craving events and
// intervention outcomes. Persistence lives in the external Supabase
// store; the engine itself never owns state.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/craveless/backend/internal/models"
)

// ErrNotFound indicates the requested record does not exist
var ErrNotFound = errors.New("record not found")

// CravingEventRepository defines data access for craving events
type CravingEventRepository interface {
	Create(ctx context.Context, event *models.CravingEvent) (*models.CravingEvent, error)
	GetByID(ctx context.Context, id string) (*models.CravingEvent, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.CravingEvent, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.CravingEvent, error)
	Delete(ctx context.Context, id string) error
}

// OutcomeRepository defines data access for intervention outcomes
type OutcomeRepository interface {
	Create(ctx context.Context, outcome *models.InterventionOutcome) (*models.InterventionOutcome, error)
	GetByCravingEventID(ctx context.Context, cravingEventID string) (*models.InterventionOutcome, error)
	GetByUserID(ctx context.Context, userID string) ([]models.InterventionOutcome, error)
}
