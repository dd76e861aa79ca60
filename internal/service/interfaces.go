// Package service wires repositories and the analytics engine into the
// operations the API exposes. Services hold no derived state: analytics
// are recomputed from the latest snapshot on every call.
package service

import (
	"context"
	"time"

	"github.com/craveless/backend/internal/models"
)

// CravingService defines the business logic for craving events and
// their attached intervention outcomes
type CravingService interface {
	CreateCraving(ctx context.Context, userID string, req *models.CreateCravingRequest) (*models.CravingEvent, error)
	GetCraving(ctx context.Context, userID, cravingID string) (*models.CravingEvent, error)
	ListCravings(ctx context.Context, userID string, query *models.ListCravingsQuery) ([]models.CravingEvent, error)
	DeleteCraving(ctx context.Context, userID, cravingID string) error
	RecordOutcome(ctx context.Context, userID, cravingID string, req *models.RecordOutcomeRequest) (*models.InterventionOutcome, error)
}

// AnalyticsService defines the derived-analytics operations
type AnalyticsService interface {
	GetSummary(ctx context.Context, userID string, start, end time.Time) (*models.AnalyticsSummary, error)
	GetStreaks(ctx context.Context, userID string) (*models.StreakSummary, error)
	GetEffectiveness(ctx context.Context, userID string) (*models.EffectivenessTable, error)
	GetRiskWindows(ctx context.Context, userID string) ([]models.RiskWindow, error)
	PredictSuccess(ctx context.Context, userID, trigger string, intensity int) (*models.SuccessPrediction, error)
	RecommendMethod(ctx context.Context, userID string) (*models.MethodRecommendation, bool, error)
}

// SessionService drives live intervention sessions and records their
// terminal outcomes
type SessionService interface {
	Start(ctx context.Context, userID string, req *models.StartSessionRequest) (*models.SessionResponse, error)
	Get(ctx context.Context, userID, sessionID string) (*models.SessionResponse, error)
	UpdateIntensity(ctx context.Context, userID, sessionID string, intensity int) (*models.SessionResponse, error)
	Complete(ctx context.Context, userID, sessionID string, resolved bool) (*models.SessionResponse, error)
}
