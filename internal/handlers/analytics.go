package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craveless/backend/internal/apierror"
	"github.com/craveless/backend/internal/logger"
	"github.com/craveless/backend/internal/service"
)

// defaultSummaryDays is the window used when no explicit range is given
const defaultSummaryDays = 30

// AnalyticsHandler handles analytics and prediction HTTP requests
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetSummary handles GET /api/v1/analytics/summary
// Optional start/end query params (RFC3339) default to the last 30 days.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -defaultSummaryDays)

	var fieldErrs []apierror.FieldError
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrs = append(fieldErrs, apierror.FieldError{Field: "start", Message: "must be a valid RFC3339 timestamp", Code: "invalid_format"})
		} else {
			start = parsed
		}
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrs = append(fieldErrs, apierror.FieldError{Field: "end", Message: "must be a valid RFC3339 timestamp", Code: "invalid_format"})
		} else {
			end = parsed
		}
	}
	if len(fieldErrs) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrs))
		return
	}

	summary, err := h.analyticsService.GetSummary(c.Request.Context(), userID, start, end)
	if err != nil {
		h.writeInternal(c, "failed to compute summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStreaks handles GET /api/v1/analytics/streaks
func (h *AnalyticsHandler) GetStreaks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	streaks, err := h.analyticsService.GetStreaks(c.Request.Context(), userID)
	if err != nil {
		h.writeInternal(c, "failed to compute streaks", err)
		return
	}

	c.JSON(http.StatusOK, streaks)
}

// GetEffectiveness handles GET /api/v1/analytics/effectiveness
func (h *AnalyticsHandler) GetEffectiveness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	table, err := h.analyticsService.GetEffectiveness(c.Request.Context(), userID)
	if err != nil {
		h.writeInternal(c, "failed to compute effectiveness", err)
		return
	}

	c.JSON(http.StatusOK, table)
}

// GetRiskWindows handles GET /api/v1/analytics/risk-windows
func (h *AnalyticsHandler) GetRiskWindows(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	windows, err := h.analyticsService.GetRiskWindows(c.Request.Context(), userID)
	if err != nil {
		h.writeInternal(c, "failed to compute risk windows", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// PredictSuccess handles GET /api/v1/analytics/prediction
// Requires trigger and intensity query params.
func (h *AnalyticsHandler) PredictSuccess(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	var fieldErrs []apierror.FieldError
	trigger := c.Query("trigger")
	if trigger == "" {
		fieldErrs = append(fieldErrs, apierror.FieldError{Field: "trigger", Message: "is required", Code: "required"})
	}
	intensity, err := strconv.Atoi(c.Query("intensity"))
	if err != nil {
		fieldErrs = append(fieldErrs, apierror.FieldError{Field: "intensity", Message: "must be an integer", Code: "invalid_type"})
	}
	if len(fieldErrs) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrs))
		return
	}

	prediction, err := h.analyticsService.PredictSuccess(c.Request.Context(), userID, trigger, intensity)
	if err != nil {
		h.writeInternal(c, "failed to predict success", err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// RecommendMethod handles GET /api/v1/analytics/recommendation
// Responds 204 when no method meets the sample floor for the current
// time bucket.
func (h *AnalyticsHandler) RecommendMethod(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	rec, found, err := h.analyticsService.RecommendMethod(c.Request.Context(), userID)
	if err != nil {
		h.writeInternal(c, "failed to recommend method", err)
		return
	}
	if !found {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *AnalyticsHandler) writeInternal(c *gin.Context, msg string, err error) {
	logger.Ctx(c.Request.Context()).Error(msg, logger.Err(err))
	apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
}
