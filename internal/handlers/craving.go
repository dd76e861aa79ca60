package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craveless/backend/internal/apierror"
	"github.com/craveless/backend/internal/logger"
	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/internal/repository"
	"github.com/craveless/backend/internal/service"
)

// CravingHandler handles craving event HTTP requests
type CravingHandler struct {
	cravingService service.CravingService
}

// NewCravingHandler creates a new craving handler
func NewCravingHandler(cravingService service.CravingService) *CravingHandler {
	return &CravingHandler{
		cravingService: cravingService,
	}
}

// CreateCraving handles POST /api/v1/cravings
func (h *CravingHandler) CreateCraving(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	var req models.CreateCravingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	log := logger.Ctx(c.Request.Context())

	event, err := h.cravingService.CreateCraving(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrInvalidID) {
			apierror.WriteProblem(c, apierror.NewInvalidUUIDError(requestID, "id", req.ID))
			return
		}
		log.Error("failed to create craving", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListCravings handles GET /api/v1/cravings
func (h *CravingHandler) ListCravings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	var query models.ListCravingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindingError(c, err)
		return
	}

	events, err := h.cravingService.ListCravings(c.Request.Context(), userID, &query)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list cravings", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		return
	}

	if events == nil {
		events = []models.CravingEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"cravings": events,
		"count":    len(events),
	})
}

// GetCraving handles GET /api/v1/cravings/:id
func (h *CravingHandler) GetCraving(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	cravingID := c.Param("id")

	event, err := h.cravingService.GetCraving(c.Request.Context(), userID, cravingID)
	if err != nil {
		h.writeCravingError(c, cravingID, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteCraving handles DELETE /api/v1/cravings/:id
func (h *CravingHandler) DeleteCraving(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	cravingID := c.Param("id")

	if err := h.cravingService.DeleteCraving(c.Request.Context(), userID, cravingID); err != nil {
		h.writeCravingError(c, cravingID, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordOutcome handles POST /api/v1/cravings/:id/outcome
func (h *CravingHandler) RecordOutcome(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	cravingID := c.Param("id")

	var req models.RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	outcome, err := h.cravingService.RecordOutcome(c.Request.Context(), userID, cravingID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrOutcomeExists) {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "Craving already has an intervention outcome"))
			return
		}
		h.writeCravingError(c, cravingID, err)
		return
	}

	c.JSON(http.StatusCreated, outcome)
}

// writeCravingError maps the common craving lookup failures
func (h *CravingHandler) writeCravingError(c *gin.Context, cravingID string, err error) {
	requestID := apierror.GetRequestID(c)
	if errors.Is(err, repository.ErrNotFound) {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Craving", cravingID))
		return
	}
	logger.Ctx(c.Request.Context()).Error("craving request failed", logger.Err(err), logger.String("craving_id", cravingID))
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}
