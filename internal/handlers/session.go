package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craveless/backend/internal/apierror"
	"github.com/craveless/backend/internal/engine"
	"github.com/craveless/backend/internal/logger"
	"github.com/craveless/backend/internal/models"
	"github.com/craveless/backend/internal/repository"
	"github.com/craveless/backend/internal/service"
)

// SessionHandler handles live intervention session HTTP requests
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// StartSession handles POST /api/v1/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}

	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	session, err := h.sessionService.Start(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Craving", req.CravingEventID))
		case errors.Is(err, service.ErrOutcomeExists):
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "Craving already has an intervention outcome"))
		default:
			logger.Ctx(c.Request.Context()).Error("failed to start session", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	sessionID := c.Param("id")

	session, err := h.sessionService.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.writeSessionError(c, sessionID, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// UpdateIntensity handles PATCH /api/v1/sessions/:id/intensity
func (h *SessionHandler) UpdateIntensity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	sessionID := c.Param("id")

	var req models.UpdateSessionIntensityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	session, err := h.sessionService.UpdateIntensity(c.Request.Context(), userID, sessionID, req.Intensity)
	if err != nil {
		h.writeSessionError(c, sessionID, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// CompleteSession handles POST /api/v1/sessions/:id/complete
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		writeUnauthorized(c)
		return
	}
	sessionID := c.Param("id")

	var req models.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	session, err := h.sessionService.Complete(c.Request.Context(), userID, sessionID, req.Resolved)
	if err != nil {
		h.writeSessionError(c, sessionID, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// writeSessionError maps the common session failures
func (h *SessionHandler) writeSessionError(c *gin.Context, sessionID string, err error) {
	requestID := apierror.GetRequestID(c)
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Session", sessionID))
	case errors.Is(err, engine.ErrSessionCompleted):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, "Session is already completed"))
	default:
		logger.Ctx(c.Request.Context()).Error("session request failed", logger.Err(err), logger.String("session_id", sessionID))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
