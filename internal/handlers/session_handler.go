package handlers

import (
	"net/http"

	"onboarding_backend/internal/observability/metrics"
	"onboarding_backend/internal/services"
	"onboarding_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SessionHandler answers the form's initial state lookup.
type SessionHandler struct {
	*BaseHandler
	sessionService services.SessionService
	metrics        *metrics.HTTPServerMetrics
}

func NewSessionHandler(base *BaseHandler, sessionService services.SessionService, m *metrics.HTTPServerMetrics) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    base,
		sessionService: sessionService,
		metrics:        m,
	}
}

func (h *SessionHandler) RegisterRoutes(r *gin.RouterGroup) {
	session := r.Group("/session")
	{
		session.GET("", h.GetSession)
	}
}

// GetSession validates the upload token and returns the view state. Always
// 200: invalid and already-completed are session states the form renders,
// not transport errors.
func (h *SessionHandler) GetSession(c *gin.Context) {
	var query dto.SessionQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp := h.sessionService.Validate(c.Request.Context(), h.GetDB(c), &query)

	if h.metrics != nil {
		h.metrics.RecordValidation(serviceName, string(resp.State))
	}

	c.JSON(http.StatusOK, resp)
}
