package routes

import (
	"onboarding_backend/internal/handlers"
	"onboarding_backend/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	m *metrics.HTTPServerMetrics,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.SessionHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
		appHandlers.AdvertHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}

	if m != nil {
		ginRouter.GET("/metrics", gin.WrapH(m.Handler()))
	}
}
