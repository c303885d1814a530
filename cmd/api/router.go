package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"propertypro-backend/internal/shared/middleware"
	"propertypro-backend/internal/shared/response"
	"propertypro-backend/pkg/container"
)

// healthChecker cho phép test router mà không cần container thật
type healthChecker interface {
	HealthCheck(ctx context.Context) (map[string]string, error)
}

func SetupRouter(c *container.Container) *gin.Engine {
	router := newEngine(c.Config.Upload.MaxImageBytes)

	auth := middleware.AuthMiddleware(c.JWTManager, c.Revocations)

	v2 := router.Group("/api/v2")
	{
		// Health check
		v2.GET("/health", healthCheckHandler(c, c.Config.App.Version))

		c.UserHandler.RegisterRoutes(v2, auth)
		c.PropertyHandler.RegisterRoutes(v2, auth)
	}

	return router
}

// newEngine tạo gin engine với global middlewares
func newEngine(maxUploadBytes int64) *gin.Engine {
	router := gin.New()
	if maxUploadBytes > 0 {
		router.MaxMultipartMemory = maxUploadBytes
	}

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	return router
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(checker healthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status, err := checker.HealthCheck(ctx)
		payload := gin.H{
			"version":      version,
			"dependencies": status,
		}

		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Status: http.StatusServiceUnavailable,
				Data:   payload,
				Error:  "service unavailable",
			})
			return
		}

		response.Success(c, http.StatusOK, payload)
	}
}
