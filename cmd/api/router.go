package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.Metrics(c.Metrics),
	)

	router.POST("/graphql", middleware.Authenticate(c.AuthService), c.GraphQLHandler.Serve)
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		storeStatus := "ok"
		if err := appCtx.Store.Ping(ctx); err != nil {
			storeStatus = "error: " + err.Error()
			health["status"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		redisStatus := "disabled"
		if appCtx.Redis != nil {
			redisStatus = "ok"
			if err := appCtx.Redis.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
				if status == http.StatusOK {
					health["status"] = "degraded"
				}
			}
		}

		health["services"] = gin.H{
			appCtx.Config.Store.Driver: storeStatus,
			"redis":                    redisStatus,
		}
		c.JSON(status, health)
	}
}
