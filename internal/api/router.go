package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

type RouterDependencies struct {
	Store     store.Store
	StartTime time.Time
	// AllowedOrigins enables CORS for browser front ends. Empty disables it.
	AllowedOrigins []string
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if len(deps.AllowedOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = deps.AllowedOrigins
		config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		config.AllowHeaders = []string{"Origin", "Content-Type"}
		router.Use(cors.New(config))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storeStatus := "connected"
		statusCode := http.StatusOK
		if _, _, err := deps.Store.Get(ctx, "profile"); err != nil {
			storeStatus = "unreachable"
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, gin.H{
			"status": "ok",
			"store":  storeStatus,
			"uptime": time.Since(deps.StartTime).Round(time.Second).String(),
		})
	})

	h := NewHandler(deps.Store)
	h.RegisterRoutes(router.Group("/api"))
	return router
}
