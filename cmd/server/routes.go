package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"waitlist.backend/internal/config"
	"waitlist.backend/internal/interfaces/http/handlers"
	"waitlist.backend/internal/interfaces/http/middleware"
	"waitlist.backend/pkg/metrics"
)

const webhookIdempotencyScope = "payment-status"

type routeDeps struct {
	accessHandler     *handlers.AccessHandler
	waitlistHandler   *handlers.WaitlistHandler
	paymentHandler    *handlers.PaymentHandler
	healthHandler     *handlers.HealthHandler
	webhookMiddleware gin.HandlerFunc
}

func newRouter(cfg *config.Config, d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoutes(r, d.healthHandler)
	registerAPIRoutes(r, d)
	return r
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", handlers.PaymentHeader, middleware.RequestIDHeader, middleware.IdempotencyHeader},
		ExposeHeaders:    []string{"X-PAYMENT-RESPONSE", "X-Transaction-Hash", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsCfg))
}

func registerHealthRoutes(r *gin.Engine, h *handlers.HealthHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		api.POST("/protected-content", d.accessHandler.Access)
		api.GET("/waitlist/check", d.waitlistHandler.Check)
		api.GET("/payments", d.paymentHandler.ListPayments)

		webhooks := api.Group("/webhooks")
		webhooks.Use(d.webhookMiddleware)
		{
			webhooks.POST("/payment-status", middleware.IdempotencyMiddleware(webhookIdempotencyScope), d.paymentHandler.UpdateStatus)
		}
	}

	// Unprefixed aliases
	r.POST("/access", d.accessHandler.Access)
	r.GET("/waitlist/check", d.waitlistHandler.Check)
}
