package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/coldreach/inboxstack/api/handlers"
	"github.com/coldreach/inboxstack/api/middleware"
	"github.com/coldreach/inboxstack/internal/repository"
	"github.com/coldreach/inboxstack/internal/tracing"
	"github.com/coldreach/inboxstack/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// Health check endpoint (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-INBOXSTACK-API-KEY",
		ValidAPIKey: apikey,
	})

	// API group with version and custom context
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.UserIdMiddleware())
	api.Use(middleware.CustomContextMiddleware("inboxstack")) // Add custom context for all /v1/* endpoints
	api.Use(middleware.TracingMiddleware())                   // Add tracing for all /v1/* endpoints
	{
		// Inbox endpoints
		inbox := api.Group("/inbox")
		{
			inbox.GET("", handlers.ListEmails(s.InboxService, repos.CredentialRepository))
			inbox.GET("/:seq/body", handlers.GetEmailBody(s.InboxService, repos.CredentialRepository))
		}

		// Integration endpoints
		integrations := api.Group("/integrations")
		{
			integrations.POST("/imap", handlers.ConnectIMAP(s.InboxService, repos.CredentialRepository))
			integrations.GET("/imap", handlers.GetIMAPStatus(repos.CredentialRepository))
			integrations.DELETE("/imap", handlers.DisconnectIMAP(repos.CredentialRepository))
		}
	}
}
