package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/softphone-backend/internal/api/http/handlers"
	"github.com/spec-kit/softphone-backend/internal/auth"
	"github.com/spec-kit/softphone-backend/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Media          *handlers.MediaHandler
	Publish        *handlers.PublishHandler
	Health         *handlers.HealthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Check)
	app.Get("/metrics", adaptor.HTTPHandler(observability.MetricsHandler()))

	app.Post("/auth/login", cfg.Auth.Login)
	app.Post("/auth/refresh", cfg.AuthMiddleware.RequireRefreshToken(), cfg.Auth.Refresh)
	app.Post("/auth/logout", cfg.AuthMiddleware.RequireAuthenticated(), cfg.Auth.Logout)

	app.Get("/profile", cfg.AuthMiddleware.RequireAccessToken(), cfg.Profile.Profile)
	app.Get("/users", cfg.AuthMiddleware.RequireAccessToken(), cfg.Profile.Users)
	app.Get("/history", cfg.AuthMiddleware.RequireAccessToken(), cfg.Profile.History)

	app.Get("/check-media-access", cfg.Media.Check)

	pub := app.Group("/pub", handlers.LoopbackOnly())
	pub.Post("/users-state", cfg.Publish.UsersState)
	pub.Post("/active-calls", cfg.Publish.ActiveCalls)
	pub.Post("/contacts", cfg.Publish.Contacts)
}
