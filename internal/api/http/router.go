package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/api/http/handlers"
	"github.com/spec-kit/roleforge-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Characters     *handlers.CharactersHandler
	Campaigns      *handlers.CampaignsHandler
	Sessions       *handlers.SessionsHandler
	AI             *handlers.AIHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Put("/me", cfg.Auth.UpdateMe)
	authProtected.Post("/change-password", cfg.Auth.ChangePassword)
	authProtected.Post("/logout", cfg.Auth.Logout)

	characters := app.Group("/characters", cfg.AuthMiddleware.Handle, auth.RequirePermissions("read"))
	characters.Get("/", cfg.Characters.List)
	characters.Post("/", auth.RequirePermissions("write"), cfg.Characters.Create)
	characters.Get("/:id", cfg.Characters.Get)
	characters.Put("/:id", auth.RequirePermissions("write"), cfg.Characters.Update)
	characters.Delete("/:id", auth.RequirePermissions("write"), cfg.Characters.Delete)

	campaigns := app.Group("/campaigns", cfg.AuthMiddleware.Handle, auth.RequirePermissions("read"))
	campaigns.Get("/", cfg.Campaigns.List)
	campaigns.Post("/", auth.RequirePermissions("write"), cfg.Campaigns.Create)
	campaigns.Get("/:id", cfg.Campaigns.Get)
	campaigns.Put("/:id", auth.RequirePermissions("write"), cfg.Campaigns.Update)
	campaigns.Delete("/:id", auth.RequirePermissions("write"), cfg.Campaigns.Delete)
	campaigns.Get("/:id/sessions", cfg.Sessions.List)
	campaigns.Post("/:id/sessions", auth.RequirePermissions("write"), cfg.Sessions.Create)

	sessions := app.Group("/sessions", cfg.AuthMiddleware.Handle, auth.RequirePermissions("read"))
	sessions.Get("/:id", cfg.Sessions.Get)
	sessions.Put("/:id", auth.RequirePermissions("write"), cfg.Sessions.Update)
	sessions.Delete("/:id", auth.RequirePermissions("write"), cfg.Sessions.Delete)

	ai := app.Group("/ai", cfg.AuthMiddleware.Handle, auth.RequirePermissions("read", "write"))
	ai.Post("/generate/backstory", cfg.AI.GenerateBackstory)
	ai.Post("/generate/npc", cfg.AI.GenerateNPC)
	ai.Post("/generate/image", cfg.AI.GenerateImage)
}
