package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/galsan/jungang-heights-api/internal/api/http/handlers"
	"github.com/galsan/jungang-heights-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Public   *handlers.PublicHandler
	Admin    *handlers.AdminHandler
	Sessions auth.SessionManager
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/register", cfg.Public.Register)

	admin := app.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)
	admin.Post("/logout", cfg.Admin.Logout)

	protected := admin.Group("", auth.RequireAdmin(cfg.Sessions))
	protected.Get("/stats", cfg.Admin.Stats)
	protected.Get("/registrations", cfg.Admin.List)
	protected.Get("/registrations/:id", cfg.Admin.Get)
	protected.Patch("/registrations/:id", cfg.Admin.UpdateStatus)
	protected.Delete("/registrations/:id", cfg.Admin.Delete)
	protected.Get("/export", cfg.Admin.Export)
}
