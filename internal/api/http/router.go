package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mesadeayuda/helpdesk/internal/api/http/handlers"
	"github.com/mesadeayuda/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/mine", cfg.Tickets.ListOwnTickets)
	tickets.Get("/all", auth.RequireStaff(), cfg.Tickets.ListGrouped)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/claim", auth.RequireStaff(), cfg.Tickets.ClaimTicket)
	tickets.Patch("/:id/complete", auth.RequireStaff(), cfg.Tickets.CompleteTicket)
	tickets.Patch("/:id/cancel", cfg.Tickets.CancelTicket)
}
