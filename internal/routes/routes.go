package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/imf-ops/gadget-api/internal/auth"
	"github.com/imf-ops/gadget-api/internal/config"
	"github.com/imf-ops/gadget-api/internal/handlers"
	"github.com/imf-ops/gadget-api/internal/middleware"
	"github.com/imf-ops/gadget-api/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	gadgetHandler *handlers.GadgetHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Gadget inventory — every route requires a verified identity; reads are
	// open to any clearance level, mutations to HANDLER and ADMIN only.
	gadgets := api.Group("/gadgets",
		middleware.JWTProtected(cfg),
		middleware.IdentityRequired(authService),
	)
	handlerOrAdmin := middleware.RoleRequired(auth.RoleHandler, auth.RoleAdmin)

	gadgets.Get("/", gadgetHandler.List)
	gadgets.Get("/:id", gadgetHandler.Get)
	gadgets.Post("/", handlerOrAdmin, gadgetHandler.Create)
	gadgets.Patch("/:id", handlerOrAdmin, gadgetHandler.Update)
	gadgets.Delete("/:id", handlerOrAdmin, gadgetHandler.Decommission)
	gadgets.Post("/:id/self-destruct", handlerOrAdmin, gadgetHandler.SelfDestruct)

	// 404 catch-all
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Mission failed: Endpoint not found",
			"message": "This message will self-destruct in 5 seconds...",
		})
	})
}
