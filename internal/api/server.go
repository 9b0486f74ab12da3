package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"recipeapp.com/internal/api/middleware"
	"recipeapp.com/internal/engine"
)

// Options tunes NewServer.
type Options struct {
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// NewServer builds the Fiber app with every route registered.
func NewServer(eng *engine.Engine, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      eng.Config().Server.AppName,
		ErrorHandler: handleError,
	})

	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())
	app.Use(middleware.Metrics(eng.Metrics()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(eng.Metrics().Registry, promhttp.HandlerOpts{})))

	NewRouter(app, eng).RegisterRoutes()

	return app
}
