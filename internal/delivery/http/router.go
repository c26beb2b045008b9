package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Single fetchers
		api.Get("/weather", handler.GetWeather)
		api.Get("/air-quality", handler.GetAirQuality)
		api.Get("/aqi/:index/label", handler.DescribeAQI)

		// Orchestrated search
		api.Get("/search", handler.Search)

		// Per-client display state
		api.Get("/session", handler.GetSession)
		api.Post("/session/search", handler.SessionSearch)
		api.Delete("/session", handler.ResetSession)
	}
}
