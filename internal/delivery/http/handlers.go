package http

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/skycast/backend/internal/domain"
	"github.com/skycast/backend/internal/service"
)

// ClientIDHeader identifies the caller's session; the remote IP is used when absent
const ClientIDHeader = "X-Client-ID"

// Handler contains all HTTP handlers
type Handler struct {
	weather    service.WeatherProvider
	airQuality service.AirQualityProvider
	searcher   service.Searcher
	sessions   *service.SessionRegistry
}

// NewHandler creates a new handler
func NewHandler(
	weather service.WeatherProvider,
	airQuality service.AirQualityProvider,
	searcher service.Searcher,
	sessions *service.SessionRegistry,
) *Handler {
	return &Handler{
		weather:    weather,
		airQuality: airQuality,
		searcher:   searcher,
		sessions:   sessions,
	}
}

// SearchRequest is the body of a session search
type SearchRequest struct {
	City string `json:"city"`
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "skycast-backend",
		"version":  "1.0.0",
		"sessions": h.sessions.Len(),
	})
}

// GetWeather returns current weather for ?city=
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	weather, err := h.weather.FetchWeather(c.Context(), c.Query("city"))
	if err != nil {
		return upstreamFailure(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    weather,
	})
}

// GetAirQuality returns the air quality index for ?lat=&lon=
func (h *Handler) GetAirQuality(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid latitude")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid longitude")
	}

	aqi, err := h.airQuality.FetchAirQuality(c.Context(), lat, lon)
	if err != nil {
		return upstreamFailure(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"aqi":   aqi,
			"label": aqi.Label(),
		},
	})
}

// DescribeAQI returns the label for /aqi/:index/label
func (h *Handler) DescribeAQI(c *fiber.Ctx) error {
	index, err := strconv.ParseFloat(c.Params("index"), 64)
	if err != nil || math.IsNaN(index) || math.IsInf(index, 0) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid index")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"index": index,
			"label": domain.DescribeAQI(index),
		},
	})
}

// Search runs a stateless weather + air quality search for ?city=
func (h *Handler) Search(c *fiber.Ctx) error {
	result, err := h.searcher.Search(c.Context(), c.Query("city"))
	if err != nil {
		return upstreamFailure(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// SessionSearch runs a search on the caller's session and returns its state.
// Failures are part of the state, so the status is 200 either way.
func (h *Handler) SessionSearch(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	city := utils.CopyString(req.City)
	state, applied := h.sessions.Get(clientID(c)).Search(c.Context(), city)

	return c.JSON(fiber.Map{
		"success": state.Error == nil,
		"applied": applied,
		"data":    state,
	})
}

// GetSession returns the caller's current state. Unknown clients get an
// empty state and no session is created for them.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	var state domain.SessionState
	if session, ok := h.sessions.Lookup(clientID(c)); ok {
		state = session.Snapshot()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    state,
	})
}

// ResetSession clears the caller's state
func (h *Handler) ResetSession(c *fiber.Ctx) error {
	id := clientID(c)
	if session, ok := h.sessions.Lookup(id); ok {
		session.Reset()
		h.sessions.Delete(id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// clientID returns a copy of the caller's id: header values point into
// fasthttp buffers that are reused once the request completes.
func clientID(c *fiber.Ctx) string {
	if id := c.Get(ClientIDHeader); id != "" {
		return utils.CopyString(id)
	}
	return utils.CopyString(c.IP())
}

// upstreamFailure maps fetcher errors to HTTP errors carrying the search message
func upstreamFailure(err error) error {
	message := domain.NewSearchError(err).Message

	var ne *domain.NetworkError
	if errors.As(err, &ne) {
		return fiber.NewError(fiber.StatusServiceUnavailable, message)
	}
	return fiber.NewError(fiber.StatusBadGateway, message)
}

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
