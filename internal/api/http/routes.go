package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherexplorer/backend/internal/weather"
)

var validate = validator.New()

// ForecastLookup is what the forecast endpoint needs from the orchestrator.
type ForecastLookup interface {
	Forecast(ctx context.Context, query string) (*weather.ForecastBundle, error)
}

// Suggester is what the suggestion endpoint needs from the service.
type Suggester interface {
	Suggest(ctx context.Context, partial string, limit int) []string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. The handlers
// only ever see the unified forecast schema; which provider produced what is
// invisible here.
func RegisterRoutes(app *fiber.App, lookup ForecastLookup, suggester Suggester, suggestLimit int) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		req.City = c.Query("city")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		bundle, err := lookup.Forecast(c.Context(), req.City)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrEmptyQuery):
				return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
			case errors.Is(err, weather.ErrNotFound):
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			default:
				// Malformed payloads and upstream failures alike surface as
				// a generic failure, never a crash.
				return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
			}
		}

		return c.JSON(bundle)
	})

	v1.Get("/suggest", func(c *fiber.Ctx) error {
		q := c.Query("q")

		limit := suggestLimit
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
				limit = n
			}
		}

		suggestions := suggester.Suggest(c.Context(), q, limit)
		if suggestions == nil {
			suggestions = []string{}
		}

		return c.JSON(fiber.Map{
			"query":       q,
			"suggestions": suggestions,
		})
	})
}

// forecastQuery holds the forecast endpoint's query parameters.
type forecastQuery struct {
	City string `validate:"required"`
}
