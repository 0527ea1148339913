package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-widget/internal/search"
	"github.com/i474232898/weather-widget/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The session
// endpoints drive the single widget session held by orch.
func RegisterRoutes(app *fiber.App, service search.Fetcher, orch *search.Orchestrator, defaultUnit weather.Unit) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c, defaultUnit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// A throwaway session gives the stateless endpoint the widget's
		// commit rules.
		session, fetch := search.Reduce(search.NewSession(q.Unit), search.SearchRequested{Text: &q.LocationText})
		if sf, ok := fetch.(search.StartFetch); ok {
			lookup, lerr := service.Lookup(c.UserContext(), sf.Query)
			session, _ = search.Reduce(session, search.FetchSettled{Generation: sf.Generation, Lookup: lookup, Err: lerr})
		}
		return c.JSON(newStatePayload(session.State))
	})

	session := v1.Group("/session")

	session.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(newViewPayload(orch.View()))
	})

	session.Post("/text", func(c *fiber.Ctx) error {
		var req textRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		orch.TextChanged(req.Text)
		return c.JSON(newViewPayload(orch.View()))
	})

	session.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}
		return c.JSON(newViewPayload(orch.Search(c.UserContext(), req.Text)))
	})

	session.Post("/unit", func(c *fiber.Ctx) error {
		var req unitRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(newViewPayload(orch.ChangeUnit(c.UserContext(), weather.Unit(req.Unit))))
	})
}

type textRequest struct {
	Text string `json:"text"`
}

type searchRequest struct {
	Text *string `json:"text"`
}

type unitRequest struct {
	Unit string `json:"unit" validate:"required,oneof=metric imperial"`
}

// parseWeatherQuery reads city and units. The city must be non-blank; units
// defaults to the configured unit.
func parseWeatherQuery(c *fiber.Ctx, defaultUnit weather.Unit) (weather.Query, error) {
	q := weather.Query{
		LocationText: strings.TrimSpace(c.Query("city")),
		Unit:         weather.Unit(c.Query("units", string(defaultUnit))),
	}
	if q.LocationText == "" {
		return q, errors.New(weather.MsgEmptyLocation)
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
