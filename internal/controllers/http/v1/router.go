package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-check/docs"
	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

// WeatherFetcher runs the stateless pipeline.
type WeatherFetcher interface {
	Fetch(ctx context.Context, query models.LocationQuery) (models.Report, error)
}

// ViewStateController is the stateful side the rendering surface talks to.
type ViewStateController interface {
	Snapshot() models.ViewState
	Search(ctx context.Context, query models.LocationQuery) (models.ViewState, error)
	Subscribe() (<-chan models.ViewState, func())
}

type routes struct {
	service    WeatherFetcher
	controller ViewStateController
	l          *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService WeatherFetcher,
	controller ViewStateController,
	l *logger.Logger,
) {
	r := &routes{
		service:    weatherService,
		controller: controller,
		l:          l,
	}

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	api := app.Group("/api/v1")
	api.Get("/weather", r.handleWeatherCall)
	api.Get("/state", r.handleState)
	api.Get("/state/stream", r.handleStateStream)
	api.Post("/search", r.handleSearch)
}
