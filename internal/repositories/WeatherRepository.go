package repositories

import (
	"context"
	"fmt"
	"net/http"

	"weather-check/config"
	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Geocoder resolves a free-text location to the first matching candidate.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinates, error)
}

// ForecastRepository returns the raw hourly series for a coordinate pair.
type ForecastRepository interface {
	Name() string
	FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error)
}

type Repositories struct {
	Geocoder Geocoder
	Forecast ForecastRepository
}

// InitWeatherRepositories builds the geocoder and forecast clients from the
// weather.apis config entries. Both must be configured.
func InitWeatherRepositories(cfg *config.Config, l *logger.Logger) (Repositories, error) {
	var repos Repositories

	api, ok := cfg.GetWeatherAPIByName(config.OpenWeatherMapAPI)
	if !ok {
		return repos, fmt.Errorf("no geocoder configured: add a %q entry to weather.apis", config.OpenWeatherMapAPI)
	}
	geocoder, err := NewOpenWeatherMapGeocoder(api.APIKey, l, &http.Client{Timeout: api.TimeoutDuration()})
	if err != nil {
		return repos, fmt.Errorf("init %s: %w", api.Name, err)
	}
	if api.BaseURL != "" {
		geocoder.BaseURL = api.BaseURL
	}
	if api.Limit > 0 {
		geocoder.Limit = api.Limit
	}

	var g Geocoder = geocoder
	if api.RateLimit > 0 {
		g = NewRateLimitedGeocoder(g, api.RateLimit, api.Burst)
	}
	if ttl := api.CacheTTLDuration(); ttl > 0 {
		g = NewCachedGeocoder(g, ttl, l)
	}
	repos.Geocoder = g

	api, ok = cfg.GetWeatherAPIByName(config.OpenMeteoAPI)
	if !ok {
		return repos, fmt.Errorf("no forecast source configured: add a %q entry to weather.apis", config.OpenMeteoAPI)
	}
	forecast := NewOpenMeteoRepository(l, &http.Client{Timeout: api.TimeoutDuration()}, cfg.Weather.ForecastDays)
	if api.BaseURL != "" {
		forecast.BaseURL = api.BaseURL
	}
	repos.Forecast = forecast

	return repos, nil
}
