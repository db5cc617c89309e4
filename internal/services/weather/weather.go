package weather

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"weather-check/internal/models"
	"weather-check/internal/repositories"
	"weather-check/pkg/logger"
)

// WeatherService runs the geocode, forecast, transform, aggregate pipeline.
// It holds no per-request state and is safe for concurrent use.
type WeatherService struct {
	geocoder repositories.Geocoder
	forecast repositories.ForecastRepository
	l        *logger.Logger
	now      func() time.Time
}

func NewWeatherService(repos repositories.Repositories, l *logger.Logger) *WeatherService {
	return &WeatherService{
		geocoder: repos.Geocoder,
		forecast: repos.Forecast,
		l:        l,
		now:      time.Now,
	}
}

// Fetch resolves query and builds a report for its first geocoder candidate.
// Errors carry a models.ErrorKind; use models.KindOf to branch on them.
func (s *WeatherService) Fetch(ctx context.Context, query models.LocationQuery) (models.Report, error) {
	query = query.Normalize()
	report := models.Report{Query: query}

	if query.IsEmpty() {
		return report, models.NewError(models.ErrorKindInvalidQuery, "fetch weather", models.ErrEmptyQuery)
	}

	s.l.Info("starting weather fetch", map[string]any{
		"query":    query.GeocoderParam(),
		"geocoder": s.geocoder.Name(),
		"forecast": s.forecast.Name(),
	})

	coords, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.l.Warning("failed to geocode location", map[string]any{"query": query.GeocoderParam(), "err": err.Error()})
		return report, errors.Wrapf(err, "geocode %q", query.GeocoderParam())
	}

	s.l.Debug("geocoded location", map[string]any{
		"query":  query.GeocoderParam(),
		"place":  coords.Place(),
		"params": coords.RequestParams(),
	})

	forecast, err := s.forecast.FetchForecast(ctx, coords)
	if err != nil {
		s.l.Warning("failed to fetch forecast", map[string]any{"query": query.GeocoderParam(), "err": err.Error()})
		return report, errors.Wrapf(err, "forecast for %s", coords.Place())
	}

	series, err := TransformSeries(forecast.Hourly, LoadTimezone(forecast.Timezone))
	if err != nil {
		s.l.Warning("failed to transform forecast", map[string]any{"query": query.GeocoderParam(), "err": err.Error()})
		return report, errors.Wrap(err, "transform forecast")
	}

	report.Place = coords.Place()
	report.Timezone = forecast.Timezone
	report.Series = series
	report.Aggregates = Aggregate(series)
	report.Current = forecast.Current
	report.FetchedAt = s.now()

	s.l.Info("completed weather fetch", map[string]any{
		"query": query.GeocoderParam(),
		"place": report.Place,
		"hours": len(series),
	})

	return report, nil
}
