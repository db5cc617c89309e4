package weather_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-check/internal/models"
	"weather-check/internal/repositories"
	"weather-check/internal/services/weather"
	"weather-check/pkg/logger"
)

// MockGeocoder implements repositories.Geocoder for testing
type MockGeocoder struct {
	coords    models.Coordinates
	err       error
	callCount int
	lastQuery models.LocationQuery
}

func (m *MockGeocoder) Name() string {
	return "mock-geocoder"
}

func (m *MockGeocoder) Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinates, error) {
	m.callCount++
	m.lastQuery = query
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, models.NewError(models.ErrorKindCanceled, "mock geocode", err)
	}
	if m.err != nil {
		return models.Coordinates{}, m.err
	}
	return m.coords, nil
}

// MockForecast implements repositories.ForecastRepository for testing
type MockForecast struct {
	forecast  models.Forecast
	err       error
	callCount int
	lastCoord models.Coordinates
}

func (m *MockForecast) Name() string {
	return "mock-forecast"
}

func (m *MockForecast) FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error) {
	m.callCount++
	m.lastCoord = coords
	if m.err != nil {
		return models.Forecast{}, m.err
	}
	f := m.forecast
	f.Coordinates = coords
	return f, nil
}

var kolkata = models.Coordinates{Lat: 22.5726, Lon: 88.3639, Name: "Kolkata", State: "West Bengal", Country: "IN"}

func scenarioForecast() models.Forecast {
	return models.Forecast{
		Timezone: "UTC",
		Current:  &models.CurrentConditions{Time: "2026-10-19T01:00", Temp: 20, WindSpd: 2},
		Hourly: models.HourlyForecast{
			Time:             []string{"2026-10-19T00:00", "2026-10-19T01:00", "2026-10-19T02:00"},
			Temperature2m:    []float64{10, 20, 15},
			WindSpeed10m:     []float64{1, 2, 3},
			RelativeHumidity: []float64{50, 60, 70},
		},
	}
}

func newService(g *MockGeocoder, f *MockForecast) *weather.WeatherService {
	return weather.NewWeatherService(
		repositories.Repositories{Geocoder: g, Forecast: f},
		logger.NewZapLogger("test-app", io.Discard),
	)
}

func TestWeatherService_Fetch_Success(t *testing.T) {
	g := &MockGeocoder{coords: kolkata}
	f := &MockForecast{forecast: scenarioForecast()}

	report, err := newService(g, f).Fetch(context.Background(), models.LocationQuery{Name: " Kolkata ", Country: "in"})
	require.NoError(t, err)

	assert.Equal(t, models.LocationQuery{Name: "Kolkata", Country: "IN"}, g.lastQuery)
	assert.Equal(t, kolkata, f.lastCoord)

	assert.Equal(t, "Kolkata, West Bengal, IN", report.Place)
	assert.Equal(t, "UTC", report.Timezone)
	require.Len(t, report.Series, 3)
	assert.Equal(t, "01:00", report.Series[1].Hour)

	agg := report.Aggregates
	assert.Equal(t, 20.0, *agg.HighestTemp)
	assert.Equal(t, 10.0, *agg.LowestTemp)
	assert.Equal(t, "2.00", *agg.AvgWindSpeed)
	assert.Equal(t, "60.00", *agg.AvgHumidity)

	require.NotNil(t, report.Current)
	assert.Equal(t, 20.0, report.Current.Temp)
	assert.False(t, report.FetchedAt.IsZero())
}

func TestWeatherService_Fetch_EmptyHourly(t *testing.T) {
	g := &MockGeocoder{coords: kolkata}
	f := &MockForecast{forecast: models.Forecast{Timezone: "UTC"}}

	report, err := newService(g, f).Fetch(context.Background(), models.LocationQuery{Name: "Kolkata"})
	require.NoError(t, err)
	assert.Len(t, report.Series, 0)
	assert.Nil(t, report.Aggregates.HighestTemp)
	assert.Nil(t, report.Aggregates.LowestTemp)
	assert.Nil(t, report.Aggregates.AvgWindSpeed)
	assert.Nil(t, report.Aggregates.AvgHumidity)
}

func TestWeatherService_Fetch_LocationNotFound(t *testing.T) {
	g := &MockGeocoder{err: models.NewError(models.ErrorKindLocationNotFound, "mock geocode", models.ErrLocationNotFound)}
	f := &MockForecast{}

	_, err := newService(g, f).Fetch(context.Background(), models.LocationQuery{Name: "Atlantis"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindLocationNotFound, models.KindOf(err))
	assert.True(t, errors.Is(err, models.ErrLocationNotFound))
	assert.Contains(t, err.Error(), `geocode "Atlantis"`)
	assert.Equal(t, 0, f.callCount)
}

func TestWeatherService_Fetch_EmptyQuery(t *testing.T) {
	g := &MockGeocoder{}
	f := &MockForecast{}

	_, err := newService(g, f).Fetch(context.Background(), models.LocationQuery{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindInvalidQuery, models.KindOf(err))
	assert.Equal(t, 0, g.callCount)
}

func TestWeatherService_Fetch_ForecastFailure(t *testing.T) {
	g := &MockGeocoder{coords: kolkata}
	f := &MockForecast{err: models.NewError(models.ErrorKindUpstream, "mock forecast", errors.New("HTTP error (status 503)"))}

	_, err := newService(g, f).Fetch(context.Background(), models.LocationQuery{Name: "Kolkata"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindUpstream, models.KindOf(err))
}

func TestWeatherService_Fetch_MalformedForecast(t *testing.T) {
	bad := scenarioForecast()
	bad.Hourly.WindSpeed10m = bad.Hourly.WindSpeed10m[:1]

	_, err := newService(&MockGeocoder{coords: kolkata}, &MockForecast{forecast: bad}).
		Fetch(context.Background(), models.LocationQuery{Name: "Kolkata"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindMalformedResponse, models.KindOf(err))
}

func TestWeatherService_Fetch_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &MockForecast{forecast: scenarioForecast()}
	_, err := newService(&MockGeocoder{coords: kolkata}, f).Fetch(ctx, models.LocationQuery{Name: "Kolkata"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindCanceled, models.KindOf(err))
	assert.Equal(t, 0, f.callCount)
}
