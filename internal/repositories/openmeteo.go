package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	openMeteoHourlyFields  = "temperature_2m,relative_humidity_2m,wind_speed_10m"
	openMeteoCurrentFields = "temperature_2m,wind_speed_10m"
)

type OpenMeteoRepository struct {
	BaseURL      string
	ForecastDays int
	httpClient   HTTPClient
	l            *logger.Logger
}

func NewOpenMeteoRepository(l *logger.Logger, httpClient HTTPClient, forecastDays int) *OpenMeteoRepository {
	return &OpenMeteoRepository{
		BaseURL:      OpenMeteoBaseURL,
		ForecastDays: forecastDays,
		httpClient:   httpClient,
		l:            l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type OpenMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   *struct {
		Time          string   `json:"time"`
		Temperature2m *float64 `json:"temperature_2m"`
		WindSpeed10m  *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly OpenMeteoHourly `json:"hourly"`
}

// OpenMeteoHourly keeps nulls visible; Open-Meteo sends null for hours it
// has no value for.
type OpenMeteoHourly struct {
	Time             []string   `json:"time"`
	Temperature2m    []*float64 `json:"temperature_2m"`
	WindSpeed10m     []*float64 `json:"wind_speed_10m"`
	RelativeHumidity []*float64 `json:"relative_humidity_2m"`
}

type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// URL builds the forecast request. Wind speed is requested in m/s and
// timestamps in the location's own timezone.
func (o *OpenMeteoRepository) URL(coords models.Coordinates) string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', 4, 64))
	q.Set("current", openMeteoCurrentFields)
	q.Set("hourly", openMeteoHourlyFields)
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "auto")
	if o.ForecastDays > 0 {
		q.Set("forecast_days", strconv.Itoa(o.ForecastDays))
	}
	return o.BaseURL + "?" + q.Encode()
}

func (o *OpenMeteoRepository) FetchForecast(ctx context.Context, coords models.Coordinates) (models.Forecast, error) {
	forecast := models.Forecast{Coordinates: coords}

	o.l.Info("making openmeteo API request", map[string]any{
		"params": coords.RequestParams(),
	})

	var response OpenMeteoResponse
	if err := getJSON(ctx, o.httpClient, o.l, "openmeteo forecast", o.URL(coords), &response, openMeteoError); err != nil {
		return forecast, err
	}

	o.l.Info("parsed openmeteo API response", map[string]any{
		"hours":    len(response.Hourly.Time),
		"timezone": response.Timezone,
	})

	hourly, err := response.Hourly.toForecast()
	if err != nil {
		return forecast, models.NewError(models.ErrorKindMalformedResponse, "openmeteo forecast", err)
	}

	forecast.Timezone = response.Timezone
	forecast.Hourly = hourly
	if c := response.Current; c != nil && c.Temperature2m != nil && c.WindSpeed10m != nil {
		forecast.Current = &models.CurrentConditions{
			Time:    c.Time,
			Temp:    *c.Temperature2m,
			WindSpd: *c.WindSpeed10m,
		}
	}

	return forecast, nil
}

// toForecast checks the arrays line up and that no value shown to the user
// is null. Nulls past models.MaxSeriesHours are never displayed and read as 0.
func (h OpenMeteoHourly) toForecast() (models.HourlyForecast, error) {
	n := len(h.Time)
	if len(h.Temperature2m) != n || len(h.WindSpeed10m) != n || len(h.RelativeHumidity) != n {
		return models.HourlyForecast{}, fmt.Errorf(
			"%w: time=%d temperature_2m=%d wind_speed_10m=%d relative_humidity_2m=%d",
			models.ErrMisalignedSeries,
			n, len(h.Temperature2m), len(h.WindSpeed10m), len(h.RelativeHumidity),
		)
	}

	out := models.HourlyForecast{Time: h.Time}
	var err error
	if out.Temperature2m, err = derefWindow("temperature_2m", h.Temperature2m); err != nil {
		return models.HourlyForecast{}, err
	}
	if out.WindSpeed10m, err = derefWindow("wind_speed_10m", h.WindSpeed10m); err != nil {
		return models.HourlyForecast{}, err
	}
	if out.RelativeHumidity, err = derefWindow("relative_humidity_2m", h.RelativeHumidity); err != nil {
		return models.HourlyForecast{}, err
	}
	return out, nil
}

func derefWindow(field string, values []*float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			if i < models.MaxSeriesHours {
				return nil, fmt.Errorf("%w: %s[%d] is null", models.ErrMissingValue, field, i)
			}
			continue
		}
		out[i] = *v
	}
	return out, nil
}

func openMeteoError(status int, body []byte) error {
	var errorResp OpenMeteoErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || !errorResp.Error {
		return nil
	}
	return fmt.Errorf("API error (status %d): %s", status, errorResp.Reason)
}
