package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

const (
	OpenWeatherMapGeocodeURL = "https://api.openweathermap.org/geo/1.0/direct"
	defaultGeocodeLimit      = 1
)

// OpenWeatherMapGeocoder talks to the direct geocoding endpoint. Only the
// first candidate is used; callers disambiguate with a country code.
type OpenWeatherMapGeocoder struct {
	BaseURL    string
	APIKey     string
	Limit      int
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherMapGeocoder(apiKey string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}

	return &OpenWeatherMapGeocoder{
		BaseURL:    OpenWeatherMapGeocodeURL,
		APIKey:     apiKey,
		Limit:      defaultGeocodeLimit,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (g *OpenWeatherMapGeocoder) Name() string {
	return "openweathermap"
}

type OpenWeatherMapGeocodeResponse []struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type OpenWeatherMapErrorResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

func (g *OpenWeatherMapGeocoder) URL(query models.LocationQuery) string {
	limit := g.Limit
	if limit <= 0 {
		limit = defaultGeocodeLimit
	}

	q := url.Values{}
	q.Set("q", query.GeocoderParam())
	q.Set("limit", strconv.Itoa(limit))
	q.Set("appid", g.APIKey)
	return g.BaseURL + "?" + q.Encode()
}

func (g *OpenWeatherMapGeocoder) Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinates, error) {
	const op = "openweathermap geocode"

	query = query.Normalize()
	if query.IsEmpty() {
		return models.Coordinates{}, models.NewError(models.ErrorKindInvalidQuery, op, models.ErrEmptyQuery)
	}

	// Validate API key before making request
	if strings.TrimSpace(g.APIKey) == "" {
		return models.Coordinates{}, models.NewError(models.ErrorKindUpstream, op, errors.New("API key cannot be empty"))
	}

	g.l.Info("making openweathermap geocode request", map[string]any{
		"query": query.GeocoderParam(),
	})

	var response OpenWeatherMapGeocodeResponse
	if err := getJSON(ctx, g.httpClient, g.l, op, g.URL(query), &response, openWeatherMapError); err != nil {
		return models.Coordinates{}, err
	}

	g.l.Info("parsed openweathermap geocode response", map[string]any{
		"query":      query.GeocoderParam(),
		"candidates": len(response),
	})

	if len(response) == 0 {
		return models.Coordinates{}, models.NewError(models.ErrorKindLocationNotFound, op,
			fmt.Errorf("%w: %q", models.ErrLocationNotFound, query.GeocoderParam()))
	}

	first := response[0]
	return models.Coordinates{
		Lat:     first.Lat,
		Lon:     first.Lon,
		Name:    first.Name,
		State:   first.State,
		Country: first.Country,
	}, nil
}

func openWeatherMapError(status int, body []byte) error {
	var errorResp OpenWeatherMapErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Message == "" {
		return nil
	}
	return fmt.Errorf("API error (status %d): %s", status, errorResp.Message)
}
