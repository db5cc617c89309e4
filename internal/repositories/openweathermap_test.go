package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-check/internal/models"
)

func newGeocoderTestRepo(t *testing.T, serverURL string) *OpenWeatherMapGeocoder {
	t.Helper()
	g, err := NewOpenWeatherMapGeocoder("test-key", testLogger(), http.DefaultClient)
	require.NoError(t, err)
	g.BaseURL = serverURL
	return g
}

func TestNewOpenWeatherMapGeocoder_EmptyKey(t *testing.T) {
	g, err := NewOpenWeatherMapGeocoder("  ", testLogger(), http.DefaultClient)
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestOpenWeatherMapGeocoder_Geocode_Success(t *testing.T) {
	var gotQuery url.Values
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "Kolkata", "lat": 22.5726, "lon": 88.3639, "country": "IN", "state": "West Bengal"},
			{"name": "Kolkata", "lat": 1.0, "lon": 2.0, "country": "XX"}
		]`))
	}))
	defer mockServer.Close()

	g := newGeocoderTestRepo(t, mockServer.URL)

	coords, err := g.Geocode(context.Background(), models.LocationQuery{Name: " Kolkata "})
	require.NoError(t, err)

	assert.Equal(t, "Kolkata", gotQuery.Get("q"))
	assert.Equal(t, "1", gotQuery.Get("limit"))
	assert.Equal(t, "test-key", gotQuery.Get("appid"))

	// first candidate wins
	assert.Equal(t, 22.5726, coords.Lat)
	assert.Equal(t, 88.3639, coords.Lon)
	assert.Equal(t, "Kolkata, West Bengal, IN", coords.Place())
}

func TestOpenWeatherMapGeocoder_Geocode_CountryDisambiguation(t *testing.T) {
	var gotQ string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		w.Write([]byte(`[{"name": "Paris", "lat": 33.66, "lon": -95.55, "country": "US", "state": "Texas"}]`))
	}))
	defer mockServer.Close()

	g := newGeocoderTestRepo(t, mockServer.URL)
	g.Limit = 5

	coords, err := g.Geocode(context.Background(), models.LocationQuery{Name: "Paris", Country: "us"})
	require.NoError(t, err)
	assert.Equal(t, "Paris,US", gotQ)
	assert.Equal(t, "US", coords.Country)
}

func TestOpenWeatherMapGeocoder_Geocode_NoCandidates(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	_, err := newGeocoderTestRepo(t, mockServer.URL).Geocode(context.Background(), models.LocationQuery{Name: "Atlantis"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindLocationNotFound, models.KindOf(err))
	assert.True(t, errors.Is(err, models.ErrLocationNotFound))
}

func TestOpenWeatherMapGeocoder_Geocode_EmptyQuery(t *testing.T) {
	called := false
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer mockServer.Close()

	_, err := newGeocoderTestRepo(t, mockServer.URL).Geocode(context.Background(), models.LocationQuery{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindInvalidQuery, models.KindOf(err))
	assert.False(t, called)
}

func TestOpenWeatherMapGeocoder_Geocode_Unauthorized(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod": 401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`))
	}))
	defer mockServer.Close()

	_, err := newGeocoderTestRepo(t, mockServer.URL).Geocode(context.Background(), models.LocationQuery{Name: "Kolkata"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindUpstream, models.KindOf(err))
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestOpenWeatherMapGeocoder_Geocode_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer mockServer.Close()

	_, err := newGeocoderTestRepo(t, mockServer.URL).Geocode(context.Background(), models.LocationQuery{Name: "Kolkata"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindMalformedResponse, models.KindOf(err))
}

func TestOpenWeatherMapGeocoder_Geocode_ContextCancellation(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer mockServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGeocoderTestRepo(t, mockServer.URL).Geocode(ctx, models.LocationQuery{Name: "Kolkata"})
	require.Error(t, err)
	assert.Equal(t, models.ErrorKindCanceled, models.KindOf(err))
}

func TestOpenWeatherMapGeocoder_Name(t *testing.T) {
	assert.Equal(t, "openweathermap", (&OpenWeatherMapGeocoder{}).Name())
}
