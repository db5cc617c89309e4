package repositories

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weather-check/internal/models"
)

// RateLimitedGeocoder keeps the geocoder under the provider's request quota.
type RateLimitedGeocoder struct {
	geocoder Geocoder
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedGeocoder allows rps requests per second with the given
// burst; a burst below one is raised to one.
func NewRateLimitedGeocoder(geocoder Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", geocoder.Name()),
	}
}

func (r *RateLimitedGeocoder) Name() string {
	return r.name
}

func (r *RateLimitedGeocoder) Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinates, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, models.NewError(transportKind(ctx, err), "geocode rate limit", fmt.Errorf("rate limit wait canceled: %w", err))
	}

	return r.geocoder.Geocode(ctx, query)
}

var _ Geocoder = (*RateLimitedGeocoder)(nil)
