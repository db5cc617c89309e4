package models

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLocationQuery_GeocoderParam(t *testing.T) {
	tests := []struct {
		query    LocationQuery
		expected string
	}{
		{LocationQuery{Name: "Kolkata"}, "Kolkata"},
		{LocationQuery{Name: "  London ", Country: " gb"}, "London,GB"},
		{LocationQuery{Name: "Paris", Country: "FR"}, "Paris,FR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.query.GeocoderParam())
	}

	assert.True(t, LocationQuery{Name: " \t"}.IsEmpty())
	assert.False(t, LocationQuery{Name: "Oslo"}.IsEmpty())
}

func TestCoordinates_Place(t *testing.T) {
	assert.Equal(t, "Kolkata, West Bengal, IN", Coordinates{Name: "Kolkata", State: "West Bengal", Country: "IN"}.Place())
	assert.Equal(t, "Oslo, NO", Coordinates{Name: "Oslo", Country: "NO"}.Place())
	assert.Equal(t, "", Coordinates{}.Place())
}

func TestKindOf(t *testing.T) {
	notFound := NewError(ErrorKindLocationNotFound, "geocode", ErrLocationNotFound)

	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, ErrorKindLocationNotFound, KindOf(notFound))
	assert.Equal(t, ErrorKindLocationNotFound, KindOf(errors.Wrap(notFound, "fetch")))
	assert.Equal(t, ErrorKindLocationNotFound, KindOf(fmt.Errorf("search: %w", notFound)))
	assert.Equal(t, ErrorKindCanceled, KindOf(context.Canceled))
	assert.Equal(t, ErrorKindCanceled, KindOf(errors.Wrap(context.DeadlineExceeded, "forecast")))
	assert.Equal(t, ErrorKindInternal, KindOf(errors.New("boom")))

	assert.True(t, errors.Is(errors.Wrap(notFound, "fetch"), ErrLocationNotFound))
	assert.Equal(t, "geocode: location not found", notFound.Error())
	assert.Equal(t, "geocode: upstream", NewError(ErrorKindUpstream, "geocode", nil).Error())
}

func TestHourlyForecast_Aligned(t *testing.T) {
	h := HourlyForecast{
		Time:             []string{"a", "b"},
		Temperature2m:    []float64{1, 2},
		WindSpeed10m:     []float64{1, 2},
		RelativeHumidity: []float64{1, 2},
	}
	assert.True(t, h.Aligned())
	assert.Equal(t, 2, h.Len())

	h.RelativeHumidity = h.RelativeHumidity[:1]
	assert.False(t, h.Aligned())

	assert.True(t, HourlyForecast{}.Aligned())
}

func TestViewState_CloneSharesNothing(t *testing.T) {
	temp := 30.0
	avg := "50.00"
	v := ViewState{
		Series:     Series{{Hour: "00:00", Temp: 30}},
		Aggregates: Aggregates{HighestTemp: &temp, AvgHumidity: &avg},
		Current:    &CurrentConditions{Temp: 30},
		Error:      &ViewError{Kind: ErrorKindUpstream},
	}

	c := v.Clone()
	c.Series[0].Temp = 0
	*c.Aggregates.HighestTemp = 0
	*c.Aggregates.AvgHumidity = "0"
	c.Current.Temp = 0
	c.Error.Kind = ErrorKindInternal

	assert.Equal(t, 30.0, v.Series[0].Temp)
	assert.Equal(t, 30.0, *v.Aggregates.HighestTemp)
	assert.Equal(t, "50.00", *v.Aggregates.AvgHumidity)
	assert.Equal(t, 30.0, v.Current.Temp)
	assert.Equal(t, ErrorKindUpstream, v.Error.Kind)

	assert.Nil(t, ViewState{}.Clone().Series)
	assert.True(t, Aggregates{}.Empty())
}
