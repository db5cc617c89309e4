package weather

import (
	"fmt"
	"time"

	"weather-check/internal/models"
)

const (
	hourLabelLayout   = "15:04"
	openMeteoLayout   = "2006-01-02T15:04"
	openMeteoLayoutTZ = time.RFC3339
)

// TransformSeries turns the parallel hourly arrays into at most
// models.MaxSeriesHours records, keeping source order. Timestamps without an
// offset are read as wall-clock time in loc; a nil loc means UTC.
func TransformSeries(raw models.HourlyForecast, loc *time.Location) (models.Series, error) {
	if !raw.Aligned() {
		return nil, models.NewError(models.ErrorKindMalformedResponse, "transform series", fmt.Errorf(
			"%w: time=%d temp=%d wind=%d rh=%d",
			models.ErrMisalignedSeries,
			len(raw.Time), len(raw.Temperature2m), len(raw.WindSpeed10m), len(raw.RelativeHumidity),
		))
	}
	if loc == nil {
		loc = time.UTC
	}

	n := min(models.MaxSeriesHours, raw.Len())
	series := make(models.Series, 0, n)

	for i := 0; i < n; i++ {
		label, err := hourLabel(raw.Time[i], loc)
		if err != nil {
			return nil, models.NewError(models.ErrorKindMalformedResponse, "transform series", err)
		}

		series = append(series, models.HourlyRecord{
			Hour:    label,
			Temp:    raw.Temperature2m[i],
			WindSpd: raw.WindSpeed10m[i],
			RH:      raw.RelativeHumidity[i],
		})
	}

	return series, nil
}

func hourLabel(ts string, loc *time.Location) (string, error) {
	t, err := time.ParseInLocation(openMeteoLayout, ts, loc)
	if err != nil {
		var tzErr error
		t, tzErr = time.Parse(openMeteoLayoutTZ, ts)
		if tzErr != nil {
			return "", fmt.Errorf("failed to parse hourly timestamp %q: %w", ts, err)
		}
		t = t.In(loc)
	}
	return t.Format(hourLabelLayout), nil
}

// LoadTimezone resolves an IANA name from the forecast response, falling
// back to UTC for names the local tz database does not know.
func LoadTimezone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
