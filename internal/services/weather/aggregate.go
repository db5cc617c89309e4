package weather

import (
	"strconv"

	"weather-check/internal/models"
)

// Aggregate computes the summary panel values. Every field is nil for an
// empty series.
func Aggregate(series models.Series) models.Aggregates {
	if len(series) == 0 {
		return models.Aggregates{}
	}

	temps := series.Temps()
	highest, lowest := temps[0], temps[0]
	for _, t := range temps[1:] {
		highest = max(highest, t)
		lowest = min(lowest, t)
	}

	avgWind := formatMean(series.WindSpeeds())
	avgHumidity := formatMean(series.Humidity())

	return models.Aggregates{
		HighestTemp:  &highest,
		LowestTemp:   &lowest,
		AvgHumidity:  &avgHumidity,
		AvgWindSpeed: &avgWind,
	}
}

// formatMean renders sum/count with exactly two decimals. values must be
// non-empty.
func formatMean(values []float64) string {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return strconv.FormatFloat(sum/float64(len(values)), 'f', 2, 64)
}
