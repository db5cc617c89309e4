package models

// HourlyForecast holds the parallel hourly arrays exactly as the forecast
// API returns them. Index i of every slice describes the same hour.
type HourlyForecast struct {
	Time             []string  `json:"time"`
	Temperature2m    []float64 `json:"temperature_2m"`
	WindSpeed10m     []float64 `json:"wind_speed_10m"`
	RelativeHumidity []float64 `json:"relative_humidity_2m"`
}

func (h HourlyForecast) Len() int {
	return len(h.Time)
}

// Aligned reports whether all four arrays have the same length.
func (h HourlyForecast) Aligned() bool {
	n := len(h.Time)
	return len(h.Temperature2m) == n && len(h.WindSpeed10m) == n && len(h.RelativeHumidity) == n
}

type CurrentConditions struct {
	Time    string  `json:"time" example:"2026-10-19T14:00"`
	Temp    float64 `json:"temp" example:"31.2"`
	WindSpd float64 `json:"wind_spd" example:"3.4"`
}

// Forecast is one forecast API answer for a coordinate pair.
type Forecast struct {
	Coordinates Coordinates
	Timezone    string
	Current     *CurrentConditions
	Hourly      HourlyForecast
}
