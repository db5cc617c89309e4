package models

// MaxSeriesHours caps the number of hourly records shown.
const MaxSeriesHours = 24

// HourlyRecord is one point of the chart.
type HourlyRecord struct {
	Hour    string  `json:"hour" example:"14:00"`
	Temp    float64 `json:"temp" example:"31.2"`
	WindSpd float64 `json:"wind_spd" example:"3.4"`
	RH      float64 `json:"rh" example:"68"`
}

// Series is chronological and never longer than MaxSeriesHours.
type Series []HourlyRecord

func (s Series) Temps() []float64 {
	return s.column(func(r HourlyRecord) float64 { return r.Temp })
}

func (s Series) WindSpeeds() []float64 {
	return s.column(func(r HourlyRecord) float64 { return r.WindSpd })
}

func (s Series) Humidity() []float64 {
	return s.column(func(r HourlyRecord) float64 { return r.RH })
}

func (s Series) column(pick func(HourlyRecord) float64) []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = pick(r)
	}
	return out
}

func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}
