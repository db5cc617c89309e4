package models

// Aggregates summarise a Series. A nil field means the series was empty.
type Aggregates struct {
	HighestTemp  *float64 `json:"highest_temp" example:"33.1"`
	LowestTemp   *float64 `json:"lowest_temp" example:"26.4"`
	AvgHumidity  *string  `json:"avg_humidity" example:"71.25"`
	AvgWindSpeed *string  `json:"avg_wind_speed" example:"3.18"`
}

func (a Aggregates) Empty() bool {
	return a.HighestTemp == nil && a.LowestTemp == nil && a.AvgHumidity == nil && a.AvgWindSpeed == nil
}

func (a Aggregates) Clone() Aggregates {
	return Aggregates{
		HighestTemp:  clonePtr(a.HighestTemp),
		LowestTemp:   clonePtr(a.LowestTemp),
		AvgHumidity:  clonePtr(a.AvgHumidity),
		AvgWindSpeed: clonePtr(a.AvgWindSpeed),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
