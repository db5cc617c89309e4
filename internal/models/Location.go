package models

import (
	"fmt"
	"strings"
)

// LocationQuery is what the user typed, optionally narrowed by an ISO 3166
// country code when several places share a name.
type LocationQuery struct {
	Name    string `json:"location" example:"Kolkata"`
	Country string `json:"country,omitempty" example:"IN"`
}

func (q LocationQuery) Normalize() LocationQuery {
	return LocationQuery{
		Name:    strings.TrimSpace(q.Name),
		Country: strings.ToUpper(strings.TrimSpace(q.Country)),
	}
}

func (q LocationQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Name) == ""
}

// GeocoderParam renders the q parameter of the direct geocoding endpoint.
func (q LocationQuery) GeocoderParam() string {
	n := q.Normalize()
	if n.Country == "" {
		return n.Name
	}
	return n.Name + "," + n.Country
}

func (q LocationQuery) String() string {
	return q.GeocoderParam()
}

// Coordinates is the first geocoder candidate for a query.
type Coordinates struct {
	Lat     float64 `json:"lat" example:"22.5726"`
	Lon     float64 `json:"lon" example:"88.3639"`
	Name    string  `json:"name,omitempty" example:"Kolkata"`
	State   string  `json:"state,omitempty" example:"West Bengal"`
	Country string  `json:"country,omitempty" example:"IN"`
}

func (c Coordinates) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f", c.Lat, c.Lon)
}

// Place is the human readable label of the resolved candidate.
func (c Coordinates) Place() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Name, c.State, c.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
