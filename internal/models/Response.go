package models

import "time"

// Report is the outcome of one successful pipeline run.
type Report struct {
	Query      LocationQuery      `json:"query"`
	Place      string             `json:"place" example:"Kolkata, West Bengal, IN"`
	Timezone   string             `json:"timezone,omitempty" example:"Asia/Kolkata"`
	Series     Series             `json:"series"`
	Aggregates Aggregates         `json:"aggregates"`
	Current    *CurrentConditions `json:"current,omitempty"`
	FetchedAt  time.Time          `json:"fetched_at"`
}
