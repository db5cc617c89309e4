package models

import "time"

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

type ViewError struct {
	Kind    ErrorKind `json:"kind" example:"location_not_found"`
	Message string    `json:"message" example:"Location not found"`
}

// ViewState is what a rendering surface draws from. Series, Aggregates and
// Current belong to the last successful fetch; Stale is set while an error
// is shown on top of them.
type ViewState struct {
	Location   string             `json:"location" example:"Kolkata"`
	Country    string             `json:"country,omitempty" example:"IN"`
	Place      string             `json:"place,omitempty" example:"Kolkata, West Bengal, IN"`
	Phase      Phase              `json:"phase" example:"ready"`
	Loading    bool               `json:"loading"`
	Series     Series             `json:"series"`
	Aggregates Aggregates         `json:"aggregates"`
	Current    *CurrentConditions `json:"current,omitempty"`
	Error      *ViewError         `json:"error,omitempty"`
	Stale      bool               `json:"stale"`
	Generation uint64             `json:"generation" example:"3"`
	Date       string             `json:"date,omitempty" example:"October 19, 2026"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Clone returns a copy that shares no memory with the receiver.
func (v ViewState) Clone() ViewState {
	out := v
	out.Series = v.Series.Clone()
	out.Aggregates = v.Aggregates.Clone()
	out.Current = clonePtr(v.Current)
	out.Error = clonePtr(v.Error)
	return out
}
