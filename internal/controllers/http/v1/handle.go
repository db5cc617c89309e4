package http

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"weather-check/internal/models"
)

const streamKeepAlive = 15 * time.Second

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string           `json:"error" example:"Location not found"`
	Kind  models.ErrorKind `json:"kind,omitempty" example:"location_not_found"`
}

// SearchRequest is the body of a search action
type SearchRequest struct {
	Location string `json:"location" example:"Kolkata"`
	Country  string `json:"country,omitempty" example:"IN"`
}

// SearchResponse carries the state a search left behind, plus the failure if any
type SearchResponse struct {
	State models.ViewState `json:"state"`
	Error *ErrorResponse   `json:"error,omitempty"`
}

// GetWeather godoc
// @Summary Get hourly weather and summary statistics
// @Description Geocodes the location, fetches the next 24 hourly points and computes max/min temperature, average humidity and average wind speed. Does not touch the shared view state.
// @Tags Weather
// @Produce json
// @Param location query string true "Free-text location" example(Kolkata)
// @Param country query string false "ISO 3166 country code used to disambiguate" example(IN)
// @Success 200 {object} models.Report "Successful response"
// @Failure 400 {object} ErrorResponse "Missing or empty location"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 502 {object} ErrorResponse "Upstream weather service failure"
// @Router /api/v1/weather [get]
//
//	curl -X GET "http://localhost:8080/api/v1/weather?location=Kolkata"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	query := models.LocationQuery{
		Name:    c.Query("location"),
		Country: c.Query("country"),
	}

	if strings.TrimSpace(query.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: location",
			Kind:  models.ErrorKindInvalidQuery,
		})
	}

	report, err := r.service.Fetch(c.UserContext(), query)
	if err != nil {
		status, resp := r.errorResponse(err)
		return c.Status(status).JSON(resp)
	}

	return c.JSON(report)
}

// GetState godoc
// @Summary Current view state
// @Description Snapshot of the location, loading flag, series, aggregates and last error.
// @Tags View
// @Produce json
// @Success 200 {object} models.ViewState
// @Router /api/v1/state [get]
func (r *routes) handleState(c *fiber.Ctx) error {
	return c.JSON(r.controller.Snapshot())
}

// StreamState godoc
// @Summary Stream view state updates
// @Description Server-sent events. The current snapshot is sent first, then one "state" event per transition. Comment lines keep idle connections open.
// @Tags View
// @Produce text/event-stream
// @Success 200 {object} models.ViewState "One event per snapshot"
// @Router /api/v1/state/stream [get]
//
//	curl -N "http://localhost:8080/api/v1/state/stream"
func (r *routes) handleStateStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// subscribe before the snapshot so no transition falls in between
	updates, unsubscribe := r.controller.Subscribe()
	initial := r.controller.Snapshot()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		if err := writeStateEvent(w, initial); err != nil {
			return
		}
		for {
			select {
			case state, ok := <-updates:
				if !ok {
					return
				}
				if err := writeStateEvent(w, state); err != nil {
					r.l.Debug("state stream closed by client", map[string]any{"err": err.Error()})
					return
				}
			case <-keepAlive.C:
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					r.l.Debug("state stream closed by client", map[string]any{"err": err.Error()})
					return
				}
			}
		}
	})

	return nil
}

func writeStateEvent(w *bufio.Writer, state models.ViewState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: state\ndata: %s\n\n", state.Generation, data); err != nil {
		return err
	}
	return w.Flush()
}

// Search godoc
// @Summary Search a new location
// @Description Replaces the tracked location and runs a fetch cycle. A newer search cancels an older one still in flight.
// @Tags View
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Location to search"
// @Success 200 {object} SearchResponse "Search completed"
// @Failure 400 {object} SearchResponse "Empty location or malformed body"
// @Failure 404 {object} SearchResponse "Location not found"
// @Failure 409 {object} SearchResponse "Superseded by a newer search"
// @Failure 502 {object} SearchResponse "Upstream weather service failure"
// @Router /api/v1/search [post]
func (r *routes) handleSearch(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(SearchResponse{
			State: r.controller.Snapshot(),
			Error: &ErrorResponse{Error: "Invalid request body", Kind: models.ErrorKindInvalidQuery},
		})
	}

	state, err := r.controller.Search(c.UserContext(), models.LocationQuery{
		Name:    req.Location,
		Country: req.Country,
	})
	if err != nil {
		status, resp := r.errorResponse(err)
		return c.Status(status).JSON(SearchResponse{State: state, Error: &resp})
	}

	return c.JSON(SearchResponse{State: state})
}

func (r *routes) errorResponse(err error) (int, ErrorResponse) {
	kind := models.KindOf(err)
	resp := ErrorResponse{Error: kind.Message(), Kind: kind}

	switch kind {
	case models.ErrorKindInvalidQuery:
		return fiber.StatusBadRequest, resp
	case models.ErrorKindLocationNotFound:
		return fiber.StatusNotFound, resp
	case models.ErrorKindUpstream, models.ErrorKindMalformedResponse:
		return fiber.StatusBadGateway, resp
	case models.ErrorKindCanceled:
		if errors.Is(err, models.ErrSuperseded) {
			return fiber.StatusConflict, ErrorResponse{Error: "Superseded by a newer search", Kind: kind}
		}
		return fiber.StatusGatewayTimeout, resp
	default:
		r.l.Error(err)
		return fiber.StatusInternalServerError, resp
	}
}
