package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

const maxResponseBytes = 4 << 20

// getJSON performs a GET and decodes a 200 body into out. Failures come back
// as *models.Error so callers upstream can branch on the kind. onError, when
// non-nil, gets a chance to turn a non-200 body into a better message.
func getJSON(
	ctx context.Context,
	client HTTPClient,
	l *logger.Logger,
	op string,
	url string,
	out any,
	onError func(status int, body []byte) error,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.NewError(models.ErrorKindInternal, op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return models.NewError(transportKind(ctx, err), op, fmt.Errorf("failed to do request: %w", err))
	}
	defer resp.Body.Close()

	l.Debug("received API response", map[string]any{
		"op":         op,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.NewError(transportKind(ctx, err), op, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		if onError != nil {
			if apiErr := onError(resp.StatusCode, body); apiErr != nil {
				return models.NewError(models.ErrorKindUpstream, op, apiErr)
			}
		}
		return models.NewError(models.ErrorKindUpstream, op, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return models.NewError(models.ErrorKindMalformedResponse, op, fmt.Errorf("failed to parse JSON response: %w", err))
	}

	return nil
}

func transportKind(ctx context.Context, err error) models.ErrorKind {
	// deadlines are reported as upstream failures, only explicit cancellation is not
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return models.ErrorKindCanceled
	}
	return models.ErrorKindUpstream
}
