package models

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	ErrorKindInvalidQuery      ErrorKind = "invalid_query"
	ErrorKindLocationNotFound  ErrorKind = "location_not_found"
	ErrorKindUpstream          ErrorKind = "upstream"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
	ErrorKindCanceled          ErrorKind = "canceled"
	ErrorKindInternal          ErrorKind = "internal"
)

var (
	ErrEmptyQuery       = errors.New("location must not be empty")
	ErrLocationNotFound = errors.New("location not found")
	ErrMisalignedSeries = errors.New("hourly arrays have different lengths")
	ErrMissingValue     = errors.New("hourly value is missing")
	ErrSuperseded       = errors.New("superseded by a newer search")
)

// Error is the typed failure of a pipeline step.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + string(e.Kind)
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf classifies any error. Context errors count as cancellations even
// when they were not wrapped in *Error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return ErrorKindCanceled
	}
	return ErrorKindInternal
}

// Message is the text shown to the user for an error kind.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorKindInvalidQuery:
		return "Please enter a location"
	case ErrorKindLocationNotFound:
		return "Location not found"
	case ErrorKindUpstream:
		return "Weather service is unavailable"
	case ErrorKindMalformedResponse:
		return "Weather service returned unexpected data"
	case ErrorKindCanceled:
		return "Request was cancelled"
	default:
		return "Something went wrong"
	}
}
