package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/okian/dss/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrTooLarge   = errors.New("upload too large")
	ErrNotFound   = errors.New("not found")
)

// Error tags a failure with the operation that produced it and its kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewKind creates an error of kind for op without an underlying cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// problem is the HTTP rendering of an error.
type problem struct {
	status  int
	code    string
	message string
	detail  string
}

// classify maps service and API errors to a status code and error body.
func classify(err error) problem {
	var unknown *service.UnknownCountriesError
	switch {
	case errors.As(err, &unknown):
		return problem{
			status:  http.StatusBadRequest,
			code:    "unknown_country",
			message: "unrecognized country",
			detail:  fmt.Sprintf("Check: %s. Use an English or Spanish name, or an ISO-3 code.", strings.Join(unknown.Names, ", ")),
		}
	case errors.Is(err, service.ErrNoCountries):
		return problem{status: http.StatusBadRequest, code: "bad_request", message: "at least one country is required"}
	case errors.Is(err, service.ErrTooManyCountries):
		return problem{status: http.StatusBadRequest, code: "too_many_countries", message: "too many countries", detail: rootCause(err)}
	case errors.Is(err, service.ErrInvalidUpload):
		return problem{status: http.StatusBadRequest, code: "invalid_upload", message: "invalid file structure", detail: rootCause(err)}
	case errors.Is(err, ErrTooLarge):
		return problem{status: http.StatusRequestEntityTooLarge, code: "too_large", message: ErrTooLarge.Error(), detail: rootCause(err)}
	case errors.Is(err, ErrNotFound):
		return problem{status: http.StatusNotFound, code: "not_found", message: rootCause(err)}
	case errors.Is(err, ErrBadRequest):
		return problem{status: http.StatusBadRequest, code: "bad_request", message: rootCause(err)}
	case errors.Is(err, service.ErrUpstream):
		return problem{status: http.StatusBadGateway, code: "upstream_unavailable", message: "indicator source unavailable", detail: rootCause(err)}
	default:
		return problem{status: http.StatusInternalServerError, code: "internal_error", message: http.StatusText(http.StatusInternalServerError)}
	}
}

// rootCause strips the operation prefix from API errors for client display.
func rootCause(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	if apiErr.Err != nil {
		return apiErr.Err.Error()
	}
	return apiErr.Kind.Error()
}
