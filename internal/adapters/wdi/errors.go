package wdi

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for upstream errors.
var (
	ErrUpstream       = errors.New("indicator source unavailable")
	ErrDecodeResponse = errors.New("indicator response could not be decoded")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("WDI HTTP %d for %s", e.Status, e.URL)
}

// Unwrap ties every status error to ErrUpstream.
func (e *StatusError) Unwrap() error { return ErrUpstream }

// Temporary reports whether retrying could succeed.
func (e *StatusError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}
