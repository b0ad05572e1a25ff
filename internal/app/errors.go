package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds returned by the service. The HTTP layer maps them to status codes.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNoCountries      = errors.New("no countries requested")
	ErrTooManyCountries = errors.New("too many countries requested")
	ErrUpstream         = errors.New("indicator source unavailable")
	ErrInvalidUpload    = errors.New("invalid upload")
)

// UnknownCountriesError lists requested names that resolve to no ISO-3 code.
type UnknownCountriesError struct {
	Names []string
}

func (e *UnknownCountriesError) Error() string {
	return fmt.Sprintf("unknown countries: %s", strings.Join(e.Names, ", "))
}
