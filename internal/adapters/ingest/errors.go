package ingest

import "github.com/rotisserie/eris"

// Sentinel kinds for upload errors. Match with errors.Is or eris.Is.
var (
	ErrMalformed    = eris.New("ingest: malformed upload")
	ErrNoUsableRows = eris.New("ingest: no usable rows")
)
