package repository

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrBackend      = errors.New("series cache backend failed")
	ErrCorruptEntry = errors.New("series cache entry is corrupt")
)
