package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrExtractionFailed = errors.New("extraction failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)
