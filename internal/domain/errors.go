package domain

import "errors"

// ErrUserInterrupt is returned when the user cancels a running operation
var ErrUserInterrupt = errors.New("download cancelled")

// ErrNoInfo is returned when the engine produced no extractable metadata
var ErrNoInfo = errors.New("no video information could be extracted")

// MetadataFetchError wraps any failure of the engine's info extraction.
// The engine's text is surfaced unchanged.
type MetadataFetchError struct {
	URL string
	Err error
}

func (e *MetadataFetchError) Error() string {
	return e.Err.Error()
}

func (e *MetadataFetchError) Unwrap() error {
	return e.Err
}

// DownloadError wraps any failure during the engine's download call
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return e.Err.Error()
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
