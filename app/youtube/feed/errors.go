package feed

import (
	"errors"
	"fmt"
)

// errors returned by identifier resolution
var (
	ErrMissingIdentifier = errors.New("missing channel id")
	ErrMissingSelfLink   = errors.New("no link with rel=self")
	ErrMalformedSelfLink = errors.New("self link without playlist_id")
	ErrMissingPlaylistID = errors.New("missing playlist id")
)

// FetchError is returned when the feed document can't be retrieved
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError is returned when the retrieved document doesn't match the feed schema.
// Body keeps the raw response for diagnostics.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
