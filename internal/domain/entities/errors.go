package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps connection-level failures (DNS, refused, timeout, reset).
	ErrTransport = errors.New("transport failure")

	// ErrPageLimit is returned when an account keeps advertising further pages
	// beyond the enumeration ceiling.
	ErrPageLimit = errors.New("page limit reached while the platform still advertised more pages")
)

// FetchError is returned for any non-2xx answer of the listing endpoint.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// MalformedRecordError is returned when a page does not honour the listing contract.
// An empty Field means the record (or, with a negative Index, the whole page body)
// could not be decoded.
type MalformedRecordError struct {
	Page  int
	Index int
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Field == "" && e.Index < 0:
		return fmt.Sprintf("malformed page %d: %v", e.Page, e.Err)
	case e.Field == "":
		return fmt.Sprintf("malformed record %d on page %d: %v", e.Index, e.Page, e.Err)
	}
	return fmt.Sprintf("malformed record %d on page %d: missing %q", e.Index, e.Page, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// DestinationExistsError is returned before any clone when the destination root already exists.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("destination %q already exists", e.Path)
}

// DestinationCreateError is returned when the destination root cannot be prepared.
type DestinationCreateError struct {
	Path string
	Err  error
}

func (e *DestinationCreateError) Error() string {
	return fmt.Sprintf("failed to create destination %q: %v", e.Path, e.Err)
}

func (e *DestinationCreateError) Unwrap() error { return e.Err }
