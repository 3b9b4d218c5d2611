package core

import (
	"fmt"
	"net/http"
)

// ConfigError is returned when a required input field is absent or malformed. It is always raised before any
// network request is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Kind() string { return "configuration error" }

// HTTPError is returned when a registry responds with a non-success status code
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d (%s) for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

func (e *HTTPError) Kind() string { return "HTTP error" }

// RequestError is returned when a request could not be completed at all (connection failure, timeout)
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Kind() string { return "network error" }

// ParseError is returned when a response body is not the JSON that was expected
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Kind() string { return "parse error" }

// FileDataError is returned when the selected file of a mod version is missing a field required to download it
type FileDataError struct {
	ModID   string
	Version string
	Reason  string
}

func (e *FileDataError) Error() string {
	return fmt.Sprintf("missing file data for %s:%s: %s", e.ModID, e.Version, e.Reason)
}

func (e *FileDataError) Kind() string { return "missing file data" }

// HashError is returned when the selected file has no hash in an allowed algorithm
type HashError struct {
	ModID   string
	Version string
}

func (e *HashError) Error() string {
	return fmt.Sprintf("missing integrity hash for %s:%s (need one of %v)", e.ModID, e.Version, AllowedHashFormats)
}

func (e *HashError) Kind() string { return "missing integrity hash" }

// DuplicatePathError is returned when two mods would be written to the same path in the pack
type DuplicatePathError struct {
	Path   string
	ModIDs [2]string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate pack path %s (from %s and %s)", e.Path, e.ModIDs[0], e.ModIDs[1])
}

func (e *DuplicatePathError) Kind() string { return "duplicate path" }
