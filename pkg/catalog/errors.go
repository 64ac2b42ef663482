package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedOptions is returned when the options payload is not an
	// object of string lists.
	ErrMalformedOptions = errors.New("catalog: malformed options payload")

	// ErrMalformedResults is returned when a results payload cannot be decoded.
	ErrMalformedResults = errors.New("catalog: malformed results payload")

	ErrMalformedOrder = errors.New("catalog: malformed order reply")
)

// StatusError is returned when an endpoint answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s returned status %s", e.Endpoint, e.Status)
}
