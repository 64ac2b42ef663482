package cli

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var statusErr *catalog.StatusError
	if errors.As(err, &statusErr) {
		return NewCLIError(
			fmt.Sprintf("catalog returned %s", statusErr.Status),
			fmt.Sprintf("Check that the backend serves %s", statusErr.Endpoint),
			err,
		)
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return NewCLIError("could not reach the catalog",
			"Check base_url in fashionous.yaml or set FASHIONOUS_BASE_URL", err)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewCLIError("catalog request timed out", "Raise timeout_sec in fashionous.yaml", err)
	case errors.Is(err, catalog.ErrMalformedOptions):
		return NewCLIError("catalog returned malformed options", "Check that options_path points at the questionnaire options endpoint", err)
	case errors.Is(err, catalog.ErrMalformedResults):
		return NewCLIError("catalog returned malformed results", "Check that match_path points at the questionnaire endpoint", err)
	case errors.Is(err, questionnaire.ErrUnknownOption):
		return NewCLIError("unknown option", "Run 'fashionous options' to list valid values", err)
	case errors.Is(err, questionnaire.ErrBusy):
		return NewCLIError("a questionnaire run is already in progress", "Wait for the current run to finish", err)
	}

	return err
}
