package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
)

func TestCLIError(t *testing.T) {
	t.Run("Error with cause", func(t *testing.T) {
		cause := errors.New("root cause")
		e := NewCLIError("something failed", "try this", cause)
		if e.Error() != "something failed: root cause" {
			t.Fatalf("unexpected: %s", e.Error())
		}
		if e.ExitCode != 1 {
			t.Fatalf("expected exit code 1, got %d", e.ExitCode)
		}
	})

	t.Run("Error without cause", func(t *testing.T) {
		e := NewCLIError("something failed", "try this", nil)
		if e.Error() != "something failed" {
			t.Fatalf("unexpected: %s", e.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root")
		e := NewCLIError("msg", "", cause)
		if !errors.Is(e, cause) {
			t.Fatal("errors.Is should match wrapped cause")
		}
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
		wantCLI  bool
	}{
		{
			name: "nil returns nil",
			err:  nil,
		},
		{
			name:     "status error",
			err:      fmt.Errorf("fetch: %w", &catalog.StatusError{Endpoint: "/api/questionnaire", StatusCode: 502, Status: "502 Bad Gateway"}),
			wantHint: "Check that the backend serves /api/questionnaire",
			wantCLI:  true,
		},
		{
			name:     "connection refused",
			err:      fmt.Errorf("fetch: %w", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}),
			wantHint: "Check base_url in fashionous.yaml or set FASHIONOUS_BASE_URL",
			wantCLI:  true,
		},
		{
			name:     "timeout",
			err:      fmt.Errorf("fetch: %w", context.DeadlineExceeded),
			wantHint: "Raise timeout_sec in fashionous.yaml",
			wantCLI:  true,
		},
		{
			name:     "malformed options",
			err:      fmt.Errorf("decode: %w", catalog.ErrMalformedOptions),
			wantHint: "Check that options_path points at the questionnaire options endpoint",
			wantCLI:  true,
		},
		{
			name:     "unknown option",
			err:      questionnaire.ErrUnknownOption,
			wantHint: "Run 'fashionous options' to list valid values",
			wantCLI:  true,
		},
		{
			name:     "busy",
			err:      &questionnaire.PhaseError{Phase: questionnaire.PhaseAsking, Event: questionnaire.EventStart},
			wantHint: "Wait for the current run to finish",
			wantCLI:  true,
		},
		{
			name: "unmapped passes through",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			var cliErr *CLIError
			isCLI := errors.As(got, &cliErr)
			if isCLI != tt.wantCLI {
				t.Fatalf("CLIError = %v, want %v (%v)", isCLI, tt.wantCLI, got)
			}
			if isCLI && cliErr.Hint != tt.wantHint {
				t.Fatalf("hint = %q, want %q", cliErr.Hint, tt.wantHint)
			}
			if !errors.Is(got, tt.err) {
				t.Fatal("mapped error should wrap the original")
			}
		})
	}
}

func TestMapErrorKeepsCLIError(t *testing.T) {
	orig := NewCLIError("already mapped", "hint", nil)
	if got := MapError(orig); got != orig {
		t.Fatalf("expected same CLIError, got %v", got)
	}
}
