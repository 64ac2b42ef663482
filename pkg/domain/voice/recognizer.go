// Package voice maps spoken answers onto questionnaire options.
package voice

import (
	"context"
	"errors"
)

// DefaultLocale is the recognition language used when none is configured.
const DefaultLocale = "en-US"

// ErrNoSpeech indicates the capture ended without a final utterance.
var ErrNoSpeech = errors.New("no speech recognized")

// Request configures one capture.
type Request struct {
	Locale string
	// Continuous keeps the capture open after the first utterance.
	Continuous bool
	// Interim asks for partial hypotheses in addition to final results.
	Interim bool
}

// Utterance is a final recognition result.
type Utterance struct {
	Transcript string
	Confidence float64
}

// Recognizer abstracts speech-to-text engines.
type Recognizer interface {
	// Recognize blocks until one utterance is recognized, the engine gives
	// up, or ctx is done.
	Recognize(ctx context.Context, req Request) (Utterance, error)

	// Name returns the engine name (for logging).
	Name() string
}
