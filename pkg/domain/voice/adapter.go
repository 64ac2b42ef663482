package voice

import (
	"context"
	"log/slog"
)

// Adapter is the optional hands-free input. Without a recognizer it is
// inert: Available is false and Begin never asks for a capture.
//
// The listening flag is advisory and not safe for concurrent use; callers
// drive Begin and End from a single event loop.
type Adapter struct {
	recognizer Recognizer
	locale     string
	listening  bool
	logger     *slog.Logger
}

// NewAdapter wraps recognizer, which may be nil when no engine is available.
func NewAdapter(recognizer Recognizer, locale string, logger *slog.Logger) *Adapter {
	if locale == "" {
		locale = DefaultLocale
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{recognizer: recognizer, locale: locale, logger: logger}
}

// Available reports whether a speech engine is configured.
func (a *Adapter) Available() bool {
	return a != nil && a.recognizer != nil
}

// Listening reports whether a capture is in progress.
func (a *Adapter) Listening() bool {
	return a != nil && a.listening
}

// Locale returns the fixed recognition locale.
func (a *Adapter) Locale() string { return a.locale }

// Begin marks a capture as started and returns true when the caller should
// run Listen. It returns false when unavailable or already listening.
func (a *Adapter) Begin() bool {
	if !a.Available() || a.listening {
		return false
	}
	a.listening = true
	return true
}

// End clears the listening flag after success, silence or error.
func (a *Adapter) End() {
	if a != nil {
		a.listening = false
	}
}

// Listen runs one single-utterance, final-only capture.
func (a *Adapter) Listen(ctx context.Context) (Utterance, error) {
	if !a.Available() {
		return Utterance{}, ErrNoSpeech
	}
	u, err := a.recognizer.Recognize(ctx, Request{Locale: a.locale})
	if err != nil {
		a.logger.Debug("voice capture ended without result",
			"engine", a.recognizer.Name(),
			"error", err)
		return Utterance{}, err
	}
	a.logger.Debug("voice capture recognized",
		"engine", a.recognizer.Name(),
		"transcript", u.Transcript,
		"confidence", u.Confidence)
	return u, nil
}
