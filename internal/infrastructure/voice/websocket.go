// Package voice provides speech engines for the questionnaire's voice input.
package voice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	domain "github.com/felixgeelhaar/fashionous/pkg/domain/voice"
	"github.com/gorilla/websocket"
)

// frame is one message from a streaming speech server. Interim hypotheses
// carry Partial; final results carry Text.
type frame struct {
	Text       string  `json:"text"`
	Partial    string  `json:"partial"`
	Confidence float64 `json:"confidence"`
}

// WebSocketRecognizer reads transcripts from a streaming speech server.
type WebSocketRecognizer struct {
	url     string
	silence time.Duration
	dialer  *websocket.Dialer
}

// NewWebSocketRecognizer connects to rawURL for each capture. A capture ends
// after silence without any frame; zero defaults to 10s.
func NewWebSocketRecognizer(rawURL string, silence time.Duration) *WebSocketRecognizer {
	if silence == 0 {
		silence = 10 * time.Second
	}
	return &WebSocketRecognizer{url: rawURL, silence: silence, dialer: websocket.DefaultDialer}
}

func (r *WebSocketRecognizer) Name() string { return "websocket" }

// Recognize returns the first final transcript of the stream.
func (r *WebSocketRecognizer) Recognize(ctx context.Context, req domain.Request) (domain.Utterance, error) {
	endpoint, err := r.endpoint(req)
	if err != nil {
		return domain.Utterance{}, err
	}

	conn, _, err := r.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return domain.Utterance{}, fmt.Errorf("dial speech server: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(r.silence)); err != nil {
			return domain.Utterance{}, err
		}
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil {
				return domain.Utterance{}, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || isTimeout(err) {
				return domain.Utterance{}, domain.ErrNoSpeech
			}
			return domain.Utterance{}, fmt.Errorf("read speech frame: %w", err)
		}

		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return domain.Utterance{Transcript: text, Confidence: f.Confidence}, nil
	}
}

func (r *WebSocketRecognizer) endpoint(req domain.Request) (string, error) {
	u, err := url.Parse(r.url)
	if err != nil {
		return "", fmt.Errorf("parse speech server url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("speech server url must use ws or wss, got %q", u.Scheme)
	}
	q := u.Query()
	if req.Locale != "" {
		q.Set("lang", req.Locale)
	}
	q.Set("interim", fmt.Sprintf("%t", req.Interim))
	q.Set("continuous", fmt.Sprintf("%t", req.Continuous))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
