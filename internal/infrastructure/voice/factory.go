package voice

import (
	"fmt"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
	domain "github.com/felixgeelhaar/fashionous/pkg/domain/voice"
)

// NewRecognizer builds the configured engine. The "none" engine yields a
// nil recognizer, which leaves voice input unavailable.
func NewRecognizer(cfg config.VoiceConfig) (domain.Recognizer, error) {
	switch cfg.Engine {
	case config.EngineNone, "":
		return nil, nil
	case config.EngineWebSocket:
		return NewWebSocketRecognizer(cfg.URL, 0), nil
	case config.EngineFile:
		return NewFileRecognizer(cfg.Dir, 0), nil
	default:
		return nil, fmt.Errorf("unsupported voice engine: %s", cfg.Engine)
	}
}
