package wiring

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
	infravoice "github.com/felixgeelhaar/fashionous/internal/infrastructure/voice"
	"github.com/felixgeelhaar/fashionous/pkg/application"
	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/voice"
)

// AppServices exposes the application services wired together from a client config.
type AppServices struct {
	Config        *config.ClientConfig
	Catalog       catalog.Client
	Voice         *voice.Adapter
	Questionnaire *application.QuestionnaireService
}

// RecognizerResolver builds the speech engine for a voice config.
type RecognizerResolver func(config.VoiceConfig) (voice.Recognizer, error)

// BuildAppServices constructs the catalog client, voice adapter and
// questionnaire service for cfg.
func BuildAppServices(cfg *config.ClientConfig, logger *slog.Logger) (*AppServices, error) {
	return BuildAppServicesWithRecognizer(cfg, logger, infravoice.NewRecognizer)
}

// BuildAppServicesWithRecognizer allows callers to supply a custom speech engine resolver.
func BuildAppServicesWithRecognizer(cfg *config.ClientConfig, logger *slog.Logger, resolve RecognizerResolver) (*AppServices, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := NewCatalogClient(cfg)

	recognizer, err := resolve(cfg.Voice)
	if err != nil {
		return nil, fmt.Errorf("voice engine: %w", err)
	}
	adapter := voice.NewAdapter(recognizer, cfg.Voice.Locale, logger)

	svc, err := application.NewQuestionnaireService(client, adapter, cfg.Policy(), logger)
	if err != nil {
		return nil, fmt.Errorf("questionnaire service: %w", err)
	}

	return &AppServices{
		Config:        cfg,
		Catalog:       client,
		Voice:         adapter,
		Questionnaire: svc,
	}, nil
}

// NewCatalogClient wraps the HTTP catalog client with the configured
// timeout and retry policy.
func NewCatalogClient(cfg *config.ClientConfig) catalog.Client {
	inner := catalog.NewHTTPClient(cfg.BaseURL,
		catalog.WithPaths(cfg.OptionsPath, cfg.MatchPath, cfg.ChatPath),
		catalog.WithOrderPath(cfg.OrderPath),
	)
	return catalog.NewResilientClientWithConfig(inner, cfg.Resilience())
}
