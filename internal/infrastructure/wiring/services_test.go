package wiring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/felixgeelhaar/fashionous/pkg/domain/voice"
)

func TestBuildAppServicesDefaults(t *testing.T) {
	services, err := BuildAppServices(config.Default(), nil)
	if err != nil {
		t.Fatalf("build services failed: %v", err)
	}
	if services.Catalog == nil || services.Voice == nil || services.Questionnaire == nil {
		t.Fatalf("expected non-nil services, got %+v", services)
	}
	if services.Voice.Available() {
		t.Fatal("expected voice to be unavailable with the none engine")
	}
	if services.Questionnaire.Phase() != questionnaire.PhaseIdle {
		t.Fatalf("expected idle phase, got %s", services.Questionnaire.Phase())
	}
}

func TestBuildAppServicesNilConfig(t *testing.T) {
	if _, err := BuildAppServices(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

type stubRecognizer struct{}

func (stubRecognizer) Name() string { return "stub" }
func (stubRecognizer) Recognize(context.Context, voice.Request) (voice.Utterance, error) {
	return voice.Utterance{Transcript: "silk"}, nil
}

func TestBuildAppServicesWithRecognizer(t *testing.T) {
	cfg := config.Default()
	cfg.Voice.Locale = "en-IN"

	services, err := BuildAppServicesWithRecognizer(cfg, nil, func(config.VoiceConfig) (voice.Recognizer, error) {
		return stubRecognizer{}, nil
	})
	if err != nil {
		t.Fatalf("build services failed: %v", err)
	}
	if !services.Voice.Available() {
		t.Fatal("expected voice to be available")
	}
	if services.Voice.Locale() != "en-IN" {
		t.Fatalf("expected locale en-IN, got %s", services.Voice.Locale())
	}
}

func TestBuildAppServicesResolverError(t *testing.T) {
	_, err := BuildAppServicesWithRecognizer(config.Default(), nil, func(config.VoiceConfig) (voice.Recognizer, error) {
		return nil, errors.New("no microphone")
	})
	if err == nil {
		t.Fatal("expected resolver error to propagate")
	}
}

func TestNewCatalogClientUsesConfiguredPaths(t *testing.T) {
	paths := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fabric":["silk"]}`))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.BaseURL = server.URL
	cfg.OptionsPath = "/v2/options"

	opts, err := NewCatalogClient(cfg).FetchOptions(context.Background())
	if err != nil {
		t.Fatalf("fetch options: %v", err)
	}
	if gotPath := <-paths; gotPath != "/v2/options" {
		t.Fatalf("expected /v2/options, got %s", gotPath)
	}
	if len(opts["fabric"]) != 1 || opts["fabric"][0] != "silk" {
		t.Fatalf("unexpected options: %v", opts)
	}
}
