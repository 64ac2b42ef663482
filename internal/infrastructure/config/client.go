package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fashionous/pkg/catalog"
	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/felixgeelhaar/fashionous/pkg/domain/voice"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "fashionous.yaml"

// Voice engines.
const (
	EngineNone      = "none"
	EngineWebSocket = "websocket"
	EngineFile      = "file"
)

// VoiceConfig selects the speech engine.
type VoiceConfig struct {
	Engine string `yaml:"engine"`
	Locale string `yaml:"locale"`
	URL    string `yaml:"url,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// ClientConfig stores backend and input settings for the questionnaire.
type ClientConfig struct {
	BaseURL      string      `yaml:"base_url"`
	OptionsPath  string      `yaml:"options_path"`
	MatchPath    string      `yaml:"match_path"`
	ChatPath     string      `yaml:"chat_path"`
	OrderPath    string      `yaml:"order_path"`
	TimeoutSec   int         `yaml:"timeout_sec"`
	MaxRetries   int         `yaml:"max_retries"`
	RetryDelayMs int         `yaml:"retry_delay_ms"`
	BackPolicy   string      `yaml:"back_policy"`
	Voice        VoiceConfig `yaml:"voice"`
}

// Default returns the configuration used when no file exists.
func Default() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://localhost:5000",
		OptionsPath:  catalog.DefaultOptionsPath,
		MatchPath:    catalog.DefaultMatchPath,
		ChatPath:     catalog.DefaultChatPath,
		OrderPath:    catalog.DefaultOrderPath,
		TimeoutSec:   30,
		MaxRetries:   0,
		RetryDelayMs: 500,
		BackPolicy:   string(questionnaire.RetainOnBack),
		Voice: VoiceConfig{
			Engine: EngineNone,
			Locale: voice.DefaultLocale,
		},
	}
}

// Load reads path (or DefaultFile in dir when path is empty), fills unset
// fields with defaults and applies environment overrides. A missing file is
// not an error. A .env file next to the config is loaded first.
func Load(dir, path string) (*ClientConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if path == "" {
		path = filepath.Join(dir, DefaultFile)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *ClientConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks values that cannot be defaulted.
func (c *ClientConfig) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL, got %q", c.BaseURL)
	}
	if _, err := questionnaire.ParseBackPolicy(c.BackPolicy); err != nil {
		return err
	}
	switch c.Voice.Engine {
	case EngineNone:
	case EngineWebSocket:
		if c.Voice.URL == "" {
			return fmt.Errorf("voice.url is required for the websocket engine")
		}
	case EngineFile:
		if c.Voice.Dir == "" {
			return fmt.Errorf("voice.dir is required for the file engine")
		}
	default:
		return fmt.Errorf("unsupported voice engine: %s", c.Voice.Engine)
	}
	return nil
}

// Resilience converts the timeout and retry settings.
func (c *ClientConfig) Resilience() catalog.ResilienceConfig {
	return catalog.ResilienceConfig{
		MaxRetries: c.MaxRetries,
		RetryDelay: time.Duration(c.RetryDelayMs) * time.Millisecond,
		Timeout:    time.Duration(c.TimeoutSec) * time.Second,
	}
}

// Policy returns the parsed back policy. Call after Validate.
func (c *ClientConfig) Policy() questionnaire.BackPolicy {
	p, _ := questionnaire.ParseBackPolicy(c.BackPolicy)
	return p
}

func (c *ClientConfig) applyEnv() {
	if v := os.Getenv("FASHIONOUS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("FASHIONOUS_VOICE_ENGINE"); v != "" {
		c.Voice.Engine = v
	}
	if v := os.Getenv("FASHIONOUS_VOICE_URL"); v != "" {
		c.Voice.URL = v
	}
}

func (c *ClientConfig) fillDefaults() {
	def := Default()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.OptionsPath == "" {
		c.OptionsPath = def.OptionsPath
	}
	if c.MatchPath == "" {
		c.MatchPath = def.MatchPath
	}
	if c.ChatPath == "" {
		c.ChatPath = def.ChatPath
	}
	if c.OrderPath == "" {
		c.OrderPath = def.OrderPath
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = def.TimeoutSec
	}
	if c.RetryDelayMs <= 0 {
		c.RetryDelayMs = def.RetryDelayMs
	}
	if c.Voice.Engine == "" {
		c.Voice.Engine = EngineNone
	}
	if c.Voice.Locale == "" {
		c.Voice.Locale = def.Voice.Locale
	}
}
