package catalog

import (
	"net/http"
	"time"
)

// Default endpoint paths served by the Fashionous backend.
const (
	DefaultOptionsPath = "/api/questionnaire_options"
	DefaultMatchPath   = "/api/questionnaire"
	DefaultChatPath    = "/api/chat"
	DefaultOrderPath   = "/api/place_order"
)

type options struct {
	httpClient  *http.Client
	optionsPath string
	matchPath   string
	chatPath    string
	orderPath   string
}

func defaultOptions() options {
	return options{
		optionsPath: DefaultOptionsPath,
		matchPath:   DefaultMatchPath,
		chatPath:    DefaultChatPath,
		orderPath:   DefaultOrderPath,
	}
}

// Option configures the HTTP client.
type Option func(*options)

// WithHTTPClient replaces http.DefaultClient (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithPaths overrides the endpoint paths. Empty values keep the defaults.
func WithPaths(optionsPath, matchPath, chatPath string) Option {
	return func(o *options) {
		if optionsPath != "" {
			o.optionsPath = optionsPath
		}
		if matchPath != "" {
			o.matchPath = matchPath
		}
		if chatPath != "" {
			o.chatPath = chatPath
		}
	}
}

// WithOrderPath overrides the order endpoint. An empty value keeps the default.
func WithOrderPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.orderPath = path
		}
	}
}

// ResilienceConfig bounds each catalog call.
type ResilienceConfig struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultResilienceConfig makes a single attempt bounded by 30 seconds.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries: 0,
		RetryDelay: 500 * time.Millisecond,
		Timeout:    30 * time.Second,
	}
}
