package catalog

import (
	"context"

	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ResilientClient bounds every call of the inner client with a timeout and
// an optional retry budget.
type ResilientClient struct {
	inner Client
	cfg   ResilienceConfig
}

func NewResilientClient(inner Client) *ResilientClient {
	return NewResilientClientWithConfig(inner, DefaultResilienceConfig())
}

// NewResilientClientWithConfig fills zero durations from the defaults.
// MaxRetries below zero is treated as zero.
func NewResilientClientWithConfig(inner Client, cfg ResilienceConfig) *ResilientClient {
	def := DefaultResilienceConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &ResilientClient{inner: inner, cfg: cfg}
}

func (c *ResilientClient) FetchOptions(ctx context.Context) (questionnaire.Options, error) {
	return execute(ctx, c.cfg, c.inner.FetchOptions)
}

func (c *ResilientClient) MatchProducts(ctx context.Context, criteria questionnaire.Criteria) ([]questionnaire.Suggestion, error) {
	return execute(ctx, c.cfg, func(ctx context.Context) ([]questionnaire.Suggestion, error) {
		return c.inner.MatchProducts(ctx, criteria)
	})
}

func (c *ResilientClient) Ask(ctx context.Context, message string) (*ChatReply, error) {
	return execute(ctx, c.cfg, func(ctx context.Context) (*ChatReply, error) {
		return c.inner.Ask(ctx, message)
	})
}

// PlaceOrder is never retried: a second attempt could record the order twice.
func (c *ResilientClient) PlaceOrder(ctx context.Context, order OrderRequest) (*OrderReply, error) {
	once := c.cfg
	once.MaxRetries = 0
	return execute(ctx, once, func(ctx context.Context) (*OrderReply, error) {
		return c.inner.PlaceOrder(ctx, order)
	})
}

func execute[T any](ctx context.Context, cfg ResilienceConfig, fn func(context.Context) (T, error)) (T, error) {
	r := retry.New[T](retry.Config{
		MaxAttempts:   cfg.MaxRetries + 1,
		InitialDelay:  cfg.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[T](timeout.Config{
		DefaultTimeout: cfg.Timeout,
	})

	return t.Execute(ctx, cfg.Timeout, func(ctx context.Context) (T, error) {
		return r.Do(ctx, fn)
	})
}
