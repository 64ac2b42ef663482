// Package catalog talks to the Fashionous product backend: it fetches the
// questionnaire options, posts answers to get product suggestions and
// places orders for chosen products.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/felixgeelhaar/fashionous/pkg/domain/questionnaire"
)

// Client is the backend collaborator used by the questionnaire.
type Client interface {
	FetchOptions(ctx context.Context) (questionnaire.Options, error)
	MatchProducts(ctx context.Context, criteria questionnaire.Criteria) ([]questionnaire.Suggestion, error)
	Ask(ctx context.Context, message string) (*ChatReply, error)
	PlaceOrder(ctx context.Context, order OrderRequest) (*OrderReply, error)
}

// ChatReply is the free-text search response.
type ChatReply struct {
	Results []questionnaire.Suggestion `json:"results"`
	Message string                     `json:"message,omitempty"`
}

// OrderRequest carries the buyer's contact details and the chosen products.
type OrderRequest struct {
	Name     string                     `json:"name"`
	Phone    string                     `json:"phone"`
	Address  string                     `json:"address"`
	Products []questionnaire.Suggestion `json:"products"`
}

// OrderReply is the backend's verdict on an order. Success is false when
// the backend rejected the request, with the reason in Message.
type OrderReply struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	TotalAmount int    `json:"total_amount,omitempty"`
}

type matchRequest struct {
	Criteria questionnaire.Criteria `json:"criteria"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type resultsResponse struct {
	Results []questionnaire.Suggestion `json:"results"`
}

// HTTPClient calls the backend over plain HTTP.
type HTTPClient struct {
	baseURL    string
	opts       options
	httpClient *http.Client
}

// NewHTTPClient creates a client for the backend rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	client := o.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       o,
		httpClient: client,
	}
}

// FetchOptions retrieves the option lists keyed by step.
func (c *HTTPClient) FetchOptions(ctx context.Context) (questionnaire.Options, error) {
	body, err := c.do(ctx, http.MethodGet, c.opts.optionsPath, nil)
	if err != nil {
		return nil, err
	}
	if err := validateOptions(body); err != nil {
		return nil, err
	}
	var opts questionnaire.Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOptions, err)
	}
	return opts, nil
}

// MatchProducts posts the criteria and returns the suggestions. A missing
// results field yields an empty slice.
func (c *HTTPClient) MatchProducts(ctx context.Context, criteria questionnaire.Criteria) ([]questionnaire.Suggestion, error) {
	if criteria == nil {
		criteria = questionnaire.Criteria{}
	}
	payload, err := json.Marshal(matchRequest{Criteria: criteria})
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, c.opts.matchPath, payload)
	if err != nil {
		return nil, err
	}
	var resp resultsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResults, err)
	}
	if resp.Results == nil {
		return []questionnaire.Suggestion{}, nil
	}
	return resp.Results, nil
}

// Ask runs a free-text search.
func (c *HTTPClient) Ask(ctx context.Context, message string) (*ChatReply, error) {
	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, c.opts.chatPath, payload)
	if err != nil {
		return nil, err
	}
	var reply ChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResults, err)
	}
	return &reply, nil
}

// PlaceOrder submits an order. A rejected order is not an error: the reply
// comes back with Success false.
func (c *HTTPClient) PlaceOrder(ctx context.Context, order OrderRequest) (*OrderReply, error) {
	if order.Products == nil {
		order.Products = []questionnaire.Suggestion{}
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	body, err := c.do(ctx, http.MethodPost, c.opts.orderPath, payload)
	if err != nil {
		return nil, err
	}
	var reply OrderReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOrder, err)
	}
	return &reply, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: path, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return body, nil
}
