// =============================================================================
// Backer CSV to Shopify Orders - Shopify API Client
// =============================================================================
//
// Minimal client for the order-creation endpoint. One authenticated POST per
// order; authentication is HTTP Basic with the private app API key and
// password. The response body is JSON either way: an order object on
// success, or an "errors" member describing what the store rejected.
//
// =============================================================================

package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIVersion is used when the configuration does not pin one.
const DefaultAPIVersion = "2019-07"

// Credentials identifies the target store and authenticates the private app.
type Credentials struct {
	// StoreHandle is the {handle}.myshopify.com subdomain.
	StoreHandle string
	APIKey      string
	APIPassword string
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Credentials Credentials

	// APIVersion selects the admin API version path segment.
	// Defaults to DefaultAPIVersion.
	APIVersion string

	// Timeout bounds each order-creation call, connection setup included.
	// Defaults to 30s.
	Timeout time.Duration

	// BaseURL overrides the store URL, for tests against a local server.
	// When empty the URL is derived from the store handle.
	BaseURL string
}

// Client performs order-creation calls against one store.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient builds a client from the configuration, applying defaults for
// the API version and timeout.
func NewClient(cfg ClientConfig) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// APIError is the store rejecting an order. Errors carries the raw "errors"
// member of the response body for logging.
type APIError struct {
	StatusCode int
	Errors     json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify rejected order (status %d): %s", e.StatusCode, string(e.Errors))
}

// CreateOrderResult is the successfully created order.
type CreateOrderResult struct {
	ID   int64
	Name string
}

// ordersURL is the order-creation endpoint for the configured store.
func (c *Client) ordersURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL + "/admin/api/" + c.cfg.APIVersion + "/orders.json"
	}
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/orders.json",
		c.cfg.Credentials.StoreHandle, c.cfg.APIVersion)
}

// CreateOrder uploads one order. It returns *APIError when the response
// carries an "errors" member, or a wrapped transport error when the call
// itself failed. Exactly one network call is made either way.
func (c *Client) CreateOrder(ctx context.Context, reqBody CreateOrderRequest) (*CreateOrderResult, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ordersURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Credentials.APIKey, c.cfg.Credentials.APIPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	var parsed struct {
		Errors json.RawMessage `json:"errors"`
		Order  struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"order"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse order response (status %d): %w", resp.StatusCode, err)
	}

	if len(parsed.Errors) > 0 && string(parsed.Errors) != "null" {
		return nil, &APIError{StatusCode: resp.StatusCode, Errors: parsed.Errors}
	}

	return &CreateOrderResult{ID: parsed.Order.ID, Name: parsed.Order.Name}, nil
}
