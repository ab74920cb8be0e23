package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/brightcart/storefront-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the external payment processor over its JSON HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type intentPayload struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	OrderRef string  `json:"order_ref,omitempty"`
}

// CreateIntent registers a payment intent with the processor.
func (c *Client) CreateIntent(ctx context.Context, amount float64, currency, orderRef string) (*ports.PaymentIntent, error) {
	body, err := json.Marshal(intentPayload{
		Amount:   amount,
		Currency: currency,
		OrderRef: orderRef,
	})
	if err != nil {
		return nil, fmt.Errorf("encode intent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/intents", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// GetIntent reads the current state of an intent from the processor.
func (c *Client) GetIntent(ctx context.Context, id string) (*ports.PaymentIntent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*ports.PaymentIntent, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment processor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("payment processor status %d", resp.StatusCode)
	}

	var p intentPayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	return &ports.PaymentIntent{
		ID:       p.ID,
		Status:   p.Status,
		Amount:   p.Amount,
		Currency: p.Currency,
	}, nil
}
