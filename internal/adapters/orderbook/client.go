// Package orderbook is a thin client for the order-book REST API: price
// quotes, native token prices and order submission.
package orderbook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/orderflow-labs/quote-engine/internal/config"
	"github.com/orderflow-labs/quote-engine/internal/domain"
	"github.com/orderflow-labs/quote-engine/internal/metrics"
)

// APIError is the structured error body the order book returns on 4xx/5xx.
type APIError struct {
	StatusCode  int    `json:"-"`
	ErrorType   string `json:"errorType"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("orderbook API error: %d %s %s", e.StatusCode, e.ErrorType, e.Description)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.OrderBookConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, endpoint, path string, body, out any) error {
	start := time.Now()
	status := "ok"
	defer func() {
		metrics.OrderBookRequests.WithLabelValues(endpoint, status).Inc()
		metrics.OrderBookDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	var reqBody io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			status = "error"
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		status = "error"
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		status = "error"
		return fmt.Errorf("orderbook request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		status = "error"
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		status = "error"
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := sonic.Unmarshal(data, apiErr); err != nil {
			apiErr.ErrorType = "UnknownError"
			apiErr.Description = string(data)
		}
		log.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_type", apiErr.ErrorType).
			Msg("[orderbook] request failed")
		return apiErr
	}

	if out != nil {
		if err := sonic.Unmarshal(data, out); err != nil {
			status = "error"
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// GetQuote asks the pricing service for a raw quote.
func (c *Client) GetQuote(ctx context.Context, req *domain.OrderQuoteRequest) (*domain.OrderQuoteResponse, error) {
	var resp domain.OrderQuoteResponse
	if err := c.do(ctx, http.MethodPost, "quote", "/api/v1/quote", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetNativePrice returns the token's price in the chain's native currency.
func (c *Client) GetNativePrice(ctx context.Context, token string) (float64, error) {
	var resp domain.NativePriceResponse
	path := "/api/v1/token/" + url.PathEscape(token) + "/native_price"
	if err := c.do(ctx, http.MethodGet, "native_price", path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Price, nil
}

// SendOrder posts a signed order, returning the order UID assigned by the
// order book.
func (c *Client) SendOrder(ctx context.Context, order *domain.SignedOrder) (string, error) {
	var uid string
	if err := c.do(ctx, http.MethodPost, "orders", "/api/v1/orders", order, &uid); err != nil {
		return "", err
	}
	return uid, nil
}
