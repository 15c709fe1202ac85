package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// httpClient implements Client against the backend REST API.
type httpClient struct {
	baseURL         string
	http            *http.Client
	retryMaxElapsed time.Duration
	logger          zerolog.Logger
}

// NewClient creates a new backend client.
func NewClient(cfg config.BackendConfig, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		http:            &http.Client{Timeout: cfg.RequestTimeout},
		retryMaxElapsed: cfg.RetryMaxElapsed,
		logger:          logger.With().Str("component", "backend-client").Logger(),
	}
}

// ListProducts retrieves the full product catalogue.
func (c *httpClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getWithRetry(ctx, "/products", "", &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// SearchProducts retrieves products matching the given keyword.
func (c *httpClient) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	var products []model.Product
	path := "/products/search?value=" + url.QueryEscape(query)
	if err := c.getWithRetry(ctx, path, "", &products); err != nil {
		// A 404 here means no matches, whatever the response body says.
		if model.CodeOf(err) == model.ErrCodeNotFound {
			return nil, model.ErrNoMatches
		}
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetCart retrieves the authenticated user's raw cart records.
func (c *httpClient) GetCart(ctx context.Context, token string) ([]model.CartRecord, error) {
	var records []model.CartRecord
	if err := c.getWithRetry(ctx, "/cart", token, &records); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return records, nil
}

// UpsertCartItem creates or updates a cart entry and returns the full
// updated cart. Writes are never retried.
func (c *httpClient) UpsertCartItem(ctx context.Context, token, productID string, quantity int) ([]model.CartRecord, error) {
	body := model.CartRecord{ProductID: productID, Quantity: quantity}

	var records []model.CartRecord
	if err := c.do(ctx, http.MethodPost, "/cart", token, body, &records); err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return records, nil
}

// Register creates a new user account. Writes are never retried.
func (c *httpClient) Register(ctx context.Context, username, password string) error {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, nil); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	return nil
}

// getWithRetry issues a GET, retrying connectivity-class failures with
// exponential backoff. Backend-signalled failures are never retried.
func (c *httpClient) getWithRetry(ctx context.Context, path, token string, out any) error {
	op := func() error {
		err := c.do(ctx, http.MethodGet, path, token, nil, out)
		if err != nil && model.CodeOf(err) != model.ErrCodeConnectivity {
			return backoff.Permanent(err)
		}
		return err
	}

	if c.retryMaxElapsed <= 0 {
		return c.do(ctx, http.MethodGet, path, token, nil, out)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.retryMaxElapsed

	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}

// do issues a single request and decodes the response into out.
func (c *httpClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	correlationID := uuid.NewString()
	req.Header.Set("X-Correlation-ID", correlationID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("correlation_id", correlationID).
			Msg("backend request failed")
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("correlation_id", correlationID).
		Msg("backend request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
		return nil
	}

	return c.statusError(resp)
}

// statusError maps a non-2xx response to a domain error.
func (c *httpClient) statusError(resp *http.Response) error {
	var msg model.BackendMessage
	_ = json.NewDecoder(resp.Body).Decode(&msg)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if msg.Message == "" {
			return model.ErrNoMatches
		}
		return model.NewDomainError(model.ErrCodeNotFound, msg.Message)

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		if msg.Message == "" {
			msg.Message = "invalid request"
		}
		return model.NewDomainError(model.ErrCodeInvalidRequest, msg.Message)

	default:
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
}
