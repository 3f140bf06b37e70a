// Package client is a thin HTTP client for the equipment API.
package client

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

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/response"
)

// APIError is a non-2xx answer from the API. Code and Message come from the
// error envelope when the server sent one.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []response.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("received non-2xx status code: %d", e.Status)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// envelope mirrors response.Envelope with the payload left undecoded.
type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Count   *int                `json:"count"`
	Message string              `json:"message"`
	Error   *response.ErrorBody `json:"error"`
}

// Client talks to one API base URL, e.g. http://localhost:5000/api.
type Client struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every record, newest first.
func (c *Client) List(ctx context.Context) ([]model.Equipment, error) {
	items := make([]model.Equipment, 0)
	if err := c.do(ctx, http.MethodGet, "/equipment", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create submits a new record.
func (c *Client) Create(ctx context.Context, f model.Fields) (*model.Equipment, error) {
	var e model.Equipment
	if err := c.do(ctx, http.MethodPost, "/equipment", f, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update sends a partial update for id.
func (c *Client) Update(ctx context.Context, id string, p model.Patch) (*model.Equipment, error) {
	var e model.Equipment
	if err := c.do(ctx, http.MethodPut, "/equipment/"+url.PathEscape(id), p, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes id and returns the removed record.
func (c *Client) Delete(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	if err := c.do(ctx, http.MethodDelete, "/equipment/"+url.PathEscape(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to unmarshal api response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal api data: %w", err)
		}
	}
	return nil
}
