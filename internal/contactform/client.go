// Package contactform implements the visitor-side contact submission flow:
// a small form-state record, one guarded POST to the backend contact
// endpoint, and success/error notifications.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// StatusSuccess is the status value the backend returns for an accepted inquiry.
const StatusSuccess = "success"

const contactPath = "/api/contact"

// Config is resolved once at process start and passed in at construction.
type Config struct {
	BackendBaseURL string
	Timeout        time.Duration
}

// Inquiry is the JSON body posted to the contact endpoint.
type Inquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Response is the JSON answer of the contact endpoint.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// StatusError is returned for non-2xx answers.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("contact endpoint returned status %d", e.StatusCode)
}

// Client posts inquiries to the backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a Client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	base := strings.TrimRight(cfg.BackendBaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("contactform: backend base URL is required")
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{endpoint: base + contactPath, httpClient: httpClient}, nil
}

// Endpoint returns the full contact URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Post sends one inquiry and decodes the JSON answer. A 2xx answer whose
// body is not a JSON object yields a Response with an empty Status.
func (c *Client) Post(ctx context.Context, in Inquiry) (*Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode inquiry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post inquiry: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		slog.Warn("decode contact response", "status_code", resp.StatusCode, "error", err)
		return &Response{}, nil
	}
	return &out, nil
}
