// Package notify delivers contact notifications through the Brevo
// transactional e-mail API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aspire-executive/frontdesk/internal/config"
)

// ErrMailerNotConfigured is returned when the API key, sender or recipient is missing.
var ErrMailerNotConfigured = errors.New("mailer not configured: need BREVO_API_KEY, SENDER_EMAIL and RECIPIENT_EMAIL")

// DeliveryError reports a non-2xx answer from Brevo.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("brevo api error: status %d: %s", e.StatusCode, e.Body)
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      address   `json:"sender"`
	To          []address `json:"to"`
	ReplyTo     *address  `json:"replyTo,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
	TextContent string    `json:"textContent"`
}

// BrevoMailer sends e-mail over HTTPS (port 443, no SMTP).
type BrevoMailer struct {
	cfg        config.Mailer
	httpClient *http.Client
}

// NewBrevoMailer constructs a mailer. httpClient may be nil.
func NewBrevoMailer(cfg config.Mailer, httpClient *http.Client) *BrevoMailer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultBrevoEndpoint
	}
	return &BrevoMailer{cfg: cfg, httpClient: httpClient}
}

// SendContact renders and sends a notification for c to the configured recipient.
func (m *BrevoMailer) SendContact(ctx context.Context, c Contact) error {
	if !m.cfg.Complete() {
		return ErrMailerNotConfigured
	}

	msg, err := Render(c)
	if err != nil {
		return err
	}

	payload := sendRequest{
		Sender:      address{Email: m.cfg.SenderEmail},
		To:          []address{{Email: m.cfg.RecipientEmail}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	}
	if c.Email != "" {
		payload.ReplyTo = &address{Email: c.Email, Name: c.Name}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode brevo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build brevo request: %w", err)
	}
	req.Header.Set("api-key", m.cfg.Key())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send brevo request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &DeliveryError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	return nil
}
