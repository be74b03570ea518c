package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultRedisAddr is the default Redis address used by the notification queue.
	DefaultRedisAddr = "127.0.0.1:6379"

	// DefaultBrevoEndpoint is the Brevo transactional e-mail API.
	DefaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"
)

// Mailer holds the Brevo settings used by the notification worker.
type Mailer struct {
	APIKey         string `envconfig:"BREVO_API_KEY"`
	LegacyPassword string `envconfig:"BREVO_PASSWORD"`
	SenderEmail    string `envconfig:"SENDER_EMAIL"`
	RecipientEmail string `envconfig:"RECIPIENT_EMAIL"`
	Endpoint       string `envconfig:"BREVO_ENDPOINT" default:"https://api.brevo.com/v3/smtp/email"`
}

// Key returns the API key, falling back to BREVO_PASSWORD.
func (m Mailer) Key() string {
	if m.APIKey != "" {
		return m.APIKey
	}
	return m.LegacyPassword
}

// Complete reports whether every value needed to send mail is present.
func (m Mailer) Complete() bool {
	return m.Key() != "" && m.SenderEmail != "" && m.RecipientEmail != ""
}

// LoadMailer reads the mailer settings from the environment.
// Missing values are not an error here; the worker skips delivery instead.
func LoadMailer() (Mailer, error) {
	var m Mailer
	if err := envconfig.Process("", &m); err != nil {
		return Mailer{}, fmt.Errorf("load mailer config: %w", err)
	}
	return m, nil
}

// Client is the configuration of the contact form client.
type Client struct {
	BackendURL string `envconfig:"BACKEND_URL" required:"true"`
}

// LoadClient reads the contact client settings from the environment.
func LoadClient() (Client, error) {
	var c Client
	if err := envconfig.Process("", &c); err != nil {
		return Client{}, fmt.Errorf("load client config: %w", err)
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	return c, nil
}
