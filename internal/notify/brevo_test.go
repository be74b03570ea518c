package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspire-executive/frontdesk/internal/config"
	"github.com/aspire-executive/frontdesk/internal/notify"
)

func testContact() notify.Contact {
	return notify.Contact{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Message:     "Need a quote",
		SubmittedAt: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
	}
}

func TestRender_PhoneNotProvided(t *testing.T) {
	msg, err := notify.Render(testContact())
	require.NoError(t, err)

	assert.Equal(t, notify.Subject, msg.Subject)
	assert.Contains(t, msg.Text, "Phone: Not provided")
	assert.Contains(t, msg.Text, "Submitted At: 2025-03-04 05:06:07 UTC")
	assert.Contains(t, msg.HTML, "<strong>Phone:</strong> Not provided")
}

func TestRender_EscapesHTML(t *testing.T) {
	c := testContact()
	c.Message = "<script>alert(1)</script>"
	c.Phone = "+61 2 1234 5678"

	msg, err := notify.Render(c)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.Text, "<script>alert(1)</script>")
	assert.Contains(t, msg.Text, "Phone: +61 2 1234 5678")
}

func TestBrevoMailer_SendContact(t *testing.T) {
	var got map[string]any
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@smtp-relay>"}`))
	}))
	defer srv.Close()

	mailer := notify.NewBrevoMailer(config.Mailer{
		APIKey:         "secret",
		SenderEmail:    "noreply@example.com",
		RecipientEmail: "inbox@example.com",
		Endpoint:       srv.URL,
	}, srv.Client())

	require.NoError(t, mailer.SendContact(context.Background(), testContact()))

	assert.Equal(t, "secret", apiKey)
	assert.Equal(t, notify.Subject, got["subject"])
	assert.Equal(t, map[string]any{"email": "noreply@example.com"}, got["sender"])
	assert.Equal(t, []any{map[string]any{"email": "inbox@example.com"}}, got["to"])
	assert.Equal(t, map[string]any{"email": "jane@example.com", "name": "Jane Doe"}, got["replyTo"])
}

func TestBrevoMailer_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	mailer := notify.NewBrevoMailer(config.Mailer{
		APIKey:         "bad",
		SenderEmail:    "noreply@example.com",
		RecipientEmail: "inbox@example.com",
		Endpoint:       srv.URL,
	}, srv.Client())

	err := mailer.SendContact(context.Background(), testContact())

	var derr *notify.DeliveryError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, http.StatusUnauthorized, derr.StatusCode)
	assert.Contains(t, derr.Body, "unauthorized")
}

func TestBrevoMailer_NotConfigured(t *testing.T) {
	mailer := notify.NewBrevoMailer(config.Mailer{APIKey: "key"}, nil)

	err := mailer.SendContact(context.Background(), testContact())
	assert.ErrorIs(t, err, notify.ErrMailerNotConfigured)
}
