package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// Subject is the subject line of contact notification e-mails.
const Subject = "New Contact Form Submission - Aspire Executive Solutions"

const timestampLayout = "2006-01-02 15:04:05 UTC"

// Contact is the data rendered into a notification e-mail.
type Contact struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	SubmittedAt time.Time
}

// Message is a rendered e-mail.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<html><body style="font-family:Arial,sans-serif">
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Message:</strong></p>
  <div style="white-space:pre-wrap;border:1px solid #ddd;padding:10px;border-radius:6px">{{.Message}}</div>
  <p style="margin-top:12px;color:#666">Submitted At: {{.Timestamp}}</p>
</body></html>
`))

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
Phone: {{.Phone}}

Message:
{{.Message}}

Submitted At: {{.Timestamp}}
`))

type view struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	Timestamp string
}

// Render builds the HTML and plain-text notification for a contact.
func Render(c Contact) (Message, error) {
	v := view{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		Timestamp: c.SubmittedAt.UTC().Format(timestampLayout),
	}
	if v.Phone == "" {
		v.Phone = "Not provided"
	}

	var html, text bytes.Buffer
	if err := htmlBody.Execute(&html, v); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}
	if err := textBody.Execute(&text, v); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}

	return Message{Subject: Subject, HTML: html.String(), Text: text.String()}, nil
}
