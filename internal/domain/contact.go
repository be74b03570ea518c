package domain

import "time"

// SubmissionStatus tracks the notification state of a stored contact submission.
type SubmissionStatus string

const (
	SubmissionStatusNew          SubmissionStatus = "new"
	SubmissionStatusNotified     SubmissionStatus = "notified"
	SubmissionStatusNotifyFailed SubmissionStatus = "notify_failed"
)

// IsValid checks if the status is one of the allowed values.
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusNew, SubmissionStatusNotified, SubmissionStatusNotifyFailed:
		return true
	default:
		return false
	}
}

// ContactInquiry is the name/email/phone/message record sent through the contact form.
type ContactInquiry struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactSubmission is a persisted contact inquiry.
type ContactSubmission struct {
	ID         string
	Name       string
	Email      string
	Phone      *string // nil when the visitor left it blank
	Message    string
	Status     SubmissionStatus
	CreatedAt  time.Time
	NotifiedAt *time.Time
}

// PhoneOrEmpty returns the phone number or an empty string.
func (s *ContactSubmission) PhoneOrEmpty() string {
	if s.Phone == nil {
		return ""
	}
	return *s.Phone
}
