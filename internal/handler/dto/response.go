package dto

import (
	"time"

	"github.com/aspire-executive/frontdesk/internal/domain"
)

// ContactAcknowledgement is returned to visitors after a successful submission.
const ContactAcknowledgement = "Thank you for contacting us. We'll get back to you within 24 hours."

// StatusSuccess is the status value of an accepted submission.
const StatusSuccess = "success"

// ContactResponse represents the response for POST /api/contact.
type ContactResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// APIRootResponse represents the response for GET /api/.
type APIRootResponse struct {
	Message string `json:"message"`
}

// SubmissionResponse represents a stored submission.
type SubmissionResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone"`
	Message    string     `json:"message"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	NotifiedAt *time.Time `json:"notified_at"`
}

// ToContactResponse builds the acknowledgement for a stored submission.
func ToContactResponse(s *domain.ContactSubmission) ContactResponse {
	return ContactResponse{
		Status:  StatusSuccess,
		Message: ContactAcknowledgement,
		ID:      s.ID,
	}
}

// ToSubmissionResponse converts domain.ContactSubmission to SubmissionResponse.
func ToSubmissionResponse(s *domain.ContactSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Message:    s.Message,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
		NotifiedAt: s.NotifiedAt,
	}
}
