package dto

import "github.com/aspire-executive/frontdesk/internal/domain"

// ContactRequest represents the request body for POST /api/contact.
type ContactRequest struct {
	Name    string  `json:"name" example:"Jane Doe"`
	Email   string  `json:"email" example:"jane@example.com"`
	Phone   *string `json:"phone,omitempty" example:"+61 2 1234 5678"`
	Message string  `json:"message" example:"Need a quote"`
}

// ToInquiry converts the request into a domain inquiry.
func (r ContactRequest) ToInquiry() domain.ContactInquiry {
	in := domain.ContactInquiry{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
	if r.Phone != nil {
		in.Phone = *r.Phone
	}
	return in
}
