package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aspire-executive/frontdesk/internal/domain"
)

// inquiryRules mirrors domain.ContactInquiry with validation tags.
type inquiryRules struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email,max=320"`
	Phone   string `validate:"omitempty,max=50"`
	Message string `validate:"required,max=5000"`
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidSubmission, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidSubmission
}

// Validator checks contact inquiries before they are stored.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Inquiry validates the inquiry fields.
func (v *Validator) Inquiry(in domain.ContactInquiry) error {
	err := v.validate.Struct(inquiryRules{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate inquiry: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[strings.ToLower(fe.Field())] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
