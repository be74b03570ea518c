package domain

import "errors"

// Domain-specific errors for contact intake.
var (
	ErrSubmissionNotFound = errors.New("contact submission not found")
	ErrInvalidSubmission  = errors.New("invalid contact submission")
	ErrInvalidStatus      = errors.New("invalid submission status")
)
