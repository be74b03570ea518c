package contactform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Notification copy shown to the visitor.
const (
	SuccessTitle       = "Message Sent!"
	SuccessDescription = "We'll get back to you within 24 hours."

	ErrorTitle            = "Error"
	UnexpectedDescription = "Unexpected response from server."
	FailureDescription    = "Failed to send message. Please try again or email us directly."
)

// Field names a form field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
)

// Outcome is the result of one Submit call.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUnexpected
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnexpected:
		return "unexpected"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous call is unresolved.
	ErrSubmitInFlight = errors.New("contactform: submission already in flight")
	// ErrUnknownField is returned by UpdateField for names outside the four form fields.
	ErrUnknownField = errors.New("contactform: unknown field")
)

// Poster sends an inquiry to the backend.
type Poster interface {
	Post(ctx context.Context, in Inquiry) (*Response, error)
}

// Form holds the state of one contact form instance.
type Form struct {
	poster   Poster
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	record   Inquiry
	inFlight bool
}

// NewForm creates an empty form. logger may be nil. The notifier is called
// with the form locked and must not call back into it.
func NewForm(poster Poster, notifier Notifier, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{poster: poster, notifier: notifier, logger: logger}
}

// UpdateField replaces one field of the current record. No validation is applied.
func (f *Form) UpdateField(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.record.Name = value
	case FieldEmail:
		f.record.Email = value
	case FieldPhone:
		f.record.Phone = value
	case FieldMessage:
		f.record.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Snapshot returns a copy of the current record.
func (f *Form) Snapshot() Inquiry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record
}

// InFlight reports whether a submission is outstanding.
func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Submit posts the current record. While a previous call is unresolved it
// returns ErrSubmitInFlight without posting. Otherwise the outcome has already
// been reported to the Notifier when Submit returns; the record is cleared
// only on OutcomeSuccess.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return OutcomeFailed, ErrSubmitInFlight
	}
	f.inFlight = true
	sent := f.record
	f.mu.Unlock()

	resp, err := f.poster.Post(ctx, sent)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	switch {
	case err != nil:
		f.logger.Error("error submitting contact form", "error", err)
		f.notifier.Error(ErrorTitle, FailureDescription)
		return OutcomeFailed, nil
	case resp == nil || resp.Status != StatusSuccess:
		status := ""
		if resp != nil {
			status = resp.Status
		}
		f.logger.Warn("unexpected contact response", "status", status)
		f.notifier.Error(ErrorTitle, UnexpectedDescription)
		return OutcomeUnexpected, nil
	default:
		f.record = Inquiry{}
		f.notifier.Success(SuccessTitle, SuccessDescription)
		return OutcomeSuccess, nil
	}
}
