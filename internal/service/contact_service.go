package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aspire-executive/frontdesk/internal/domain"
	"github.com/aspire-executive/frontdesk/internal/jobs"
)

// ContactStore persists contact submissions.
type ContactStore interface {
	Create(ctx context.Context, s *domain.ContactSubmission) error
	GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error)
}

// NotificationQueue hands a stored submission to the e-mail worker.
type NotificationQueue interface {
	EnqueueContactNotify(ctx context.Context, payload jobs.ContactNotifyPayload) error
}

// ContactService accepts contact inquiries from the public site.
type ContactService struct {
	store     ContactStore
	queue     NotificationQueue
	validator *Validator
}

// NewContactService creates a new ContactService. queue may be nil, in which
// case submissions are stored without a notification.
func NewContactService(store ContactStore, queue NotificationQueue) *ContactService {
	return &ContactService{
		store:     store,
		queue:     queue,
		validator: NewValidator(),
	}
}

// Submit validates and stores an inquiry, then queues the notification e-mail.
// A queueing failure is logged and does not fail the submission.
func (s *ContactService) Submit(ctx context.Context, inquiry domain.ContactInquiry) (*domain.ContactSubmission, error) {
	inquiry = normalize(inquiry)

	if err := s.validator.Inquiry(inquiry); err != nil {
		return nil, err
	}

	sub := &domain.ContactSubmission{
		Name:    inquiry.Name,
		Email:   inquiry.Email,
		Message: inquiry.Message,
		Status:  domain.SubmissionStatusNew,
	}
	if inquiry.Phone != "" {
		phone := inquiry.Phone
		sub.Phone = &phone
	}

	if err := s.store.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("store contact submission: %w", err)
	}

	slog.Info("contact submission stored", "submission_id", sub.ID)

	if s.queue == nil {
		slog.Warn("notification queue not configured, skipping e-mail", "submission_id", sub.ID)
		return sub, nil
	}

	if err := s.queue.EnqueueContactNotify(ctx, jobs.PayloadFromSubmission(sub)); err != nil {
		slog.Error("failed to enqueue contact notification",
			"submission_id", sub.ID,
			"error", err,
		)
	}

	return sub, nil
}

// Get returns a stored submission.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	return s.store.GetByID(ctx, id)
}

func normalize(in domain.ContactInquiry) domain.ContactInquiry {
	return domain.ContactInquiry{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Message: strings.TrimSpace(in.Message),
	}
}
