package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/aspire-executive/frontdesk/internal/domain"
	"github.com/aspire-executive/frontdesk/internal/notify"
)

// Mailer sends contact notification e-mails.
type Mailer interface {
	SendContact(ctx context.Context, c notify.Contact) error
}

// StatusRecorder stores the notification outcome of a submission.
type StatusRecorder interface {
	UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error
}

// ContactNotifyJob delivers e-mails for TaskTypeContactNotify tasks.
type ContactNotifyJob struct {
	mailer  Mailer
	status  StatusRecorder
	logger  *slog.Logger
	attempt func(ctx context.Context) (retried, maxRetry int, ok bool)
}

// NewContactNotifyJob constructs the job handler. status may be nil.
func NewContactNotifyJob(mailer Mailer, status StatusRecorder, logger *slog.Logger) *ContactNotifyJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactNotifyJob{mailer: mailer, status: status, logger: logger, attempt: taskAttempt}
}

// Handle processes TaskTypeContactNotify tasks.
func (j *ContactNotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ContactNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		j.logger.Error("decode contact notify payload", slog.Any("error", err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With(slog.String("submission_id", payload.SubmissionID))

	err := j.mailer.SendContact(ctx, notify.Contact{
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Message:     payload.Message,
		SubmittedAt: payload.SubmittedAt,
	})
	if err == nil {
		j.record(ctx, log, payload.SubmissionID, domain.SubmissionStatusNotified)
		log.Info("contact notification sent")
		return nil
	}

	if errors.Is(err, notify.ErrMailerNotConfigured) {
		log.Error("email delivery failed", slog.Any("error", err))
		j.record(ctx, log, payload.SubmissionID, domain.SubmissionStatusNotifyFailed)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if j.isFinalAttempt(ctx) {
		log.Error("email delivery failed, giving up", slog.Any("error", err))
		j.record(ctx, log, payload.SubmissionID, domain.SubmissionStatusNotifyFailed)
		return err
	}

	log.Warn("email delivery failed, will retry", slog.Any("error", err))
	return err
}

func (j *ContactNotifyJob) record(ctx context.Context, log *slog.Logger, id string, status domain.SubmissionStatus) {
	if j.status == nil || id == "" {
		return
	}
	if err := j.status.UpdateStatus(ctx, id, status); err != nil {
		log.Error("record notification status", slog.String("status", string(status)), slog.Any("error", err))
	}
}

// isFinalAttempt reports whether the running task has no retries left.
// Outside a worker (no task metadata) every attempt is final.
func (j *ContactNotifyJob) isFinalAttempt(ctx context.Context) bool {
	retried, maxRetry, ok := j.attempt(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}

// taskAttempt reads the retry counters asynq attaches to a task context.
func taskAttempt(ctx context.Context) (retried, maxRetry int, ok bool) {
	retried, ok = asynq.GetRetryCount(ctx)
	if !ok {
		return 0, 0, false
	}
	maxRetry, ok = asynq.GetMaxRetry(ctx)
	if !ok {
		return 0, 0, false
	}
	return retried, maxRetry, true
}
