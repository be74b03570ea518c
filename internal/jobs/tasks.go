package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aspire-executive/frontdesk/internal/domain"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeContactNotify is the task type for contact notification e-mails.
	TaskTypeContactNotify = "contact:notify"
	// ContactNotifyMaxRetry bounds delivery attempts per submission.
	ContactNotifyMaxRetry = 5
)

// ContactNotifyPayload describes a stored submission that needs an e-mail.
type ContactNotifyPayload struct {
	SubmissionID string    `json:"submission_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// PayloadFromSubmission builds the task payload for a stored submission.
func PayloadFromSubmission(s *domain.ContactSubmission) ContactNotifyPayload {
	return ContactNotifyPayload{
		SubmissionID: s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.PhoneOrEmpty(),
		Message:      s.Message,
		SubmittedAt:  s.CreatedAt,
	}
}

// NewContactNotifyTask constructs an Asynq task. The submission ID doubles as
// the task ID so a submission is never queued twice.
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	if payload.SubmissionID == "" {
		return nil, fmt.Errorf("contact notify task: submission id is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeContactNotify, data,
		asynq.TaskID("contact-notify:"+payload.SubmissionID),
		asynq.MaxRetry(ContactNotifyMaxRetry),
		asynq.Queue(QueueDefault),
	), nil
}
