package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aspire-executive/frontdesk/internal/domain"
)

// contactColumns is the shared list of columns for contact submission queries.
var contactColumns = []string{
	"id", "name", "email", "phone", "message", "status", "created_at", "notified_at",
}

// ContactRepository handles database operations for contact submissions.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// scanSubmission scans a single row into a ContactSubmission.
func scanSubmission(row pgx.Row) (*domain.ContactSubmission, error) {
	var s domain.ContactSubmission
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Message,
		&s.Status,
		&s.CreatedAt,
		&s.NotifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("scan contact submission: %w", err)
	}
	return &s, nil
}

// Create inserts a new submission. ID, status and created_at are filled in when empty.
func (r *ContactRepository) Create(ctx context.Context, s *domain.ContactSubmission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = domain.SubmissionStatusNew
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.
		Insert("contact_submissions").
		Columns("id", "name", "email", "phone", "message", "status", "created_at").
		Values(s.ID, s.Name, s.Email, s.Phone, s.Message, s.Status, s.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}

	return nil
}

// GetByID retrieves a submission by ID.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	query, args, err := psql.
		Select(contactColumns...).
		From("contact_submissions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for submission %s: %w", id, err)
	}

	return scanSubmission(r.pool.QueryRow(ctx, query, args...))
}

// Page sizes for List.
const (
	DefaultListLimit uint64 = 50
	MaxListLimit     uint64 = 200
)

// ListFilter narrows List results.
type ListFilter struct {
	Status *domain.SubmissionStatus
	Limit  uint64
	Offset uint64
}

// List returns submissions newest first.
func (r *ContactRepository) List(ctx context.Context, filter ListFilter) ([]*domain.ContactSubmission, error) {
	limit := listLimit(filter.Limit)

	builder := psql.
		Select(contactColumns...).
		From("contact_submissions").
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(filter.Offset)
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contact submissions: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContactSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// UpdateStatus records the notification outcome for a submission.
// notified_at is stamped only when moving to notified.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status domain.SubmissionStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	builder := psql.
		Update("contact_submissions").
		Set("status", status).
		Where(sq.Eq{"id": id})
	if status == domain.SubmissionStatusNotified {
		builder = builder.Set("notified_at", sq.Expr("now()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build update status query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update submission %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func listLimit(limit uint64) uint64 {
	switch {
	case limit == 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
