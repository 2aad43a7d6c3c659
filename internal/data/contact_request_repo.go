package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

const contactRequestColumns = `id, requested_contact, requested_by, reason, status, created_at, updated_at`

// ContactRequestRepo provides database operations for personal-contact requests.
type ContactRequestRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ ports.ContactRequestRepository = (*ContactRequestRepo)(nil)

// NewContactRequestRepo creates a new ContactRequestRepo with real time provider.
func NewContactRequestRepo(db *sql.DB) *ContactRequestRepo {
	return &ContactRequestRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewContactRequestRepoWithTimeProvider creates a new ContactRequestRepo with a custom time provider.
func NewContactRequestRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRequestRepo {
	return &ContactRequestRepo{DB: db, timeProvider: timeProviderOrReal(tp)}
}

// Create inserts a pending request.
func (r *ContactRequestRepo) Create(ctx context.Context, req *model.CreateContactRequest) (*model.ContactRequest, error) {
	if req == nil {
		return nil, errors.New("create contact request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	out := &model.ContactRequest{
		ID:               uuid.NewString(),
		RequestedContact: req.RequestedContact,
		RequestedBy:      req.RequestedBy,
		Reason:           req.Reason,
		Status:           model.ContactRequestPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO contact_requests (`+contactRequestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		out.ID, out.RequestedContact, out.RequestedBy, out.Reason, string(out.Status), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact request: %w", err)
	}
	return out, nil
}

// ListByStatus returns requests in the given status, newest first.
func (r *ContactRequestRepo) ListByStatus(
	ctx context.Context,
	status model.ContactRequestStatus,
) ([]*model.ContactRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+contactRequestColumns+`
		FROM contact_requests
		WHERE status = $1
		ORDER BY created_at DESC, id DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list contact requests: %w", err)
	}
	defer rows.Close()

	out := make([]*model.ContactRequest, 0)
	for rows.Next() {
		cr, scanErr := scanContactRequest(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact requests: %w", err)
	}
	return out, nil
}

// UpdateStatus sets the status of one request and returns the updated row.
// An unknown id returns ErrContactRequestNotFound.
func (r *ContactRequestRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ContactRequestStatus,
) (*model.ContactRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid contact request status: %s", status)
	}

	row := r.DB.QueryRowContext(ctx, `
		UPDATE contact_requests
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+contactRequestColumns, id, string(status), r.timeProvider.Now().UTC())
	cr, err := scanContactRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return cr, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContactRequest(s rowScanner) (*model.ContactRequest, error) {
	var (
		cr     model.ContactRequest
		status string
	)
	if err := s.Scan(&cr.ID, &cr.RequestedContact, &cr.RequestedBy, &cr.Reason,
		&status, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan contact request: %w", err)
	}
	cr.Status = model.ContactRequestStatus(status)
	return &cr, nil
}
