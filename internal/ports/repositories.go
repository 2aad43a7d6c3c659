package ports

import (
	"context"
	"time"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
)

// CallLogRepository persists uploaded call logs.
type CallLogRepository interface {
	Create(ctx context.Context, req *model.CreateCallLogRequest) (*model.CallLog, error)
	List(ctx context.Context, opts model.CallLogListOptions) ([]*model.CallLog, error)
	// Count ignores Limit and Offset.
	Count(ctx context.Context, opts model.CallLogListOptions) (int, error)
}

// CallLogPurger deletes call logs past their retention window.
type CallLogPurger interface {
	// DeleteUploadedBefore removes up to batchSize rows uploaded before cutoff and returns the count.
	DeleteUploadedBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}

// ContactRequestRepository persists personal-contact requests.
type ContactRequestRepository interface {
	Create(ctx context.Context, req *model.CreateContactRequest) (*model.ContactRequest, error)
	ListByStatus(ctx context.Context, status model.ContactRequestStatus) ([]*model.ContactRequest, error)
	UpdateStatus(ctx context.Context, id string, status model.ContactRequestStatus) (*model.ContactRequest, error)
}

// VersionRepository reads published app versions.
type VersionRepository interface {
	// Latest returns the newest release or (nil, nil) when none exist.
	Latest(ctx context.Context) (*model.AppVersion, error)
}

// UserDetailsRepository persists device reports.
type UserDetailsRepository interface {
	Upsert(ctx context.Context, req *model.SyncUserDetailsRequest) (*model.UserDetails, error)
	List(ctx context.Context) ([]*model.UserDetails, error)
}
