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

const userDetailsColumns = `id, username, email, department, phone_model, os_level, app_version, last_seen, created_at, updated_at`

// UserDetailsRepo provides database operations for device reports.
type UserDetailsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ ports.UserDetailsRepository = (*UserDetailsRepo)(nil)

// NewUserDetailsRepo creates a new UserDetailsRepo with real time provider.
func NewUserDetailsRepo(db *sql.DB) *UserDetailsRepo {
	return &UserDetailsRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewUserDetailsRepoWithTimeProvider creates a new UserDetailsRepo with a custom time provider.
func NewUserDetailsRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserDetailsRepo {
	return &UserDetailsRepo{DB: db, timeProvider: timeProviderOrReal(tp)}
}

// Upsert inserts or replaces the report for the normalized req.Email.
// Optional fields left nil keep their stored value on update.
func (r *UserDetailsRepo) Upsert(ctx context.Context, req *model.SyncUserDetailsRequest) (*model.UserDetails, error) {
	if req == nil {
		return nil, errors.New("sync user details request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	lastSeen := now
	if req.LastSeen != nil {
		lastSeen = req.LastSeen.UTC()
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO user_details (`+userDetailsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (email) DO UPDATE SET
			username    = EXCLUDED.username,
			department  = COALESCE(EXCLUDED.department, user_details.department),
			phone_model = COALESCE(EXCLUDED.phone_model, user_details.phone_model),
			os_level    = COALESCE(EXCLUDED.os_level, user_details.os_level),
			app_version = COALESCE(EXCLUDED.app_version, user_details.app_version),
			last_seen   = EXCLUDED.last_seen,
			updated_at  = EXCLUDED.updated_at
		RETURNING `+userDetailsColumns,
		uuid.NewString(), req.Username, req.Email, req.Department, req.PhoneModel,
		req.OSLevel, req.AppVersion, lastSeen, now,
	)
	u, err := scanUserDetails(row)
	if err != nil {
		return nil, fmt.Errorf("upsert user details: %w", err)
	}
	return u, nil
}

// List returns every report, most recently seen first.
func (r *UserDetailsRepo) List(ctx context.Context) ([]*model.UserDetails, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+userDetailsColumns+`
		FROM user_details
		ORDER BY last_seen DESC, email`)
	if err != nil {
		return nil, fmt.Errorf("list user details: %w", err)
	}
	defer rows.Close()

	out := make([]*model.UserDetails, 0)
	for rows.Next() {
		u, scanErr := scanUserDetails(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user details: %w", err)
	}
	return out, nil
}

func scanUserDetails(s rowScanner) (*model.UserDetails, error) {
	var (
		u                                model.UserDetails
		dept, phone, osLevel, appVersion sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &dept, &phone, &osLevel, &appVersion,
		&u.LastSeen, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan user details: %w", err)
	}
	u.Department = nullStringPtr(dept)
	u.PhoneModel = nullStringPtr(phone)
	u.OSLevel = nullStringPtr(osLevel)
	u.AppVersion = nullStringPtr(appVersion)
	return &u, nil
}
