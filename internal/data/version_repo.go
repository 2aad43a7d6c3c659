package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// VersionRepo reads published app releases.
type VersionRepo struct {
	DB *sql.DB
}

var _ ports.VersionRepository = (*VersionRepo)(nil)

// NewVersionRepo creates a new VersionRepo.
func NewVersionRepo(db *sql.DB) *VersionRepo {
	return &VersionRepo{DB: db}
}

// Latest returns the most recently published release, or (nil, nil) when there is none.
func (r *VersionRepo) Latest(ctx context.Context) (*model.AppVersion, error) {
	var (
		v   model.AppVersion
		typ string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, version, type, changelog, download_url, created_at
		FROM app_versions
		ORDER BY created_at DESC, id DESC
		LIMIT 1`).Scan(&v.ID, &v.Version, &typ, &v.Changelog, &v.DownloadURL, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest app version: %w", err)
	}
	v.Type = model.UpdateType(typ)
	return &v, nil
}
