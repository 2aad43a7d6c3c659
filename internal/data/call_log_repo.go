package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/milestone2github/callyn-backend/internal/data/database"
	"github.com/milestone2github/callyn-backend/internal/data/pgxutil"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// Advisory lock namespace for retention operations.
// Major key 2000 is reserved for callyn retention.
const (
	advisoryLockRetentionMajor    = 2000
	advisoryLockRetentionCallLogs = 1
)

var callLogColumns = []string{
	"id", "caller_name", "family_head", "rship_manager_name", "type", "timestamp",
	"duration", "notes", "sim_slot", "is_work", "uploaded_by", "uploaded_at",
}

// CallLogRepo provides database operations for call logs.
type CallLogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var (
	_ ports.CallLogRepository = (*CallLogRepo)(nil)
	_ ports.CallLogPurger     = (*CallLogRepo)(nil)
)

// NewCallLogRepo creates a new CallLogRepo with real time provider.
func NewCallLogRepo(db *sql.DB) *CallLogRepo {
	return &CallLogRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewCallLogRepoWithTimeProvider creates a new CallLogRepo with a custom time provider (useful for tests).
func NewCallLogRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CallLogRepo {
	return &CallLogRepo{DB: db, timeProvider: timeProviderOrReal(tp)}
}

// Create validates and inserts a call log.
func (r *CallLogRepo) Create(ctx context.Context, req *model.CreateCallLogRequest) (*model.CallLog, error) {
	if req == nil {
		return nil, errors.New("create call log request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	out := &model.CallLog{
		ID:               uuid.NewString(),
		CallerName:       req.CallerName,
		FamilyHead:       req.FamilyHead,
		RshipManagerName: req.RshipManagerName,
		Type:             model.CallType(req.Type),
		Timestamp:        req.CallTime(),
		DurationSeconds:  req.Duration,
		Notes:            strings.TrimSpace(req.Notes),
		SimSlot:          req.SimSlot,
		IsWork:           req.Work(),
		UploadedBy:       strings.TrimSpace(req.UploadedBy),
		UploadedAt:       r.timeProvider.Now().UTC(),
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO call_logs (
			id, caller_name, family_head, rship_manager_name, type, timestamp,
			duration, notes, sim_slot, is_work, uploaded_by, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		out.ID, out.CallerName, out.FamilyHead, out.RshipManagerName, string(out.Type), out.Timestamp,
		out.DurationSeconds, out.Notes, out.SimSlot, out.IsWork, out.UploadedBy, out.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert call log: %w", err)
	}
	return out, nil
}

// List returns call logs matching opts, newest call first.
func (r *CallLogRepo) List(ctx context.Context, opts model.CallLogListOptions) ([]*model.CallLog, error) {
	query, args := database.BuildListQuery(buildCallLogQueryOptions(opts))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer rows.Close()

	out := make([]*model.CallLog, 0)
	for rows.Next() {
		var (
			cl      model.CallLog
			callTyp string
			simSlot sql.NullString
		)
		if err := rows.Scan(&cl.ID, &cl.CallerName, &cl.FamilyHead, &cl.RshipManagerName, &callTyp,
			&cl.Timestamp, &cl.DurationSeconds, &cl.Notes, &simSlot, &cl.IsWork,
			&cl.UploadedBy, &cl.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		cl.Type = model.CallType(callTyp)
		cl.SimSlot = nullStringPtr(simSlot)
		out = append(out, &cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate call logs: %w", err)
	}
	return out, nil
}

// Count returns how many call logs match opts' filters.
func (r *CallLogRepo) Count(ctx context.Context, opts model.CallLogListOptions) (int, error) {
	qopts := buildCallLogQueryOptions(opts)
	qopts.CountOnly = true
	query, args := database.BuildListQuery(qopts)

	var n int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count call logs: %w", err)
	}
	return n, nil
}

func buildCallLogQueryOptions(opts model.CallLogListOptions) *database.ListQueryOptions {
	qopts := []database.ListQueryOption{
		database.WithColumns(callLogColumns...),
		database.WithOrderBy("timestamp", "DESC"),
		database.WithOrderBy("id", "DESC"),
		database.WithLimit(opts.PageSize()),
	}
	if opts.Offset > 0 {
		qopts = append(qopts, database.WithOffset(opts.Offset))
	}
	if v := trimmedPtr(opts.RshipManagerName); v != "" {
		qopts = append(qopts, database.WithCondition(database.ContainsFold("rship_manager_name", v)))
	}
	if v := trimmedPtr(opts.UploadedBy); v != "" {
		qopts = append(qopts, database.WithCondition(database.ContainsFold("uploaded_by", v)))
	}
	if opts.Date != nil {
		start, end := model.DayBounds(*opts.Date)
		qopts = append(qopts, database.WithCondition(
			database.WhereRawCond(`"timestamp" >= $1 AND "timestamp" < $2`, start, end)))
	}
	return database.NewListQueryOptions("call_logs", qopts...)
}

func trimmedPtr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// DeleteUploadedBefore deletes up to batchSize call logs uploaded before cutoff.
// Uses an advisory lock so concurrent retention instances do not contend; a lost
// lock race deletes nothing.
func (r *CallLogRepo) DeleteUploadedBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	if batchSize <= 0 {
		return 0, errors.New("batch size must be greater than zero")
	}

	var rowsAffected int64
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			var locked bool
			if err := tx.QueryRowContext(ctx, "SELECT pg_try_advisory_xact_lock($1, $2)",
				advisoryLockRetentionMajor, advisoryLockRetentionCallLogs).Scan(&locked); err != nil {
				return fmt.Errorf("acquire advisory lock: %w", err)
			}
			if !locked {
				return nil
			}

			res, err := tx.ExecContext(ctx, `
				DELETE FROM call_logs
				WHERE id IN (
					SELECT id FROM call_logs
					WHERE uploaded_at < $1
					ORDER BY uploaded_at
					LIMIT $2
				)`, cutoff.UTC(), batchSize)
			if err != nil {
				return fmt.Errorf("delete old call logs: %w", err)
			}

			ra, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			rowsAffected = ra
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}
