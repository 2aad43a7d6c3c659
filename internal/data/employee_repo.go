package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/milestone2github/callyn-backend/internal/data/pgxutil"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/ports"
)

// emailTrimChars is the escape-string body listing every rune unicode.IsSpace accepts,
// so the lookup trims what model.NormalizeEmail trims. The registry index in
// 0001_employee_registry.sql repeats it verbatim.
const emailTrimChars = `\t\n\x0b\f\r \u0085\u00a0\u1680\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a\u2028\u2029\u202f\u205f\u3000`

const employeeByEmailQuery = `
	SELECT e.id, e.name, e.email, d.id, d.name
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	WHERE lower(btrim(e.email, E'` + emailTrimChars + `')) = $1
	ORDER BY e.id
	LIMIT 1`

const employeeAllocationsQuery = `
	SELECT ea.status, ea.allocated_at, ea.returned_at,
	       a.id, a.name, a.serial_number, t.id, t.name
	FROM employee_assets ea
	LEFT JOIN assets a ON a.id = ea.asset_id
	LEFT JOIN asset_types t ON t.id = a.asset_type_id
	WHERE ea.employee_id = $1
	ORDER BY ea.position`

// EmployeeRepo reads the employee registry.
type EmployeeRepo struct {
	DB *sql.DB
}

var _ ports.EmployeeDirectory = (*EmployeeRepo)(nil)

// NewEmployeeRepo creates a new EmployeeRepo.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{DB: db}
}

// FindByEmail returns the employee whose normalized email equals the normalized argument,
// with department and allocation history populated. A miss returns (nil, nil).
// Both reads share one read-only transaction so the allocations match the employee row.
func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	normalized := model.NormalizeEmail(email)
	if normalized == "" {
		return nil, nil
	}

	var out *model.Employee
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Opts: pgxutil.ReadOnly,
		Fn: func(tx *sql.Tx) error {
			emp, err := scanEmployee(tx.QueryRowContext(ctx, employeeByEmailQuery, normalized))
			if err != nil || emp == nil {
				return err
			}
			if emp.Assets, err = r.loadAllocations(ctx, tx, emp.ID); err != nil {
				return err
			}
			out = emp
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("find employee by email: %w", err)
	}
	return out, nil
}

func scanEmployee(row *sql.Row) (*model.Employee, error) {
	var (
		emp            model.Employee
		deptID, deptNm sql.NullString
	)
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Email, &deptID, &deptNm); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	if deptID.Valid {
		emp.Department = &model.Department{ID: deptID.String, Name: deptNm.String}
	}
	return &emp, nil
}

func (r *EmployeeRepo) loadAllocations(ctx context.Context, tx *sql.Tx, employeeID string) ([]model.Allocation, error) {
	rows, err := tx.QueryContext(ctx, employeeAllocationsQuery, employeeID)
	if err != nil {
		return nil, fmt.Errorf("query allocations: %w", err)
	}
	defer rows.Close()

	var out []model.Allocation
	for rows.Next() {
		var (
			status                  string
			allocatedAt, returnedAt sql.NullTime
			assetID, assetName      sql.NullString
			serial, typeID, typeNm  sql.NullString
		)
		if err := rows.Scan(&status, &allocatedAt, &returnedAt,
			&assetID, &assetName, &serial, &typeID, &typeNm); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}

		alloc := model.Allocation{
			Status:      model.AllocationStatus(status),
			AllocatedAt: nullTimePtr(allocatedAt),
			ReturnedAt:  nullTimePtr(returnedAt),
		}
		if assetID.Valid {
			alloc.Asset = &model.Asset{ID: assetID.String, Name: assetName.String, SerialNumber: serial.String}
			if typeID.Valid {
				alloc.Asset.Type = &model.AssetType{ID: typeID.String, Name: typeNm.String}
			}
		}
		out = append(out, alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocations: %w", err)
	}
	return out, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
