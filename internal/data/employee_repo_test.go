package data

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milestone2github/callyn-backend/internal/domain/model"
)

var (
	employeeCols   = []string{"id", "name", "email", "dept_id", "dept_name"}
	allocationCols = []string{"status", "allocated_at", "returned_at", "asset_id", "asset_name", "serial_number", "type_id", "type_name"}
)

func TestEmployeeRepo_FindByEmail_AssemblesEmployee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	allocated := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	returned := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(btrim(e.email, E'" + emailTrimChars + "')) = $1")).
		WithArgs("asha@example.com").
		WillReturnRows(sqlmock.NewRows(employeeCols).
			AddRow("e1", "Asha", "Asha@Example.com", "d1", "Sales"))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ea.employee_id = $1")).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows(allocationCols).
			AddRow("returned", returned, returned, "a0", "Old SIM", "SN000", "t1", "SIM Card").
			AddRow("allocated", allocated, nil, "a1", "Jio SIM", "SN123", "t1", "SIM Card").
			AddRow("allocated", nil, nil, nil, nil, nil, nil, nil))
	mock.ExpectCommit()

	repo := NewEmployeeRepo(db)
	emp, err := repo.FindByEmail(context.Background(), "  ASHA@example.com ")
	require.NoError(t, err)
	require.NotNil(t, emp)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "e1", emp.ID)
	assert.Equal(t, "Sales", emp.DepartmentName())
	require.Len(t, emp.Assets, 3)

	assert.Equal(t, model.AllocationReturned, emp.Assets[0].Status)
	require.NotNil(t, emp.Assets[1].Asset)
	assert.Equal(t, "SN123", emp.Assets[1].Asset.SerialNumber)
	assert.Equal(t, "SIM Card", emp.Assets[1].Asset.Type.Name)
	assert.Nil(t, emp.Assets[1].ReturnedAt)
	assert.Nil(t, emp.Assets[2].Asset, "dangling asset reference resolves to no asset")

	serial, ok := model.AllocatedSIMSerial(*emp)
	assert.True(t, ok)
	assert.Equal(t, "SN123", serial)
}

func TestEmployeeRepo_FindByEmail_NoDepartmentNoAssets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM employees").
		WithArgs("ravi@example.com").
		WillReturnRows(sqlmock.NewRows(employeeCols).AddRow("e2", "Ravi", "ravi@example.com", nil, nil))
	mock.ExpectQuery("FROM employee_assets").
		WithArgs("e2").
		WillReturnRows(sqlmock.NewRows(allocationCols))
	mock.ExpectCommit()

	emp, err := NewEmployeeRepo(db).FindByEmail(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.Nil(t, emp.Department)
	assert.Equal(t, model.NotAvailable, emp.DepartmentName())
	assert.Empty(t, emp.Assets)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_FindByEmail_Miss(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM employees").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(employeeCols))
	mock.ExpectCommit()

	emp, err := NewEmployeeRepo(db).FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, emp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_FindByEmail_BlankEmailSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	emp, err := NewEmployeeRepo(db).FindByEmail(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, emp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_FindByEmail_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectBegin()
	mock.ExpectQuery("FROM employees").WillReturnError(boom)
	mock.ExpectRollback()

	emp, err := NewEmployeeRepo(db).FindByEmail(context.Background(), "asha@example.com")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, emp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_FindByEmail_AllocationsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeCols).AddRow("e1", "Asha", "asha@example.com", nil, nil))
	mock.ExpectQuery("FROM employee_assets").WillReturnError(errors.New("timeout"))
	mock.ExpectRollback()

	emp, err := NewEmployeeRepo(db).FindByEmail(context.Background(), "asha@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query allocations")
	assert.Nil(t, emp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTrimChars_MatchesNormalizeEmail(t *testing.T) {
	set, err := strconv.Unquote(`"` + emailTrimChars + `"`)
	require.NoError(t, err)

	for _, r := range set {
		assert.True(t, unicode.IsSpace(r), "%U is not whitespace", r)
	}
	for r := rune(0); r <= 0x3000; r++ {
		if !unicode.IsSpace(r) {
			continue
		}
		assert.True(t, strings.ContainsRune(set, r), "%U missing from the SQL trim set", r)
		assert.Equal(t, "a@x.com", model.NormalizeEmail(string(r)+"A@x.com"+string(r)))
	}
}

func TestEmailTrimChars_MatchesRegistryIndex(t *testing.T) {
	migration, err := os.ReadFile("../migrate/migrations/0001_employee_registry.sql")
	require.NoError(t, err)
	assert.Contains(t, string(migration), "lower(btrim(email, E'"+emailTrimChars+"'))")
}
