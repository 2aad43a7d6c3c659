package database

import (
	"reflect"
	"testing"
	"time"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("call_logs"))

	expected := `SELECT * FROM "call_logs"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_Nil(t *testing.T) {
	query, args := BuildListQuery(nil)
	if query != "" || args != nil {
		t.Errorf("Expected empty result, got %q %v", query, args)
	}
}

func TestBuildListQuery_ColumnsAreQuoted(t *testing.T) {
	opts := NewListQueryOptions("call_logs",
		WithColumns("id", "call_logs.caller_name", `bad"; DROP TABLE x; --`),
	)
	query, _ := BuildListQuery(opts)

	expected := `SELECT "id", "call_logs"."caller_name", "bad""; DROP TABLE x; --" FROM "call_logs"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("call_logs",
		WithCountOnly(),
		WithCondition(WhereCond("is_work", Equal, true)),
		WithOrderBy("timestamp", "DESC"),
		WithLimit(10),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT COUNT(*) FROM "call_logs" WHERE "is_work" = $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if !reflect.DeepEqual(args, []any{true}) {
		t.Errorf("Expected [true], got %v", args)
	}
}

func TestBuildListQuery_CallLogFilters(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	opts := NewListQueryOptions("call_logs",
		WithColumns("id"),
		WithCondition(ContainsFold("rship_manager_name", "50%_off")),
		WithCondition(WhereRawCond("timestamp >= $1 AND timestamp < $2", start, end)),
		WithCondition(ContainsFold("uploaded_by", "Asha")),
		WithOrderBy("timestamp", "desc"),
		WithOrderBy("id", "sideways"),
		WithLimit(50),
		WithOffset(100),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "id" FROM "call_logs" WHERE "rship_manager_name" ILIKE $1 AND ` +
		`(timestamp >= $2 AND timestamp < $3) AND "uploaded_by" ILIKE $4 ` +
		`ORDER BY "timestamp" DESC, "id" LIMIT $5 OFFSET $6`
	if query != expected {
		t.Errorf("Expected query\n%q\ngot\n%q", expected, query)
	}

	wantArgs := []any{`%50\%\_off%`, start, end, "%Asha%", 50, 100}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("Expected args %v, got %v", wantArgs, args)
	}
}

func TestWhereRawCond_RepeatedAndOutOfRangePlaceholders(t *testing.T) {
	opts := NewListQueryOptions("t",
		WithCondition(WhereCond("a", Equal, 1)),
		WithCondition(WhereRawCond("b = $1 OR c = $1 OR d = $3", "x")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "t" WHERE "a" = $1 AND (b = $2 OR c = $2 OR d = $3)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if !reflect.DeepEqual(args, []any{1, "x"}) {
		t.Errorf("Expected args [1 x], got %v", args)
	}
}

func TestWithLimitOffset_NegativeIgnored(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("t", WithLimit(-5), WithOffset(-1)))
	if query != `SELECT * FROM "t"` || len(args) != 0 {
		t.Errorf("negative limit/offset should be ignored, got %q %v", query, args)
	}

	query, args = BuildListQuery(NewListQueryOptions("t", WithLimit(0)))
	if query != `SELECT * FROM "t" LIMIT $1` || !reflect.DeepEqual(args, []any{0}) {
		t.Errorf("zero limit should be honoured, got %q %v", query, args)
	}
}

func TestWhereCond_CustomPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for Custom in WhereCond")
		}
	}()
	_ = WhereCond("x", Custom, 1)
}
