package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialect(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", "barcode", " ", "recipient_name")
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "barcode LIKE ? OR recipient_name LIKE ?" {
		t.Fatalf("unexpected sqlite condition: %s", condition)
	}

	condition, _ = buildLikeConditionByDialect("postgres", "name")
	if condition != "name ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%0100%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%0100%" {
			t.Fatalf("args[%d] unexpected: %v", idx, arg)
		}
	}
}

func TestJSONArrayContainsExpr(t *testing.T) {
	if got := jsonArrayContainsExpr("sqlite", "assigned_areas"); !strings.Contains(got, "json_each(assigned_areas)") {
		t.Fatalf("sqlite expr should use json_each, got %s", got)
	}
	if got := jsonArrayContainsExpr("postgres", "assigned_areas"); got != "jsonb_exists(assigned_areas::jsonb, ?)" {
		t.Fatalf("unexpected postgres expr: %s", got)
	}
}

func TestDayExpr(t *testing.T) {
	if got := dayExpr("sqlite", "created_at"); got != "CAST(date(created_at) AS TEXT)" {
		t.Fatalf("unexpected sqlite day expr: %s", got)
	}
	if got := dayExpr("postgres", "created_at"); got != "to_char(created_at, 'YYYY-MM-DD')" {
		t.Fatalf("unexpected postgres day expr: %s", got)
	}
}
