package predicate

import (
	"testing"

	"github.com/rowspace/colfilter/core/colfilter/constraint"
)

func TestParseComparison(t *testing.T) {
	col, op, literal, err := Parse("age >= 18")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col != "age" || op != constraint.OpGE || literal != "18" {
		t.Fatalf("Parse() = (%q, %v, %q), want (age, >=, 18)", col, op, literal)
	}
}

func TestParseNegativeFloat(t *testing.T) {
	col, op, literal, err := Parse("score > -3.5")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col != "score" || op != constraint.OpGT || literal != "-3.5" {
		t.Fatalf("Parse() = (%q, %v, %q), want (score, >, -3.5)", col, op, literal)
	}
}

func TestParseIsNull(t *testing.T) {
	col, op, _, err := Parse("name IS NULL")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col != "name" || op != constraint.OpIsNull {
		t.Fatalf("Parse() = (%q, %v), want (name, IS NULL)", col, op)
	}
}

func TestParseIsNotNull(t *testing.T) {
	col, op, _, err := Parse("name IS NOT NULL")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if col != "name" || op != constraint.OpIsNotNull {
		t.Fatalf("Parse() = (%q, %v), want (name, IS NOT NULL)", col, op)
	}
}

func TestParseEmptyErrors(t *testing.T) {
	if _, _, _, err := Parse("   "); err == nil {
		t.Fatal("expected error for empty expression")
	}
}

func TestParseAsInt64(t *testing.T) {
	col, c, err := ParseAs("age >= 18", constraint.KindInt64)
	if err != nil {
		t.Fatalf("ParseAs() error = %v", err)
	}
	if col != "age" || c.Op != constraint.OpGE || c.Value.I != 18 {
		t.Fatalf("ParseAs() = (%q, %+v), want age/>=18", col, c)
	}
}

func TestParseAsFloat64(t *testing.T) {
	_, c, err := ParseAs("price < 19.99", constraint.KindFloat64)
	if err != nil {
		t.Fatalf("ParseAs() error = %v", err)
	}
	if c.Op != constraint.OpLT || c.Value.F != 19.99 {
		t.Fatalf("ParseAs() = %+v, want </19.99", c)
	}
}

func TestParseAsNullOpIgnoresKind(t *testing.T) {
	_, c, err := ParseAs("name IS NULL", constraint.KindInt64)
	if err != nil {
		t.Fatalf("ParseAs() error = %v", err)
	}
	if c.Op != constraint.OpIsNull {
		t.Fatalf("ParseAs() op = %v, want IS NULL", c.Op)
	}
}
