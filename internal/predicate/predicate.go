// Package predicate parses a single constraint expression, such as
// "age >= 18" or "name IS NULL", into a constraint.Constraint bound against a
// named column.
package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rowspace/colfilter/core/colfilter/constraint"
)

// exprGrammar is a single parsed "column op value" or "column IS [NOT] NULL"
// predicate.
//
//nolint:govet // participle grammar tags are not standard struct tags
type exprGrammar struct {
	Column string      `@Ident`
	Null   *nullClause `  @@`
	Cmp    *cmpClause  `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type nullClause struct {
	Not bool `"IS" @"NOT"? "NULL"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type cmpClause struct {
	Op    string `@("=" | "!=" | "<=" | ">=" | "<" | ">")`
	Value string `(@Float | @Int | @String)`
}

var predicateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `[-+]?[0-9]+\.[0-9]+`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `!=|<=|>=|=|<|>`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var predicateParser = participle.MustBuild[exprGrammar](
	participle.Lexer(predicateLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Kind distinguishes which scalar type a parsed literal should become. The
// caller (which knows the column's type from the schema) picks the Kind.
type Kind = constraint.Kind

// Parse parses s into a column name and an operator, with the literal value
// still as a string if the expression has one (empty for IS [NOT] NULL).
//
// ParseAs is the usual entry point; Parse is exposed for callers that want
// to inspect the column name before committing to a value type.
func Parse(s string) (column string, op constraint.Op, literal string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, "", fmt.Errorf("predicate: empty expression")
	}

	parsed, perr := predicateParser.ParseString("", s)
	if perr != nil {
		return "", 0, "", fmt.Errorf("predicate: invalid expression %q: %w", s, perr)
	}

	if parsed.Null != nil {
		if parsed.Null.Not {
			return parsed.Column, constraint.OpIsNotNull, "", nil
		}
		return parsed.Column, constraint.OpIsNull, "", nil
	}

	op, err = opFromString(parsed.Cmp.Op)
	if err != nil {
		return "", 0, "", err
	}
	return parsed.Column, op, parsed.Cmp.Value, nil
}

// ParseAs parses s and converts its literal to the requested Kind, producing
// a ready-to-use constraint.Constraint with ColumnIndex left at zero for the
// caller to fill in once the column is resolved against a schema.
func ParseAs(s string, kind Kind) (column string, c constraint.Constraint, err error) {
	col, op, literal, err := Parse(s)
	if err != nil {
		return "", constraint.Constraint{}, err
	}

	if op == constraint.OpIsNull || op == constraint.OpIsNotNull {
		return col, constraint.Constraint{Op: op}, nil
	}

	value, err := literalToValue(literal, kind)
	if err != nil {
		return "", constraint.Constraint{}, fmt.Errorf("predicate: %q: %w", s, err)
	}
	return col, constraint.Constraint{Op: op, Value: value}, nil
}

func opFromString(s string) (constraint.Op, error) {
	switch s {
	case "=":
		return constraint.OpEQ, nil
	case "!=":
		return constraint.OpNE, nil
	case "<":
		return constraint.OpLT, nil
	case "<=":
		return constraint.OpLE, nil
	case ">":
		return constraint.OpGT, nil
	case ">=":
		return constraint.OpGE, nil
	default:
		return 0, fmt.Errorf("predicate: unknown operator %q", s)
	}
}

func literalToValue(literal string, kind Kind) (constraint.Value, error) {
	switch kind {
	case constraint.KindInt64:
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return constraint.Value{}, fmt.Errorf("parsing %q as int64: %w", literal, err)
		}
		return constraint.Int64(v), nil
	case constraint.KindUint64:
		v, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return constraint.Value{}, fmt.Errorf("parsing %q as uint64: %w", literal, err)
		}
		return constraint.Uint64(v), nil
	case constraint.KindFloat64:
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return constraint.Value{}, fmt.Errorf("parsing %q as float64: %w", literal, err)
		}
		return constraint.Float64(v), nil
	default:
		return constraint.Value{}, fmt.Errorf("predicate: unsupported value kind %v", kind)
	}
}
