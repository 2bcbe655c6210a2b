// Package constraint defines the (column, operator, value) predicate that the
// filter executor applies to a single column, plus the narrower operator view
// that overlays are allowed to see.
package constraint

import "fmt"

// Op is a column comparison operator.
type Op int

const (
	OpEQ Op = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
	OpIsNull
	OpIsNotNull
)

func (o Op) String() string {
	switch o {
	case OpEQ:
		return "="
	case OpNE:
		return "!="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// OverlayOp is the operator view an overlay is allowed to reason about.
// Overlays never compare values; they only distinguish null-handling ops
// from everything else, which is routed to storage unchanged.
type OverlayOp int

const (
	OverlayOpIsNull OverlayOp = iota
	OverlayOpIsNotNull
	OverlayOpOther
)

// ToOverlayOp narrows a full Op down to what an overlay needs to know.
func ToOverlayOp(op Op) OverlayOp {
	switch op {
	case OpIsNull:
		return OverlayOpIsNull
	case OpIsNotNull:
		return OverlayOpIsNotNull
	default:
		return OverlayOpOther
	}
}

// Kind tags which field of Value is populated.
type Kind int

const (
	KindInt64 Kind = iota
	KindUint64
	KindFloat64
	KindNull
)

// Value is a small tagged union over the scalar types storage can hold.
type Value struct {
	Kind Kind
	I    int64
	U    uint64
	F    float64
}

func Int64(v int64) Value     { return Value{Kind: KindInt64, I: v} }
func Uint64(v uint64) Value   { return Value{Kind: KindUint64, U: v} }
func Float64(v float64) Value { return Value{Kind: KindFloat64, F: v} }
func Null() Value             { return Value{Kind: KindNull} }

// Constraint is a single (column, operator, value) predicate, as applied by
// the filter executor to one column at a time.
type Constraint struct {
	ColumnIndex int
	Op          Op
	Value       Value
}
