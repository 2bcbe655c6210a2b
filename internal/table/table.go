// Package table is the minimal in-memory column model the filter executor
// and its eligibility bridge bind against. It stands in for the rest of the
// table store: schema, row counts, and the raw per-column buffers.
package table

import "github.com/rowspace/colfilter/core/colfilter/bitvec"

// ColumnType identifies how a Column's values are stored.
type ColumnType int

const (
	ColumnTypeInt64 ColumnType = iota
	ColumnTypeUint64
	ColumnTypeFloat64
	// ColumnTypeString columns are never eligible for the columnar pipeline;
	// they are always routed to the legacy filter.
	ColumnTypeString
	// ColumnTypeDummy marks synthetic id columns (e.g. a row's own ordinal)
	// that have no backing storage at all.
	ColumnTypeDummy
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeInt64:
		return "int64"
	case ColumnTypeUint64:
		return "uint64"
	case ColumnTypeFloat64:
		return "float64"
	case ColumnTypeString:
		return "string"
	case ColumnTypeDummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// Column is one table column: its type, a few storage-layout flags the
// bridge uses to decide eligibility, and its raw values.
type Column struct {
	Name       string
	Type       ColumnType
	IsSorted   bool
	IsDense    bool
	IsNullable bool

	// Int64Values, Uint64Values, and Float64Values hold only the values for
	// this column's type. When NullMask is set they are packed: they hold
	// one entry per non-null row, in row order, not one entry per table row.
	Int64Values   []int64
	Uint64Values  []uint64
	Float64Values []float64
	StringValues  []string

	// NullMask has a bit set for every non-null row, at table-row positions.
	// Nil means the column has no nulls even if IsNullable is set.
	NullMask *bitvec.BitVector

	n int
}

// New builds a Column of the given length with no values populated yet.
func New(name string, typ ColumnType, n int) *Column {
	return &Column{Name: name, Type: typ, n: n}
}

// Len returns the column's row count.
func (c *Column) Len() int { return c.n }
