// Package bridge decides whether a column is eligible for the new columnar
// filter pipeline, binds eligible columns into a column.SimpleColumn, and
// routes ineligible columns to a legacy row-at-a-time filter.
package bridge

import (
	"github.com/rowspace/colfilter/core/colfilter/column"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/overlay"
	"github.com/rowspace/colfilter/core/colfilter/storage"
	"github.com/rowspace/colfilter/internal/table"
)

// Reason explains why a column was not eligible for the new pipeline.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonStringColumn
	ReasonDummyColumn
	ReasonTypeMismatch
	ReasonRowSelectorPresent
	ReasonSortedColumn
	ReasonDenseColumn
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "eligible"
	case ReasonStringColumn:
		return "string column"
	case ReasonDummyColumn:
		return "dummy (synthetic id) column"
	case ReasonTypeMismatch:
		return "constraint value type does not match column type"
	case ReasonRowSelectorPresent:
		return "query carries a row selector the new pipeline does not support"
	case ReasonSortedColumn:
		return "sorted column"
	case ReasonDenseColumn:
		return "dense column"
	default:
		return "unknown"
	}
}

// Decide reports whether col is eligible for the new columnar pipeline given
// constraint c and whether the surrounding query carries a row selector.
// Sorted and dense columns are always routed to the legacy filter: the new
// pipeline has no binary-search or run-length storage to exploit either
// layout, so binding them here would throw that information away.
func Decide(col *table.Column, c constraint.Constraint, hasRowSelector bool) (bool, Reason) {
	if hasRowSelector {
		return false, ReasonRowSelectorPresent
	}
	switch col.Type {
	case table.ColumnTypeString:
		return false, ReasonStringColumn
	case table.ColumnTypeDummy:
		return false, ReasonDummyColumn
	}
	if col.IsSorted {
		return false, ReasonSortedColumn
	}
	if col.IsDense {
		return false, ReasonDenseColumn
	}
	if c.Op == constraint.OpIsNull || c.Op == constraint.OpIsNotNull {
		return true, ReasonNone
	}
	if !typeMatches(col.Type, c.Value) {
		return false, ReasonTypeMismatch
	}
	return true, ReasonNone
}

func typeMatches(t table.ColumnType, v constraint.Value) bool {
	switch t {
	case table.ColumnTypeInt64:
		return v.Kind == constraint.KindInt64
	case table.ColumnTypeUint64:
		return v.Kind == constraint.KindUint64
	case table.ColumnTypeFloat64:
		return v.Kind == constraint.KindFloat64
	default:
		return false
	}
}

// Bind wraps an eligible column's raw storage and null mask into a
// column.SimpleColumn. Callers must check Decide first.
func Bind(col *table.Column) *column.SimpleColumn {
	var s storage.Storage
	switch col.Type {
	case table.ColumnTypeInt64:
		s = storage.NewInt64(col.Int64Values)
	case table.ColumnTypeUint64:
		s = storage.NewUint64(col.Uint64Values)
	case table.ColumnTypeFloat64:
		s = storage.NewFloat64(col.Float64Values)
	default:
		panic("bridge: Bind called on an ineligible column type")
	}

	var overlays []overlay.Overlay
	if col.IsNullable && col.NullMask != nil {
		overlays = append(overlays, overlay.NewNullOverlay(col.NullMask))
	}
	return column.New(s, overlays...)
}
