// Package filter implements the strategy-selecting column filter executor:
// for a given constraint, column, and candidate row map, it picks a bounded
// (range scan) or indexed (per-row probe) algorithm and narrows the row map
// to the rows that also satisfy the constraint.
package filter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rowspace/colfilter/core/colfilter/column"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/rowmap"
	"github.com/rowspace/colfilter/internal/logging"
)

// Thresholds tunes the bounded-vs-indexed strategy choice.
type Thresholds struct {
	// IndexedMaxSize bounds how many rows the indexed algorithm will probe.
	IndexedMaxSize int
	// IndexedMaxDensity bounds size/range_size before the bounded scan wins
	// even under IndexedMaxSize.
	IndexedMaxDensity float64
}

// DefaultThresholds mirrors the values used across the rest of the pipeline.
var DefaultThresholds = Thresholds{IndexedMaxSize: 1024, IndexedMaxDensity: 0.5}

// Executor runs FilterColumn with a fixed set of Thresholds.
type Executor struct {
	thresholds Thresholds
}

// Option configures an Executor.
type Option func(*Executor)

// WithThresholds overrides the default strategy thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Executor) { e.thresholds = t }
}

// NewExecutor builds an Executor, defaulting to DefaultThresholds.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{thresholds: DefaultThresholds}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FilterColumn narrows r in place to the rows of r that also satisfy c
// against col. An empty r is a no-op.
func (e *Executor) FilterColumn(ctx context.Context, c constraint.Constraint, col *column.SimpleColumn, r *rowmap.RowMap) {
	if r.Empty() {
		return
	}

	ctx = logging.WithRequestID(ctx, uuid.New().String())

	first, last := r.First(), r.Last()
	rangeSize := last - first
	useIndexed := r.Size() < e.thresholds.IndexedMaxSize
	if useIndexed && rangeSize > 0 {
		useIndexed = float64(r.Size())/float64(rangeSize) < e.thresholds.IndexedMaxDensity
	}

	logging.DebugContext(ctx, "filter_column strategy chosen",
		"strategy", strategyName(useIndexed),
		"row_map_size", r.Size(),
		"range_size", rangeSize,
		"op", c.Op.String(),
	)

	if useIndexed {
		*r = *IndexedColumnFilter(c, col, r)
		return
	}

	result := BoundedColumnFilter(c, col, r)
	r.Intersect(result)
}

func strategyName(indexed bool) string {
	if indexed {
		return "indexed"
	}
	return "bounded"
}

func invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("colfilter: invariant violated: "+format, args...))
	}
}
