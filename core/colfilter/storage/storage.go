// Package storage implements the typed, flat per-column value vectors that
// sit at the bottom of the overlay stack and do the actual value comparisons.
package storage

import (
	"fmt"

	"github.com/rowspace/colfilter/core/colfilter/bitvec"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
)

// Range is a half-open [Begin, End) span of storage positions.
type Range struct {
	Begin, End int
}

// Storage is the minimal surface the filter executor needs from a column's
// backing value vector. Numeric[T] implements it for each supported scalar
// type.
type Storage interface {
	Len() int
	LinearSearch(op constraint.Op, value constraint.Value, rng Range) *bitvec.BitVector
	IndexSearch(op constraint.Op, value constraint.Value, indices []int) *bitvec.BitVector
}

// Numeric is a flat, typed vector of storage-space values.
type Numeric[T int64 | uint64 | float64] struct {
	values  []T
	extract func(constraint.Value) T
}

// NewInt64 wraps an int64 slice as storage. The slice is not copied.
func NewInt64(values []int64) *Numeric[int64] {
	return &Numeric[int64]{values: values, extract: func(v constraint.Value) int64 { return v.I }}
}

// NewUint64 wraps a uint64 slice as storage. The slice is not copied.
func NewUint64(values []uint64) *Numeric[uint64] {
	return &Numeric[uint64]{values: values, extract: func(v constraint.Value) uint64 { return v.U }}
}

// NewFloat64 wraps a float64 slice as storage. The slice is not copied.
func NewFloat64(values []float64) *Numeric[float64] {
	return &Numeric[float64]{values: values, extract: func(v constraint.Value) float64 { return v.F }}
}

// Len returns the number of storage-space positions.
func (s *Numeric[T]) Len() int { return len(s.values) }

// LinearSearch scans storage positions [rng.Begin, rng.End) and returns a bit
// vector sized to the whole storage, with matching positions set.
func (s *Numeric[T]) LinearSearch(op constraint.Op, value constraint.Value, rng Range) *bitvec.BitVector {
	begin, end := rng.Begin, rng.End
	if begin < 0 {
		begin = 0
	}
	if end > len(s.values) {
		end = len(s.values)
	}
	bv := bitvec.New(len(s.values))
	if begin >= end {
		return bv
	}
	for i := begin; i < end; i++ {
		if s.eval(op, s.values[i], value) {
			bv.Set(i)
		}
	}
	return bv
}

// IndexSearch probes storage at each given position and returns a bit vector
// sized to len(indices); bit i is set iff storage[indices[i]] matches.
func (s *Numeric[T]) IndexSearch(op constraint.Op, value constraint.Value, indices []int) *bitvec.BitVector {
	bv := bitvec.New(len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(s.values) {
			panic(fmt.Sprintf("storage: index %d out of range [0,%d)", idx, len(s.values)))
		}
		if s.eval(op, s.values[idx], value) {
			bv.Set(i)
		}
	}
	return bv
}

// eval evaluates a single comparison. Storage never holds nulls, so
// IS NULL/IS NOT NULL are answered without looking at the element or value;
// overlays handle the rows where nullness actually matters.
func (s *Numeric[T]) eval(op constraint.Op, elem T, v constraint.Value) bool {
	switch op {
	case constraint.OpIsNull:
		return false
	case constraint.OpIsNotNull:
		return true
	}
	rhs := s.extract(v)
	switch op {
	case constraint.OpEQ:
		return elem == rhs
	case constraint.OpNE:
		return elem != rhs
	case constraint.OpLT:
		return elem < rhs
	case constraint.OpLE:
		return elem <= rhs
	case constraint.OpGT:
		return elem > rhs
	case constraint.OpGE:
		return elem >= rhs
	default:
		panic(fmt.Sprintf("storage: unknown op %v", op))
	}
}
