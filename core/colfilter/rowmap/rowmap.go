// Package rowmap implements the row-set representation the filter executor
// narrows on every call: either a contiguous range of table rows, or an
// explicit bitmap over all table rows.
package rowmap

import (
	"fmt"

	"github.com/rowspace/colfilter/core/colfilter/bitvec"
)

// RowMap is a set of table-row indices in [0, N), kept either as a
// contiguous range or as a bitmap, whichever the operation that produced it
// found natural.
type RowMap struct {
	n       int
	isRange bool
	begin   int
	end     int
	bits    *bitvec.BitVector
}

// NewRange builds a RowMap over the contiguous range [begin, end) of a table
// with n rows.
func NewRange(n, begin, end int) *RowMap {
	checkBounds(n, begin, end)
	return &RowMap{n: n, isRange: true, begin: begin, end: end}
}

// NewBitmap builds a RowMap from an explicit table-space bit vector. bits
// must have size n.
func NewBitmap(n int, bits *bitvec.BitVector) *RowMap {
	if bits.Size() != n {
		panic(fmt.Sprintf("rowmap: bitmap size %d does not match table size %d", bits.Size(), n))
	}
	return &RowMap{n: n, isRange: false, bits: bits}
}

// NewFromSortedIndices builds a RowMap from a strictly increasing slice of
// table-row indices, using a range representation when the indices happen to
// be contiguous and a bitmap otherwise.
func NewFromSortedIndices(n int, idx []int) *RowMap {
	if len(idx) == 0 {
		return NewRange(n, 0, 0)
	}
	if idx[len(idx)-1]-idx[0]+1 == len(idx) {
		return NewRange(n, idx[0], idx[len(idx)-1]+1)
	}
	bv := bitvec.New(n)
	for _, i := range idx {
		bv.Set(i)
	}
	return NewBitmap(n, bv)
}

func checkBounds(n, begin, end int) {
	if begin < 0 || end > n || begin > end {
		panic(fmt.Sprintf("rowmap: invalid range [%d,%d) for table of size %d", begin, end, n))
	}
}

// N returns the table row count this RowMap was built against.
func (r *RowMap) N() int { return r.n }

// Size returns the number of rows currently in the map.
func (r *RowMap) Size() int {
	if r.isRange {
		return r.end - r.begin
	}
	return r.bits.CountSetBits()
}

// Empty reports whether the map has no rows.
func (r *RowMap) Empty() bool { return r.Size() == 0 }

// Get returns the i-th row (0-indexed, ascending) in the map.
func (r *RowMap) Get(i int) int {
	if i < 0 || i >= r.Size() {
		panic(fmt.Sprintf("rowmap: index %d out of range [0,%d)", i, r.Size()))
	}
	if r.isRange {
		return r.begin + i
	}
	pos := r.bits.NthSetBit(i)
	if pos < 0 {
		panic("rowmap: bitmap inconsistent with its own set-bit count")
	}
	return pos
}

// First returns the smallest row in the map. Panics if the map is empty.
func (r *RowMap) First() int { return r.Get(0) }

// Last returns the largest row in the map. Panics if the map is empty.
func (r *RowMap) Last() int { return r.Get(r.Size() - 1) }

// IterateRows calls yield(row) for every row in ascending order, stopping
// early if yield returns false.
func (r *RowMap) IterateRows(yield func(row int) bool) {
	if r.isRange {
		for row := r.begin; row < r.end; row++ {
			if !yield(row) {
				return
			}
		}
		return
	}
	r.bits.IterateSetBits(yield)
}

// Intersect narrows r in place to the rows it shares with other. Both must
// be over tables of the same size. A range intersected with a range stays a
// range; any other combination produces a bitmap.
func (r *RowMap) Intersect(other *RowMap) {
	if r.n != other.n {
		panic("rowmap: size mismatch in Intersect")
	}
	switch {
	case r.isRange && other.isRange:
		begin, end := max(r.begin, other.begin), min(r.end, other.end)
		if begin > end {
			begin = end
		}
		r.begin, r.end = begin, end

	case r.isRange && !other.isRange:
		bv := bitvec.New(r.n)
		for i := r.begin; i < r.end; i++ {
			if other.bits.IsSet(i) {
				bv.Set(i)
			}
		}
		r.isRange = false
		r.bits = bv

	case !r.isRange && other.isRange:
		r.bits.ClearOutside(other.begin, other.end)

	default:
		r.bits.And(other.bits)
	}
}
