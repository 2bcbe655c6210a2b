// Package overlay implements the translation layer that sits between a
// column's table-row index space and its storage index space: range
// restriction, index-vector rewriting, and lifting a storage-space result
// back up to table space.
package overlay

import (
	"github.com/rowspace/colfilter/core/colfilter/bitvec"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/storage"
)

// Overlay narrows an outer (closer to the table) index space down to an
// inner (closer to storage) one, and can lift results back the other way.
// A column's overlay stack is ordered outermost to innermost; overlay 0 sees
// table-row indices, the last overlay's inner space is storage's index
// space.
type Overlay interface {
	// MapToStorageRange narrows an outer-space contiguous range to the
	// corresponding inner-space range.
	MapToStorageRange(outer storage.Range) storage.Range

	// MapToStorageIndexVector rewrites a set of outer-space indices, all of
	// which IsStorageLookupRequired has already said need a storage lookup,
	// into the corresponding inner-space indices, preserving order.
	MapToStorageIndexVector(outerIdx []int) []int

	// IsStorageLookupRequired reports, for each outer-space index, whether
	// deciding op at that row needs to reach storage at all, or whether the
	// overlay can answer on its own.
	IsStorageLookupRequired(op constraint.OverlayOp, outerIdx []int) *bitvec.BitVector

	// IndexSearch answers op directly for the outer-space indices that
	// IsStorageLookupRequired said do not need storage.
	IndexSearch(op constraint.OverlayOp, outerIdx []int) *bitvec.BitVector

	// MapToTableBitVector lifts an inner-space match bit vector back to this
	// overlay's outer-space size, applying any overlay-specific semantics
	// (e.g. clearing bits that correspond to rows the overlay hides).
	MapToTableBitVector(inner *bitvec.BitVector, op constraint.OverlayOp) *bitvec.BitVector
}
