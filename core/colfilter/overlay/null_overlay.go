package overlay

import (
	"github.com/rowspace/colfilter/core/colfilter/bitvec"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/storage"
)

// NullOverlay sits above storage that holds only the non-null values of a
// column, indexed by rank among the non-null rows. A table-row i maps to
// storage position prefix[i], the count of non-null rows strictly before i.
type NullOverlay struct {
	notNull *bitvec.BitVector
	prefix  []int // len == notNull.Size()+1
}

// NewNullOverlay builds a NullOverlay from a table-space bit vector with a
// bit set at every non-null row.
func NewNullOverlay(notNull *bitvec.BitVector) *NullOverlay {
	n := notNull.Size()
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i]
		if notNull.IsSet(i) {
			prefix[i+1]++
		}
	}
	return &NullOverlay{notNull: notNull, prefix: prefix}
}

func (o *NullOverlay) rank(i int) int { return o.prefix[i] }

func (o *NullOverlay) MapToStorageRange(outer storage.Range) storage.Range {
	return storage.Range{Begin: o.rank(outer.Begin), End: o.rank(outer.End)}
}

func (o *NullOverlay) MapToStorageIndexVector(outerIdx []int) []int {
	inner := make([]int, len(outerIdx))
	for i, idx := range outerIdx {
		inner[i] = o.rank(idx)
	}
	return inner
}

// IsStorageLookupRequired: IS NULL/IS NOT NULL are always decidable from the
// null mask alone. Any other op needs storage for non-null rows only; null
// rows never match a value predicate and are decided here.
func (o *NullOverlay) IsStorageLookupRequired(op constraint.OverlayOp, outerIdx []int) *bitvec.BitVector {
	bv := bitvec.New(len(outerIdx))
	if op == constraint.OverlayOpIsNull || op == constraint.OverlayOpIsNotNull {
		return bv
	}
	for i, idx := range outerIdx {
		if o.notNull.IsSet(idx) {
			bv.Set(i)
		}
	}
	return bv
}

func (o *NullOverlay) IndexSearch(op constraint.OverlayOp, outerIdx []int) *bitvec.BitVector {
	bv := bitvec.New(len(outerIdx))
	for i, idx := range outerIdx {
		isNull := !o.notNull.IsSet(idx)
		switch op {
		case constraint.OverlayOpIsNull:
			if isNull {
				bv.Set(i)
			}
		case constraint.OverlayOpIsNotNull:
			if !isNull {
				bv.Set(i)
			}
		default:
			// Reached only for null rows under a value predicate: never matches.
		}
	}
	return bv
}

func (o *NullOverlay) MapToTableBitVector(inner *bitvec.BitVector, op constraint.OverlayOp) *bitvec.BitVector {
	n := o.notNull.Size()
	out := bitvec.New(n)
	switch op {
	case constraint.OverlayOpIsNull:
		for i := 0; i < n; i++ {
			if !o.notNull.IsSet(i) {
				out.Set(i)
			}
		}
	case constraint.OverlayOpIsNotNull:
		for i := 0; i < n; i++ {
			if o.notNull.IsSet(i) {
				out.Set(i)
			}
		}
	default:
		for i := 0; i < n; i++ {
			if !o.notNull.IsSet(i) {
				continue
			}
			pos := o.prefix[i]
			if pos < inner.Size() && inner.IsSet(pos) {
				out.Set(i)
			}
		}
	}
	return out
}
