package filter

import (
	"github.com/rowspace/colfilter/core/colfilter/column"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/rowmap"
	"github.com/rowspace/colfilter/core/colfilter/storage"
)

// BoundedColumnFilter evaluates c against every row in [r.First(), r.Last()],
// regardless of which of those rows are actually in r, and returns the
// table-space match set as a fresh RowMap. The caller is expected to
// intersect the result with r.
func BoundedColumnFilter(c constraint.Constraint, col *column.SimpleColumn, r *rowmap.RowMap) *rowmap.RowMap {
	rng := storage.Range{Begin: r.First(), End: r.Last() + 1}
	for _, ov := range col.Overlays {
		rng = ov.MapToStorageRange(rng)
	}

	bv := col.Storage.LinearSearch(c.Op, c.Value, rng)

	overlayOp := constraint.ToOverlayOp(c.Op)
	for i := len(col.Overlays) - 1; i >= 0; i-- {
		bv = col.Overlays[i].MapToTableBitVector(bv, overlayOp)
	}

	return rowmap.NewBitmap(bv.Size(), bv)
}
