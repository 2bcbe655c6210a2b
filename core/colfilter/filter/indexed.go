package filter

import (
	"sort"

	"github.com/rowspace/colfilter/core/colfilter/column"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/rowmap"
)

// indexPair tracks, for each row still under consideration, its current
// index (rewritten as it passes through each overlay) alongside its stable
// table-row index.
type indexPair struct {
	current []int
	global  []int
}

// IndexedColumnFilter walks r's rows one at a time through the overlay
// stack, letting each overlay decide as many rows as it can without
// touching storage, and probes storage only for what is left. It returns the
// table-space match set as a fresh RowMap.
func IndexedColumnFilter(c constraint.Constraint, col *column.SimpleColumn, r *rowmap.RowMap) *rowmap.RowMap {
	n := r.N()

	pair := indexPair{
		current: make([]int, 0, r.Size()),
		global:  make([]int, 0, r.Size()),
	}
	r.IterateRows(func(row int) bool {
		pair.current = append(pair.current, row)
		pair.global = append(pair.global, row)
		return true
	})

	overlayOp := constraint.ToOverlayOp(c.Op)
	valid := make([]int, 0, len(pair.global))
	removed := 0

	for _, ov := range col.Overlays {
		if len(pair.current) == 0 {
			break
		}

		required := ov.IsStorageLookupRequired(overlayOp, pair.current)
		if required.CountSetBits() == len(pair.current) {
			pair.current = ov.MapToStorageIndexVector(pair.current)
			continue
		}

		var lookupCur, lookupGlob, skipCur, skipGlob []int
		for i, cur := range pair.current {
			if required.IsSet(i) {
				lookupCur = append(lookupCur, cur)
				lookupGlob = append(lookupGlob, pair.global[i])
			} else {
				skipCur = append(skipCur, cur)
				skipGlob = append(skipGlob, pair.global[i])
			}
		}

		if len(skipCur) > 0 {
			matched := ov.IndexSearch(overlayOp, skipCur)
			for i := range skipCur {
				if matched.IsSet(i) {
					valid = append(valid, skipGlob[i])
				} else {
					removed++
				}
			}
		}

		pair.current = ov.MapToStorageIndexVector(lookupCur)
		pair.global = lookupGlob
	}

	if len(pair.current) > 0 {
		matched := col.Storage.IndexSearch(c.Op, c.Value, pair.current)
		for i := range pair.current {
			if matched.IsSet(i) {
				valid = append(valid, pair.global[i])
			} else {
				removed++
			}
		}
	}

	invariant(r.Size() == len(valid)+removed, "indexed filter: size=%d valid=%d removed=%d", r.Size(), len(valid), removed)

	sort.Ints(valid)
	return rowmap.NewFromSortedIndices(n, valid)
}
