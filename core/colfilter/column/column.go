// Package column binds a column's backing storage to its ordered overlay
// stack, the unit the filter executor operates on.
package column

import (
	"fmt"

	"github.com/rowspace/colfilter/core/colfilter/overlay"
	"github.com/rowspace/colfilter/core/colfilter/storage"
)

// KMaxOverlayCount bounds how deep a column's overlay stack may be.
const KMaxOverlayCount = 8

// SimpleColumn binds one storage vector to zero or more overlays, ordered
// outermost (index 0, closest to table-row space) to innermost (closest to
// storage space).
type SimpleColumn struct {
	Storage  storage.Storage
	Overlays []overlay.Overlay
}

// New constructs a SimpleColumn, panicking if the overlay stack is too deep.
func New(s storage.Storage, overlays ...overlay.Overlay) *SimpleColumn {
	if len(overlays) > KMaxOverlayCount {
		panic(fmt.Sprintf("column: overlay stack depth %d exceeds max %d", len(overlays), KMaxOverlayCount))
	}
	return &SimpleColumn{Storage: s, Overlays: overlays}
}
