package column

import (
	"testing"

	"github.com/rowspace/colfilter/core/colfilter/bitvec"
	"github.com/rowspace/colfilter/core/colfilter/overlay"
	"github.com/rowspace/colfilter/core/colfilter/storage"
)

func allNotNull(n int) *bitvec.BitVector {
	bv := bitvec.New(n)
	for i := 0; i < n; i++ {
		bv.Set(i)
	}
	return bv
}

func TestNewWithinLimit(t *testing.T) {
	s := storage.NewInt64([]int64{1, 2, 3})
	overlays := make([]overlay.Overlay, KMaxOverlayCount)
	for i := range overlays {
		overlays[i] = overlay.NewNullOverlay(allNotNull(3))
	}
	c := New(s, overlays...)
	if len(c.Overlays) != KMaxOverlayCount {
		t.Fatalf("len(Overlays) = %d, want %d", len(c.Overlays), KMaxOverlayCount)
	}
}

func TestNewExceedsLimitPanics(t *testing.T) {
	s := storage.NewInt64([]int64{1, 2, 3})
	overlays := make([]overlay.Overlay, KMaxOverlayCount+1)
	for i := range overlays {
		overlays[i] = overlay.NewNullOverlay(allNotNull(3))
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for overlay stack deeper than KMaxOverlayCount")
		}
	}()
	New(s, overlays...)
}
