package rowmap

import (
	"testing"

	"github.com/rowspace/colfilter/core/colfilter/bitvec"
)

func TestRangeBasics(t *testing.T) {
	r := NewRange(100, 10, 20)
	if r.Size() != 10 {
		t.Fatalf("Size() = %d, want 10", r.Size())
	}
	if r.First() != 10 || r.Last() != 19 {
		t.Fatalf("First()=%d Last()=%d, want 10,19", r.First(), r.Last())
	}
	if r.Get(3) != 13 {
		t.Fatalf("Get(3) = %d, want 13", r.Get(3))
	}
}

func TestBitmapBasics(t *testing.T) {
	bv := bitvec.New(20)
	bv.Set(2)
	bv.Set(5)
	bv.Set(19)
	r := NewBitmap(20, bv)
	if r.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", r.Size())
	}
	if r.First() != 2 || r.Last() != 19 {
		t.Fatalf("First()=%d Last()=%d, want 2,19", r.First(), r.Last())
	}
}

func TestEmpty(t *testing.T) {
	r := NewRange(10, 5, 5)
	if !r.Empty() {
		t.Fatal("expected empty range map")
	}
}

func TestIterateRowsRange(t *testing.T) {
	r := NewRange(10, 2, 6)
	var got []int
	r.IterateRows(func(row int) bool {
		got = append(got, row)
		return true
	})
	want := []int{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("IterateRows() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IterateRows()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIterateRowsBitmap(t *testing.T) {
	bv := bitvec.New(10)
	bv.Set(1)
	bv.Set(4)
	bv.Set(8)
	r := NewBitmap(10, bv)
	var got []int
	r.IterateRows(func(row int) bool {
		got = append(got, row)
		return true
	})
	want := []int{1, 4, 8}
	if len(got) != len(want) {
		t.Fatalf("IterateRows() = %v, want %v", got, want)
	}
}

func TestNewFromSortedIndicesContiguous(t *testing.T) {
	r := NewFromSortedIndices(20, []int{5, 6, 7, 8})
	if r.Size() != 4 || r.First() != 5 || r.Last() != 8 {
		t.Fatalf("unexpected range map: size=%d first=%d last=%d", r.Size(), r.First(), r.Last())
	}
	if !r.isRange {
		t.Error("expected contiguous indices to produce a range representation")
	}
}

func TestNewFromSortedIndicesSparse(t *testing.T) {
	r := NewFromSortedIndices(20, []int{1, 5, 9})
	if r.isRange {
		t.Error("expected sparse indices to produce a bitmap representation")
	}
	if r.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", r.Size())
	}
}

func TestNewFromSortedIndicesEmpty(t *testing.T) {
	r := NewFromSortedIndices(20, nil)
	if !r.Empty() {
		t.Fatal("expected empty row map from empty index slice")
	}
}

func TestIntersectRangeRange(t *testing.T) {
	a := NewRange(100, 10, 30)
	b := NewRange(100, 20, 40)
	a.Intersect(b)
	if a.First() != 20 || a.Last() != 29 || a.Size() != 10 {
		t.Fatalf("unexpected intersection: first=%d last=%d size=%d", a.First(), a.Last(), a.Size())
	}
	if !a.isRange {
		t.Error("expected range-range intersection to stay a range")
	}
}

func TestIntersectRangeRangeDisjoint(t *testing.T) {
	a := NewRange(100, 10, 20)
	b := NewRange(100, 30, 40)
	a.Intersect(b)
	if !a.Empty() {
		t.Fatal("expected disjoint ranges to intersect to empty")
	}
}

func TestIntersectRangeBitmap(t *testing.T) {
	bv := bitvec.New(100)
	bv.Set(5)
	bv.Set(15)
	bv.Set(25)
	b := NewBitmap(100, bv)
	a := NewRange(100, 10, 20)
	a.Intersect(b)
	if a.Size() != 1 || a.First() != 15 {
		t.Fatalf("unexpected intersection: size=%d first=%d", a.Size(), a.First())
	}
}

func TestIntersectBitmapRange(t *testing.T) {
	bv := bitvec.New(100)
	bv.Set(5)
	bv.Set(15)
	bv.Set(25)
	a := NewBitmap(100, bv)
	b := NewRange(100, 10, 20)
	a.Intersect(b)
	if a.Size() != 1 || a.First() != 15 {
		t.Fatalf("unexpected intersection: size=%d first=%d", a.Size(), a.First())
	}
}

func TestIntersectBitmapBitmap(t *testing.T) {
	bv1 := bitvec.New(10)
	bv2 := bitvec.New(10)
	for _, i := range []int{1, 2, 3, 4} {
		bv1.Set(i)
	}
	for _, i := range []int{3, 4, 5, 6} {
		bv2.Set(i)
	}
	a := NewBitmap(10, bv1)
	b := NewBitmap(10, bv2)
	a.Intersect(b)
	if a.Size() != 2 || a.First() != 3 || a.Last() != 4 {
		t.Fatalf("unexpected intersection: size=%d first=%d last=%d", a.Size(), a.First(), a.Last())
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	r := NewRange(10, 2, 5)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range Get")
		}
	}()
	r.Get(10)
}
