package fixtures

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "col.int64.xz")

	want := []int64{1, -2, 3, 1 << 40, -(1 << 40), 0}
	if err := WriteInt64ColumnXZ(path, want); err != nil {
		t.Fatalf("WriteInt64ColumnXZ() error = %v", err)
	}

	got, err := LoadInt64Column(path)
	if err != nil {
		t.Fatalf("LoadInt64Column() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadInt64Column(filepath.Join(t.TempDir(), "missing.xz")); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}

func TestLoadNonXZFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-xz.bin")
	if err := os.WriteFile(path, []byte("not an xz stream"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadInt64Column(path); err == nil {
		t.Fatal("expected error for non-xz file")
	}
}
