package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestSQLiteSlot_EmptyThenOverwrite(t *testing.T) {
	ctx := context.Background()
	slot, err := OpenSQLiteSlot(ctx, filepath.Join(t.TempDir(), DefaultDBName), "")
	if err != nil {
		t.Fatalf("OpenSQLiteSlot: %v", err)
	}
	defer slot.Close()

	if _, err := slot.Read(ctx); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}
	if err := slot.Write(ctx, []byte("first")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := slot.Write(ctx, []byte("second")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := slot.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("Read = %q, want last write", got)
	}
}

func TestSQLiteSlot_RepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultDBName)

	slot, err := OpenSQLiteSlot(ctx, path, DefaultSlotName)
	if err != nil {
		t.Fatalf("OpenSQLiteSlot: %v", err)
	}
	want := testTrips()
	if err := NewRepository(slot, zap.NewNop()).Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := slot.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLiteSlot(ctx, path, DefaultSlotName)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got := NewRepository(reopened, zap.NewNop()).Load(ctx)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteSlot_SlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultDBName)
	a, err := OpenSQLiteSlot(ctx, path, "a")
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	defer a.Close()
	b, err := OpenSQLiteSlot(ctx, path, "b")
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	defer b.Close()

	if err := a.Write(ctx, []byte("[]")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := b.Read(ctx); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("slot b should be empty, got %v", err)
	}
}
