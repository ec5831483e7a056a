package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func newTestAdapter(t *testing.T, dbPath string) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(dbPath)
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	if err := adapter.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return adapter
}

func TestAdapter_SetGetDelete(t *testing.T) {
	adapter := newTestAdapter(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	if _, found, err := adapter.Get(ctx, "conversations_u1"); err != nil || found {
		t.Errorf("Get() on empty db = found %v, err %v", found, err)
	}

	value := []byte(`[{"threadId":"t1"}]`)
	if err := adapter.Set(ctx, "conversations_u1", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, found, err := adapter.Get(ctx, "conversations_u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || !bytes.Equal(got, value) {
		t.Errorf("Get() = %s (found=%v), want %s", got, found, value)
	}

	if err := adapter.Delete(ctx, "conversations_u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found, _ := adapter.Get(ctx, "conversations_u1"); found {
		t.Error("Key should be gone after Delete()")
	}

	// Deleting an absent key is fine.
	if err := adapter.Delete(ctx, "conversations_u1"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestAdapter_SetOverwrites(t *testing.T) {
	adapter := newTestAdapter(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	if err := adapter.Set(ctx, "slot", []byte("old")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := adapter.Set(ctx, "slot", []byte("new")); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, _, err := adapter.Get(ctx, "slot")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get() = %s, want new", got)
	}
}

func TestAdapter_KeysAreIndependent(t *testing.T) {
	adapter := newTestAdapter(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	if err := adapter.Set(ctx, "conversations_a", []byte("a-data")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := adapter.Set(ctx, "conversations_b", []byte("b-data")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := adapter.Delete(ctx, "conversations_a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, found, err := adapter.Get(ctx, "conversations_b")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if string(got) != "b-data" {
		t.Errorf("Deleting one key must not touch another, got %s", got)
	}
}

func TestAdapter_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	adapter, err := NewAdapter(dbPath)
	if err != nil {
		t.Fatalf("NewAdapter() error = %v", err)
	}
	if err := adapter.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := adapter.Set(ctx, "slot", []byte("durable")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := adapter.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := newTestAdapter(t, dbPath)
	got, found, err := reopened.Get(ctx, "slot")
	if err != nil || !found {
		t.Fatalf("Get() after reopen = found %v, err %v", found, err)
	}
	if string(got) != "durable" {
		t.Errorf("Get() = %s, want durable", got)
	}
}

func TestAdapter_Ping(t *testing.T) {
	adapter := newTestAdapter(t, filepath.Join(t.TempDir(), "test.db"))
	if err := adapter.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
