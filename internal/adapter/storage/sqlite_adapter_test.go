package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T, path string) *SQLiteAdapter {
	t.Helper()
	adapter, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := adapter.Close(); err != nil {
			t.Fatalf("close sqlite: %v", err)
		}
	})
	return adapter
}

func TestSQLiteAdapter_SetGetRemove(t *testing.T) {
	adapter := openTestSQLite(t, ":memory:")
	ctx := context.Background()

	if _, found, err := adapter.GetItem(ctx, "products"); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	if err := adapter.SetItem(ctx, "products", `[{"id":"a"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := adapter.SetItem(ctx, "products", `[{"id":"b"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, found, err := adapter.GetItem(ctx, "products")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || value != `[{"id":"b"}]` {
		t.Errorf("expected overwritten value, got %q found=%v", value, found)
	}

	if err := adapter.RemoveItem(ctx, "products"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := adapter.GetItem(ctx, "products"); found {
		t.Error("expected key to be removed")
	}
}

func TestSQLiteAdapter_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invstrar.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.SetItem(ctx, "activeChatRoom", `"general"`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := openTestSQLite(t, path)
	value, found, err := second.GetItem(ctx, "activeChatRoom")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || value != `"general"` {
		t.Errorf("expected persisted value, got %q found=%v", value, found)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), "  "); err == nil {
		t.Error("expected error for empty path")
	}
}
