package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "pocketledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Get missing key", func(t *testing.T) {
		v, ok, err := store.Get(ctx, "nope")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok || v != "" {
			t.Errorf("Expected miss, got %q, %v", v, ok)
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		if err := store.Set(ctx, "user", `{"id":"u1"}`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		v, ok, err := store.Get(ctx, "user")
		if err != nil || !ok {
			t.Fatalf("Get failed: ok %v, err %v", ok, err)
		}
		if v != `{"id":"u1"}` {
			t.Errorf("Expected stored value, got %q", v)
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		if err := store.Set(ctx, "settings-u1", "a"); err != nil {
			t.Fatal(err)
		}
		if err := store.Set(ctx, "settings-u1", "b"); err != nil {
			t.Fatal(err)
		}
		v, _, _ := store.Get(ctx, "settings-u1")
		if v != "b" {
			t.Errorf("Expected b, got %q", v)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Set(ctx, "expenses-u1", "[]"); err != nil {
			t.Fatal(err)
		}
		if err := store.Delete(ctx, "expenses-u1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "expenses-u1"); ok {
			t.Error("Expected key to be gone")
		}
		// Deleting a missing key is not an error
		if err := store.Delete(ctx, "expenses-u1"); err != nil {
			t.Errorf("Delete of missing key failed: %v", err)
		}
	})

	t.Run("Empty value is stored", func(t *testing.T) {
		if err := store.Set(ctx, "empty", ""); err != nil {
			t.Fatal(err)
		}
		v, ok, err := store.Get(ctx, "empty")
		if err != nil || !ok || v != "" {
			t.Errorf("Get = %q, %v, %v", v, ok, err)
		}
	})
}

func TestSQLiteStoreReopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "pocketledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Set(ctx, "users", `[{"id":"u1"}]`); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// Migrations are already applied; reopening must not fail or lose data
	store, err = New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get(ctx, "users")
	if err != nil || !ok {
		t.Fatalf("Get after reopen failed: ok %v, err %v", ok, err)
	}
	if v != `[{"id":"u1"}]` {
		t.Errorf("Expected persisted value, got %q", v)
	}
}
