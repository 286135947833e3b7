package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestKVRepo(t *testing.T) *KVRepository {
	t.Helper()
	db, err := OpenKV(filepath.Join(t.TempDir(), "items.db"))
	if err != nil {
		t.Fatalf("OpenKV() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewKVRepository(db, "items")
}

func TestKVRepositoryListEmpty(t *testing.T) {
	repo := newTestKVRepo(t)

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() on empty store = %d items, want 0", len(items))
	}
}

func TestKVRepositoryCreate(t *testing.T) {
	repo := newTestKVRepo(t)
	ctx := context.Background()

	item, err := repo.Create(ctx, "buy milk", "two liters")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if item.ID == "" {
		t.Error("Create() assigned empty id")
	}
	if item.Content != "two liters" {
		t.Errorf("Create() content = %q, want %q", item.Content, "two liters")
	}
	if item.Done {
		t.Error("Create() done = true, want false")
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Errorf("List() = %+v, want the created item", items)
	}
}

func TestKVRepositoryUpdate(t *testing.T) {
	repo := newTestKVRepo(t)
	ctx := context.Background()

	item, err := repo.Create(ctx, "old", "")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	updated, err := repo.Update(ctx, item.ID, "new", "details")
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Title != "new" || updated.Content != "details" {
		t.Errorf("Update() = %+v, want replaced fields", updated)
	}
}

func TestKVRepositoryUpdateNotFound(t *testing.T) {
	repo := newTestKVRepo(t)

	_, err := repo.Update(context.Background(), "no-such-id", "title", "")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Update() error = %v, want ErrItemNotFound", err)
	}
}

func TestKVRepositoryToggle(t *testing.T) {
	repo := newTestKVRepo(t)
	ctx := context.Background()

	item, err := repo.Create(ctx, "buy milk", "")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	toggled, err := repo.Toggle(ctx, item.ID)
	if err != nil {
		t.Fatalf("Toggle() unexpected error: %v", err)
	}
	if !toggled.Done {
		t.Error("Toggle() done = false, want true")
	}
}

func TestKVRepositoryDeleteIdempotent(t *testing.T) {
	repo := newTestKVRepo(t)
	ctx := context.Background()

	item, err := repo.Create(ctx, "buy milk", "")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete() second call unexpected error: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() after delete = %d items, want 0", len(items))
	}
}

// Same-key writes are last-write-wins with no conflict detection: the
// second update silently replaces the first.
func TestKVRepositorySameKeyLastWriteWins(t *testing.T) {
	repo := newTestKVRepo(t)
	ctx := context.Background()

	item, err := repo.Create(ctx, "original", "")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if _, err := repo.Update(ctx, item.ID, "first writer", ""); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if _, err := repo.Update(ctx, item.ID, "second writer", ""); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	got, err := repo.get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get() unexpected error: %v", err)
	}
	if got.Title != "second writer" {
		t.Errorf("title = %q, want the last write to win", got.Title)
	}
}

// Items in different collections never collide even with equal ids.
func TestKVRepositoryCollectionIsolation(t *testing.T) {
	db, err := OpenKV(filepath.Join(t.TempDir(), "items.db"))
	if err != nil {
		t.Fatalf("OpenKV() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	todos := NewKVRepository(db, "todos")
	entries := NewKVRepository(db, "entries")
	ctx := context.Background()

	if _, err := todos.Create(ctx, "todo item", ""); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	items, err := entries.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() on other collection = %d items, want 0", len(items))
	}
}
