package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/listkeeper/listkeeper-go/internal/model"
)

// OpenKV opens the embedded keyed store at path and applies migrations.
// The parent directory is created if missing.
func OpenKV(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		return nil, err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS items (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	);`); err != nil {
		return nil, err
	}
	return db, nil
}

// KVRepository persists each item individually under the two-segment key
// (collection, item-id), with the item JSON as the value. Item ids are
// random UUIDs. Per-key operations are atomic at the storage layer;
// concurrent writes to the same key remain last-write-wins.
type KVRepository struct {
	db         *sql.DB
	collection string
}

// NewKVRepository creates a keyed-store repository over db, scoped to
// the given collection prefix.
func NewKVRepository(db *sql.DB, collection string) *KVRepository {
	return &KVRepository{db: db, collection: collection}
}

func (r *KVRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT value FROM items WHERE collection = ? ORDER BY id`, r.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		var item model.Item
		if err := json.Unmarshal([]byte(value), &item); err != nil {
			return nil, fmt.Errorf("%w: decoding item: %v", ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

func (r *KVRepository) Create(ctx context.Context, title, content string) (model.Item, error) {
	item := model.Item{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Done:    false,
	}
	if err := r.set(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *KVRepository) Update(ctx context.Context, id, title, content string) (model.Item, error) {
	item, err := r.get(ctx, id)
	if err != nil {
		return model.Item{}, err
	}

	item.Title = title
	item.Content = content
	if err := r.set(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *KVRepository) Toggle(ctx context.Context, id string) (model.Item, error) {
	item, err := r.get(ctx, id)
	if err != nil {
		return model.Item{}, err
	}

	item.Done = !item.Done
	if err := r.set(ctx, item); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *KVRepository) Delete(ctx context.Context, id string) error {
	// Idempotent: deleting an absent key affects zero rows and succeeds.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM items WHERE collection = ? AND id = ?`, r.collection, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *KVRepository) get(ctx context.Context, id string) (model.Item, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM items WHERE collection = ? AND id = ?`, r.collection, id).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Item{}, ErrItemNotFound
		}
		return model.Item{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var item model.Item
	if err := json.Unmarshal([]byte(value), &item); err != nil {
		return model.Item{}, fmt.Errorf("%w: decoding item: %v", ErrStoreUnavailable, err)
	}
	return item, nil
}

func (r *KVRepository) set(ctx context.Context, item model.Item) error {
	value, err := json.Marshal(item)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO items (collection, id, value) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET value = excluded.value`,
		r.collection, item.ID, string(value))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
