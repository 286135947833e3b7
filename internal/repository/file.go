package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/listkeeper/listkeeper-go/internal/model"
)

// FileRepository persists the item collection as a single pretty-printed
// JSON array, fully rewritten on every mutation. Item ids are millisecond
// timestamps rendered as strings, bumped on collision.
//
// Every mutation holds the mutex across the whole read-mutate-write
// region. The original design let concurrent mutations race (last write
// wins, losing updates); with handlers running on concurrent goroutines
// that lock is required for the collection to stay consistent.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileRepository creates a file-backed repository storing the
// collection at path. The parent directory is created if missing.
func NewFileRepository(path string) (*FileRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) List(ctx context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRepository) Create(ctx context.Context, title, content string) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return model.Item{}, err
	}

	item := model.Item{
		ID:      nextTimestampID(items),
		Title:   title,
		Content: content,
		Done:    false,
	}
	items = append(items, item)

	if err := r.save(items); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *FileRepository) Update(ctx context.Context, id, title, content string) (model.Item, error) {
	return r.mutate(id, func(item *model.Item) {
		item.Title = title
		item.Content = content
	})
}

func (r *FileRepository) Toggle(ctx context.Context, id string) (model.Item, error) {
	return r.mutate(id, func(item *model.Item) {
		item.Done = !item.Done
	})
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		// Unknown id: delete is idempotent, nothing to rewrite.
		return nil
	}

	return r.save(kept)
}

// mutate applies fn to the item with the given id inside the lock and
// rewrites the collection.
func (r *FileRepository) mutate(id string, fn func(*model.Item)) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return model.Item{}, err
	}

	for i := range items {
		if items[i].ID == id {
			fn(&items[i])
			if err := r.save(items); err != nil {
				return model.Item{}, err
			}
			return items[i], nil
		}
	}

	return model.Item{}, ErrItemNotFound
}

// load reads the whole collection. A missing file is an empty
// collection; a corrupt or unreadable one is ErrStoreUnavailable.
func (r *FileRepository) load() ([]model.Item, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, r.path, err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrStoreUnavailable, r.path, err)
	}
	return items, nil
}

// save rewrites the whole collection, pretty-printed.
func (r *FileRepository) save(items []model.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0o640); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStoreUnavailable, r.path, err)
	}
	return nil
}

// nextTimestampID returns the current millisecond timestamp as a string,
// incremented past any existing id so two creates in the same
// millisecond stay unique.
func nextTimestampID(items []model.Item) string {
	id := time.Now().UnixMilli()
	for _, item := range items {
		if n, err := strconv.ParseInt(item.ID, 10, 64); err == nil && n >= id {
			id = n + 1
		}
	}
	return strconv.FormatInt(id, 10)
}
