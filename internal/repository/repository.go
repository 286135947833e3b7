package repository

import (
	"context"
	"errors"

	"github.com/listkeeper/listkeeper-go/internal/model"
)

var (
	ErrItemNotFound = errors.New("item not found")

	// ErrStoreUnavailable marks a storage read or write failure. Read
	// paths in the service degrade this to an empty collection
	// (fail-open on read); write paths surface it to the caller.
	ErrStoreUnavailable = errors.New("item store unavailable")
)

// ItemRepository owns the item collection and its CRUD semantics. The
// backing strategy (JSON file or embedded keyed store) is chosen at
// startup via configuration; both implement this interface.
type ItemRepository interface {
	// List returns all persisted items.
	List(ctx context.Context) ([]model.Item, error)

	// Create builds a new item with a server-assigned id and done=false,
	// persists it and returns it.
	Create(ctx context.Context, title, content string) (model.Item, error)

	// Update replaces the title and content of the item with the given id.
	// Returns ErrItemNotFound if no such item exists.
	Update(ctx context.Context, id, title, content string) (model.Item, error)

	// Toggle flips the done flag of the item with the given id.
	// Returns ErrItemNotFound if no such item exists.
	Toggle(ctx context.Context, id string) (model.Item, error)

	// Delete removes the item with the given id. Deleting an unknown id
	// is a no-op, not an error.
	Delete(ctx context.Context, id string) error
}
