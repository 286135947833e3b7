package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/listkeeper/listkeeper-go/internal/model"
	"github.com/listkeeper/listkeeper-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrItemNotFound  = errors.New("item not found")
)

// ItemService handles item business logic over whichever repository
// backend was configured at startup.
type ItemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// ListItems returns all items. Fail-open on read: if the store is
// unavailable the failure is logged and an empty collection is returned
// rather than failing the request.
func (s *ItemService) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrStoreUnavailable) {
			slog.Warn("item store unavailable, returning empty list", "error", err)
			return []model.Item{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// CreateItem creates a new item with the given title and optional content.
func (s *ItemService) CreateItem(ctx context.Context, req model.ItemRequest) (model.Item, error) {
	if req.Title == "" {
		return model.Item{}, ErrTitleRequired
	}
	return s.repo.Create(ctx, req.Title, req.Content)
}

// UpdateItem replaces the title and content of an existing item.
func (s *ItemService) UpdateItem(ctx context.Context, id string, req model.ItemRequest) (model.Item, error) {
	if req.Title == "" {
		return model.Item{}, ErrTitleRequired
	}

	item, err := s.repo.Update(ctx, id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return model.Item{}, ErrItemNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

// ToggleItem flips the done flag of an existing item.
func (s *ItemService) ToggleItem(ctx context.Context, id string) (model.Item, error) {
	item, err := s.repo.Toggle(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return model.Item{}, ErrItemNotFound
		}
		return model.Item{}, err
	}
	return item, nil
}

// DeleteItem removes an item. Deletion is idempotent: an unknown id is
// not an error.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
