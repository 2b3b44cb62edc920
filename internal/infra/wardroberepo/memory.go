package wardroberepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// MemoryRepository keeps wardrobes in process memory. Used for tests and for
// running without Postgres.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]wardrobe.Item
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]map[string]wardrobe.Item)}
}

func (r *MemoryRepository) CreateItem(_ context.Context, item wardrobe.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[item.UserID]
	if !ok {
		user = make(map[string]wardrobe.Item)
		r.items[item.UserID] = user
	}
	user[item.ItemID] = item
	return nil
}

func (r *MemoryRepository) GetItem(_ context.Context, userID, itemID string) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[userID][itemID]
	return item, ok, nil
}

func (r *MemoryRepository) ListItems(_ context.Context, userID string) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]wardrobe.Item, 0, len(r.items[userID]))
	for _, item := range r.items[userID] {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *MemoryRepository) SearchItems(ctx context.Context, userID string, filters wardrobe.Filters) ([]wardrobe.Item, error) {
	items, err := r.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]wardrobe.Item, 0, len(items))
	for _, item := range items {
		if matches(item, filters) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpdateItem(_ context.Context, item wardrobe.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[item.UserID]
	if !ok {
		user = make(map[string]wardrobe.Item)
		r.items[item.UserID] = user
	}
	user[item.ItemID] = item
	return nil
}

func (r *MemoryRepository) DeleteItem(_ context.Context, userID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.items[userID]
	if !ok {
		return false, nil
	}
	if _, ok := user[itemID]; !ok {
		return false, nil
	}
	delete(user, itemID)
	return true, nil
}

func matches(item wardrobe.Item, filters wardrobe.Filters) bool {
	if filters.Category != "" && item.Category != filters.Category {
		return false
	}
	if len(filters.Colors) > 0 && !overlaps(item.Colors, filters.Colors) {
		return false
	}
	if len(filters.StyleTags) > 0 && !overlaps(item.StyleTags, filters.StyleTags) {
		return false
	}
	if len(filters.SeasonTags) > 0 && !overlaps(item.SeasonTags, filters.SeasonTags) {
		return false
	}
	return true
}

func overlaps(values, wanted []string) bool {
	for _, value := range values {
		for _, want := range wanted {
			if value == want {
				return true
			}
		}
	}
	return false
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
