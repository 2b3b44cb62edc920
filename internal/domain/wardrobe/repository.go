package wardrobe

import "context"

// Filters narrows wardrobe searches. Empty fields match everything.
type Filters struct {
	Category   string   `json:"category,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	StyleTags  []string `json:"styleTags,omitempty"`
	SeasonTags []string `json:"seasonTags,omitempty"`
}

// Repository persists wardrobe items per user.
type Repository interface {
	CreateItem(ctx context.Context, item Item) error
	GetItem(ctx context.Context, userID, itemID string) (Item, bool, error)
	ListItems(ctx context.Context, userID string) ([]Item, error)
	SearchItems(ctx context.Context, userID string, filters Filters) ([]Item, error)
	UpdateItem(ctx context.Context, item Item) error
	DeleteItem(ctx context.Context, userID, itemID string) (bool, error)
}

// SimilarityIndex is the best-effort lexical similarity lookup. It is never
// consulted by the ranking engine.
type SimilarityIndex interface {
	IndexItems(ctx context.Context, items []Item) error
	Search(ctx context.Context, userID, query string, topK int) ([]Item, error)
}

// ImageStore persists item image payloads and returns a serving URL.
type ImageStore interface {
	Put(ctx context.Context, userID, itemID string, data []byte) (string, error)
}
