package wardrobe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

// Service exposes wardrobe management on top of a Repository.
type Service interface {
	Add(ctx context.Context, userID string, raw RawItem) (Item, error)
	IngestBatch(ctx context.Context, userID string, raws []RawItem) (BatchResult, error)
	Get(ctx context.Context, userID, itemID string) (Item, error)
	List(ctx context.Context, userID string) ([]Item, error)
	Search(ctx context.Context, userID string, filters Filters) ([]Item, error)
	Similar(ctx context.Context, userID, query string, topK int) ([]Item, error)
	Remove(ctx context.Context, userID, itemID string) error
}

// BatchResult reports a batch ingestion outcome. Malformed entries are skipped
// and reported, never failing the whole batch.
type BatchResult struct {
	Added   []Item         `json:"added"`
	Skipped []SkippedEntry `json:"skipped,omitempty"`
}

// SkippedEntry names one rejected batch entry.
type SkippedEntry struct {
	Index  int    `json:"index"`
	ItemID string `json:"itemId,omitempty"`
	Reason string `json:"reason"`
}

type service struct {
	tax    *taxonomy.Taxonomy
	repo   Repository
	images ImageStore
	index  SimilarityIndex
	logger *slog.Logger
}

// NewService wires up the wardrobe domain.
func NewService(tax *taxonomy.Taxonomy, repo Repository, images ImageStore, index SimilarityIndex, logger *slog.Logger) Service {
	return &service{
		tax:    tax,
		repo:   repo,
		images: images,
		index:  index,
		logger: logger.With("component", "wardrobe.service"),
	}
}

func (s *service) Add(ctx context.Context, userID string, raw RawItem) (Item, error) {
	raw.UserID = userID
	if strings.TrimSpace(raw.ItemID) == "" {
		raw.ItemID = uuid.NewString()
	}
	item, err := New(s.tax, raw)
	if err != nil {
		return Item{}, err
	}

	if len(raw.ImageData) > 0 && s.images != nil {
		url, err := s.images.Put(ctx, item.UserID, item.ItemID, raw.ImageData)
		if err != nil {
			return Item{}, apperrors.Wrap("image_store_error", "failed to store item image", err)
		}
		item.ImageURL = url
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return Item{}, apperrors.Wrap("repository_error", "failed to persist wardrobe item", err)
	}

	if s.index != nil {
		if err := s.index.IndexItems(ctx, []Item{item}); err != nil {
			s.logger.Warn("similarity index update failed", "item_id", item.ItemID, "error", err)
		}
	}
	s.logger.Info("wardrobe item added", "user_id", item.UserID, "item_id", item.ItemID, "category", item.Category)
	return item, nil
}

func (s *service) IngestBatch(ctx context.Context, userID string, raws []RawItem) (BatchResult, error) {
	result := BatchResult{Added: make([]Item, 0, len(raws))}
	for i, raw := range raws {
		item, err := s.Add(ctx, userID, raw)
		if err != nil {
			if apperrors.IsCode(err, "invalid_item") || apperrors.IsCode(err, "invalid_input") {
				s.logger.Warn("skipping wardrobe entry due to validation error", "index", i, "error", err)
				result.Skipped = append(result.Skipped, SkippedEntry{Index: i, ItemID: raw.ItemID, Reason: err.Error()})
				continue
			}
			return result, err
		}
		result.Added = append(result.Added, item)
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, userID, itemID string) (Item, error) {
	item, found, err := s.repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return Item{}, apperrors.Wrap("repository_error", "failed to load wardrobe item", err)
	}
	if !found {
		return Item{}, apperrors.Wrap("not_found", "wardrobe item does not exist", nil)
	}
	return item, nil
}

func (s *service) List(ctx context.Context, userID string) ([]Item, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("repository_error", "failed to list wardrobe items", err)
	}
	return items, nil
}

func (s *service) Search(ctx context.Context, userID string, filters Filters) ([]Item, error) {
	normalized, ok := s.normalizeFilters(filters)
	if !ok {
		// An unknown category can never match anything.
		return []Item{}, nil
	}
	items, err := s.repo.SearchItems(ctx, userID, normalized)
	if err != nil {
		return nil, apperrors.Wrap("repository_error", "failed to search wardrobe items", err)
	}
	return items, nil
}

func (s *service) Similar(ctx context.Context, userID, query string, topK int) ([]Item, error) {
	if s.index == nil {
		return []Item{}, nil
	}
	if strings.TrimSpace(query) == "" {
		return []Item{}, nil
	}
	items, err := s.index.Search(ctx, userID, query, topK)
	if err != nil {
		return nil, apperrors.Wrap("similarity_error", "similarity search failed", err)
	}
	return items, nil
}

func (s *service) Remove(ctx context.Context, userID, itemID string) error {
	deleted, err := s.repo.DeleteItem(ctx, userID, itemID)
	if err != nil {
		return apperrors.Wrap("repository_error", "failed to delete wardrobe item", err)
	}
	if !deleted {
		return apperrors.Wrap("not_found", "wardrobe item does not exist", nil)
	}
	return nil
}

func (s *service) normalizeFilters(filters Filters) (Filters, bool) {
	normalized := Filters{}
	if strings.TrimSpace(filters.Category) != "" {
		category, err := s.tax.ValidateCategory(filters.Category)
		if err != nil {
			return Filters{}, false
		}
		normalized.Category = category
	}
	normalized.Colors = s.tax.NormalizeColors(filters.Colors)
	for _, tag := range filters.StyleTags {
		if key := taxonomy.NormalizeKey(tag); key != "" {
			normalized.StyleTags = append(normalized.StyleTags, key)
		}
	}
	for _, tag := range filters.SeasonTags {
		if key := taxonomy.NormalizeKey(tag); key != "" {
			normalized.SeasonTags = append(normalized.SeasonTags, key)
		}
	}
	return normalized, true
}
