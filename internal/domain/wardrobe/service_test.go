package wardrobe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

type stubRepo struct {
	items     map[string]Item
	createErr error
	searched  *Filters
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: make(map[string]Item)}
}

func (r *stubRepo) CreateItem(_ context.Context, item Item) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[item.ItemID] = item
	return nil
}

func (r *stubRepo) GetItem(_ context.Context, _, itemID string) (Item, bool, error) {
	item, ok := r.items[itemID]
	return item, ok, nil
}

func (r *stubRepo) ListItems(_ context.Context, _ string) ([]Item, error) {
	out := make([]Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubRepo) SearchItems(_ context.Context, _ string, filters Filters) ([]Item, error) {
	r.searched = &filters
	return nil, nil
}

func (r *stubRepo) UpdateItem(ctx context.Context, item Item) error {
	return r.CreateItem(ctx, item)
}

func (r *stubRepo) DeleteItem(_ context.Context, _, itemID string) (bool, error) {
	if _, ok := r.items[itemID]; !ok {
		return false, nil
	}
	delete(r.items, itemID)
	return true, nil
}

type stubImages struct {
	url string
	err error
}

func (s *stubImages) Put(_ context.Context, _, _ string, _ []byte) (string, error) {
	return s.url, s.err
}

type stubIndex struct {
	indexed []Item
	results []Item
	err     error
}

func (s *stubIndex) IndexItems(_ context.Context, items []Item) error {
	s.indexed = append(s.indexed, items...)
	return s.err
}

func (s *stubIndex) Search(_ context.Context, _, _ string, _ int) ([]Item, error) {
	return s.results, s.err
}

func newWardrobeService(t *testing.T, repo Repository, images ImageStore, index SimilarityIndex) Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(taxonomy.Default(), repo, images, index, logger)
}

func TestAddGeneratesIDAndStoresImage(t *testing.T) {
	repo := newStubRepo()
	images := &stubImages{url: "https://img.example/coat.jpg"}
	index := &stubIndex{}
	svc := newWardrobeService(t, repo, images, index)

	item, err := svc.Add(context.Background(), "u1", RawItem{
		Category:    "outerwear",
		SubCategory: "coat",
		Colors:      []string{"Navy"},
		ImageData:   []byte{0xff, 0xd8},
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ItemID)
	require.Equal(t, "u1", item.UserID)
	require.Equal(t, []string{"navy"}, item.Colors)
	require.Equal(t, "https://img.example/coat.jpg", item.ImageURL)
	require.Len(t, index.indexed, 1)

	stored, found, err := repo.GetItem(context.Background(), "u1", item.ItemID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, item, stored)
}

func TestAddWrapsCollaboratorFailures(t *testing.T) {
	repo := newStubRepo()
	svc := newWardrobeService(t, repo, &stubImages{err: errors.New("bucket down")}, nil)

	_, err := svc.Add(context.Background(), "u1", RawItem{
		ItemID:      "top-1",
		Category:    "top",
		SubCategory: "shirt",
		ImageData:   []byte{0x1},
	})
	require.True(t, apperrors.IsCode(err, "image_store_error"))

	repo.createErr = errors.New("connection reset")
	svc = newWardrobeService(t, repo, nil, nil)
	_, err = svc.Add(context.Background(), "u1", RawItem{
		ItemID:      "top-1",
		Category:    "top",
		SubCategory: "shirt",
	})
	require.True(t, apperrors.IsCode(err, "repository_error"))
}

func TestIngestBatchSkipsInvalidEntries(t *testing.T) {
	repo := newStubRepo()
	svc := newWardrobeService(t, repo, nil, nil)

	result, err := svc.IngestBatch(context.Background(), "u1", []RawItem{
		{ItemID: "top-1", Category: "top", SubCategory: "shirt"},
		{ItemID: "bad-1", Category: "spacesuit", SubCategory: "helmet"},
		{ItemID: "shoes-1", Category: "shoes", SubCategory: "sneakers"},
	})
	require.NoError(t, err)
	require.Len(t, result.Added, 2)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, 1, result.Skipped[0].Index)
	require.Equal(t, "bad-1", result.Skipped[0].ItemID)
	require.Len(t, repo.items, 2)
}

func TestGetAndRemoveNotFound(t *testing.T) {
	svc := newWardrobeService(t, newStubRepo(), nil, nil)

	_, err := svc.Get(context.Background(), "u1", "missing")
	require.True(t, apperrors.IsCode(err, "not_found"))

	err = svc.Remove(context.Background(), "u1", "missing")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestSearchNormalizesFilters(t *testing.T) {
	repo := newStubRepo()
	svc := newWardrobeService(t, repo, nil, nil)

	_, err := svc.Search(context.Background(), "u1", Filters{
		Category:  " Top ",
		Colors:    []string{"Navy"},
		StyleTags: []string{" Casual "},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.searched)
	require.Equal(t, "top", repo.searched.Category)
	require.Equal(t, []string{"navy"}, repo.searched.Colors)
	require.Equal(t, []string{"casual"}, repo.searched.StyleTags)

	// an unknown category can never match, so the repo is not consulted
	repo.searched = nil
	items, err := svc.Search(context.Background(), "u1", Filters{Category: "spacesuit"})
	require.NoError(t, err)
	require.Empty(t, items)
	require.Nil(t, repo.searched)
}

func TestSimilarRequiresIndexAndQuery(t *testing.T) {
	index := &stubIndex{results: []Item{{ItemID: "top-1"}}}
	svc := newWardrobeService(t, newStubRepo(), nil, index)

	items, err := svc.Similar(context.Background(), "u1", "  ", 5)
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = svc.Similar(context.Background(), "u1", "blue shirt", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)

	noIndex := newWardrobeService(t, newStubRepo(), nil, nil)
	items, err = noIndex.Similar(context.Background(), "u1", "blue shirt", 5)
	require.NoError(t, err)
	require.Empty(t, items)
}
