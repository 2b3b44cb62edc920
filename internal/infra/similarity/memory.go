package similarity

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// MemoryIndex is an in-process cosine-similarity index over item embeddings.
type MemoryIndex struct {
	embedder *Embedder

	mu      sync.RWMutex
	entries map[string]map[string]entry
}

type entry struct {
	item   wardrobe.Item
	vector []float32
}

// NewMemoryIndex constructs an empty index.
func NewMemoryIndex(embedder *Embedder) *MemoryIndex {
	return &MemoryIndex{embedder: embedder, entries: make(map[string]map[string]entry)}
}

func (x *MemoryIndex) IndexItems(_ context.Context, items []wardrobe.Item) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, item := range items {
		user, ok := x.entries[item.UserID]
		if !ok {
			user = make(map[string]entry)
			x.entries[item.UserID] = user
		}
		vector := item.Embedding
		if len(vector) == 0 {
			vector = x.embedder.EmbedItem(item)
		}
		user[item.ItemID] = entry{item: item, vector: vector}
	}
	return nil
}

func (x *MemoryIndex) Search(_ context.Context, userID, query string, topK int) ([]wardrobe.Item, error) {
	if topK <= 0 {
		topK = 5
	}
	queryVec := x.embedder.EmbedQuery(query)

	x.mu.RLock()
	defer x.mu.RUnlock()
	type scored struct {
		item  wardrobe.Item
		score float64
	}
	candidates := make([]scored, 0, len(x.entries[userID]))
	for _, candidate := range x.entries[userID] {
		candidates = append(candidates, scored{item: candidate.item, score: cosine(queryVec, candidate.vector)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].item.ItemID < candidates[j].item.ItemID
	})
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	items := make([]wardrobe.Item, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, candidate.item)
	}
	return items, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ wardrobe.SimilarityIndex = (*MemoryIndex)(nil)
