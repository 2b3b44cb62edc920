package similarity

import (
	"hash/fnv"
	"strings"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// DefaultDim is the embedding width used when none is configured.
const DefaultDim = 64

// Embedder turns a wardrobe item or a free-text query into a deterministic
// vector by hashing its descriptive tokens. No network calls, same input
// always yields the same vector.
type Embedder struct {
	dim int
}

// NewEmbedder constructs the embedder.
func NewEmbedder(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Embedder{dim: dim}
}

// EmbedItem builds the vector for one item from its taxonomy and tag fields.
func (e *Embedder) EmbedItem(item wardrobe.Item) []float32 {
	tokens := []string{item.Category, item.SubCategory, item.Brand, item.Fit}
	tokens = append(tokens, item.Colors...)
	tokens = append(tokens, item.Materials...)
	tokens = append(tokens, item.StyleTags...)
	tokens = append(tokens, item.SeasonTags...)
	return e.embedTokens(tokens)
}

// EmbedQuery builds the vector for a free-text search query.
func (e *Embedder) EmbedQuery(query string) []float32 {
	return e.embedTokens(strings.Fields(strings.ToLower(query)))
}

func (e *Embedder) embedTokens(tokens []string) []float32 {
	vector := make([]float32, e.dim)
	for _, token := range tokens {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		hash := fnv.New64a()
		_, _ = hash.Write([]byte(token))
		seed := hash.Sum64()
		for j := 0; j < e.dim; j++ {
			seed = seed*1099511628211 + 1469598103934665603
			vector[j] += float32(seed%997) / 997.0
		}
	}
	return vector
}
