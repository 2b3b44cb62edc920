package similarity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// PostgresIndex stores item embeddings in the wardrobe_items pgvector column
// and searches with the `<->` distance operator.
type PostgresIndex struct {
	pool     *pgxpool.Pool
	embedder *Embedder
}

// NewPostgresIndex constructs the index.
func NewPostgresIndex(pool *pgxpool.Pool, embedder *Embedder) *PostgresIndex {
	return &PostgresIndex{pool: pool, embedder: embedder}
}

func (x *PostgresIndex) IndexItems(ctx context.Context, items []wardrobe.Item) error {
	for _, item := range items {
		vector := item.Embedding
		if len(vector) == 0 {
			vector = x.embedder.EmbedItem(item)
		}
		_, err := x.pool.Exec(ctx, `
			UPDATE wardrobe_items
			SET embedding = $1
			WHERE user_id = $2 AND item_id = $3
		`, pgvector.NewVector(vector), item.UserID, item.ItemID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (x *PostgresIndex) Search(ctx context.Context, userID, query string, topK int) ([]wardrobe.Item, error) {
	if topK <= 0 {
		topK = 5
	}
	queryVec := pgvector.NewVector(x.embedder.EmbedQuery(query))
	rows, err := x.pool.Query(ctx, `
		SELECT item_id, user_id, image_url, source_url, category, sub_category,
		       colors, materials, brand, fit, season_tags, style_tags, user_notes
		FROM wardrobe_items
		WHERE user_id = $1 AND embedding IS NOT NULL
		ORDER BY embedding <-> $2
		LIMIT $3
	`, userID, queryVec, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []wardrobe.Item
	for rows.Next() {
		var item wardrobe.Item
		err := rows.Scan(
			&item.ItemID, &item.UserID, &item.ImageURL, &item.SourceURL,
			&item.Category, &item.SubCategory,
			&item.Colors, &item.Materials, &item.Brand, &item.Fit,
			&item.SeasonTags, &item.StyleTags, &item.UserNotes,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

var _ wardrobe.SimilarityIndex = (*PostgresIndex)(nil)
