package wardroberepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// PostgresRepository implements wardrobe.Repository using pgx. Item list
// attributes live in text[] columns; the optional embedding is a pgvector
// column used by the similarity search.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const itemColumns = `
	item_id, user_id, image_url, source_url, category, sub_category,
	colors, materials, brand, fit, season_tags, style_tags, user_notes
`

func (r *PostgresRepository) CreateItem(ctx context.Context, item wardrobe.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wardrobe_items (
			item_id, user_id, image_url, source_url, category, sub_category,
			colors, materials, brand, fit, season_tags, style_tags, user_notes, embedding
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id, item_id) DO UPDATE SET
			image_url = EXCLUDED.image_url,
			source_url = EXCLUDED.source_url,
			category = EXCLUDED.category,
			sub_category = EXCLUDED.sub_category,
			colors = EXCLUDED.colors,
			materials = EXCLUDED.materials,
			brand = EXCLUDED.brand,
			fit = EXCLUDED.fit,
			season_tags = EXCLUDED.season_tags,
			style_tags = EXCLUDED.style_tags,
			user_notes = EXCLUDED.user_notes,
			embedding = EXCLUDED.embedding
	`, item.ItemID, item.UserID, item.ImageURL, item.SourceURL, item.Category, item.SubCategory,
		item.Colors, item.Materials, item.Brand, item.Fit, item.SeasonTags, item.StyleTags,
		item.UserNotes, embeddingValue(item.Embedding))
	return err
}

func (r *PostgresRepository) GetItem(ctx context.Context, userID, itemID string) (wardrobe.Item, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE user_id = $1 AND item_id = $2
		LIMIT 1
	`, userID, itemID)
	if err != nil {
		return wardrobe.Item{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return wardrobe.Item{}, false, rows.Err()
	}
	item, err := scanItem(rows)
	if err != nil {
		return wardrobe.Item{}, false, err
	}
	return item, true, rows.Err()
}

func (r *PostgresRepository) ListItems(ctx context.Context, userID string) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE user_id = $1
		ORDER BY item_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *PostgresRepository) SearchItems(ctx context.Context, userID string, filters wardrobe.Filters) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE user_id = $1
		  AND ($2 = '' OR category = $2)
		  AND (cardinality($3::text[]) = 0 OR colors && $3::text[])
		  AND (cardinality($4::text[]) = 0 OR style_tags && $4::text[])
		  AND (cardinality($5::text[]) = 0 OR season_tags && $5::text[])
		ORDER BY item_id
	`, userID, filters.Category, textArray(filters.Colors), textArray(filters.StyleTags), textArray(filters.SeasonTags))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item wardrobe.Item) error {
	return r.CreateItem(ctx, item)
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, userID, itemID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM wardrobe_items
		WHERE user_id = $1 AND item_id = $2
	`, userID, itemID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var item wardrobe.Item
	err := row.Scan(
		&item.ItemID, &item.UserID, &item.ImageURL, &item.SourceURL,
		&item.Category, &item.SubCategory,
		&item.Colors, &item.Materials, &item.Brand, &item.Fit,
		&item.SeasonTags, &item.StyleTags, &item.UserNotes,
	)
	if err != nil {
		return wardrobe.Item{}, err
	}
	return item, nil
}

func collectItems(rows interface {
	rowScanner
	Next() bool
	Err() error
}) ([]wardrobe.Item, error) {
	var items []wardrobe.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func embeddingValue(embedding []float32) any {
	if len(embedding) == 0 {
		return nil
	}
	return pgvector.NewVector(embedding)
}

// textArray keeps nil slices out of the wire protocol so that cardinality()
// sees an empty array instead of NULL.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
