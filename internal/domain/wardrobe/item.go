package wardrobe

import (
	"strings"

	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

// Item is one validated garment or accessory in a user's wardrobe. Items are
// constructed once and treated as read-only by the recommendation engine.
type Item struct {
	ItemID      string    `json:"itemId"`
	UserID      string    `json:"userId"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Colors      []string  `json:"colors,omitempty"`
	Materials   []string  `json:"materials,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Fit         string    `json:"fit,omitempty"`
	SeasonTags  []string  `json:"seasonTags,omitempty"`
	StyleTags   []string  `json:"styleTags,omitempty"`
	UserNotes   string    `json:"userNotes,omitempty"`
	Embedding   []float32 `json:"-"`
}

// RawItem carries loose ingestion metadata before validation.
type RawItem struct {
	ItemID      string    `json:"itemId"`
	UserID      string    `json:"userId"`
	ImageURL    string    `json:"imageUrl"`
	SourceURL   string    `json:"sourceUrl"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Colors      []string  `json:"colors"`
	Materials   []string  `json:"materials"`
	Brand       string    `json:"brand"`
	Fit         string    `json:"fit"`
	SeasonTags  []string  `json:"seasonTags"`
	StyleTags   []string  `json:"styleTags"`
	UserNotes   string    `json:"userNotes"`
	ImageData   []byte    `json:"imageData,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// New validates raw metadata and produces a normalized Item. Validation is the
// only hard failure in the engine: a bad category or missing identity field
// fails fast with an error naming the field.
func New(tax *taxonomy.Taxonomy, raw RawItem) (Item, error) {
	missing := missingFields(raw)
	if len(missing) > 0 {
		return Item{}, apperrors.Wrap("invalid_item",
			"missing required fields: "+strings.Join(missing, ", "), nil)
	}

	category, err := tax.ValidateCategory(raw.Category)
	if err != nil {
		return Item{}, apperrors.Wrap("invalid_item", "category", err)
	}
	subCategory, err := tax.ValidateSubcategory(category, raw.SubCategory)
	if err != nil {
		return Item{}, apperrors.Wrap("invalid_item", "sub_category", err)
	}

	item := Item{
		ItemID:      strings.TrimSpace(raw.ItemID),
		UserID:      strings.TrimSpace(raw.UserID),
		ImageURL:    strings.TrimSpace(raw.ImageURL),
		SourceURL:   strings.TrimSpace(raw.SourceURL),
		Category:    category,
		SubCategory: subCategory,
		Colors:      tax.NormalizeColors(raw.Colors),
		Materials:   normalizeMaterials(raw.Materials),
		Brand:       strings.TrimSpace(raw.Brand),
		Fit:         strings.TrimSpace(raw.Fit),
		SeasonTags:  tax.NormalizeTags(raw.SeasonTags, tax.SeasonTags),
		StyleTags:   tax.NormalizeTags(raw.StyleTags, tax.StyleTags),
		UserNotes:   strings.TrimSpace(raw.UserNotes),
	}
	if len(raw.Embedding) > 0 {
		item.Embedding = append([]float32(nil), raw.Embedding...)
	}
	return item, nil
}

func missingFields(raw RawItem) []string {
	var missing []string
	if strings.TrimSpace(raw.ItemID) == "" {
		missing = append(missing, "item_id")
	}
	if strings.TrimSpace(raw.UserID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(raw.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(raw.SubCategory) == "" {
		missing = append(missing, "sub_category")
	}
	return missing
}

func normalizeMaterials(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		clean := strings.ToLower(strings.TrimSpace(value))
		if clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// HasStyleTag reports whether the item carries the given style tag.
func (i Item) HasStyleTag(tag string) bool {
	for _, candidate := range i.StyleTags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// HasMaterial reports whether any item material matches the given set.
func (i Item) HasMaterial(materials ...string) bool {
	for _, candidate := range i.Materials {
		for _, wanted := range materials {
			if candidate == wanted {
				return true
			}
		}
	}
	return false
}
