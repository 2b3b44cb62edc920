package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

// Category keys every wardrobe item must belong to.
const (
	CategoryTop       = "top"
	CategoryBottom    = "bottom"
	CategoryDress     = "dress"
	CategoryShoes     = "shoes"
	CategoryOuterwear = "outerwear"
	CategoryAccessory = "accessory"
)

// Taxonomy bundles the canonical vocabularies used for validation and color
// normalization. It is built once at startup and injected wherever sanitization
// happens, so tests can swap in alternate tables.
type Taxonomy struct {
	Categories         map[string][]string
	StyleTags          []string
	SeasonTags         []string
	Moods              []string
	ColorSynonyms      map[string]string
	CanonicalColors    []string
	ComplementaryPairs [][2]string
	AnalogousChains    [][3]string
}

// Default returns the canonical taxonomy tables.
func Default() *Taxonomy {
	return &Taxonomy{
		Categories: map[string][]string{
			CategoryTop:       {"blazer", "shirt", "tee", "polo", "sweater", "hoodie"},
			CategoryBottom:    {"jeans", "chinos", "trousers", "skirt", "shorts"},
			CategoryDress:     {"day_dress", "evening_dress", "jumpsuit"},
			CategoryShoes:     {"sneakers", "boots", "loafers", "heels", "sandals"},
			CategoryOuterwear: {"coat", "jacket", "puffer", "trench"},
			CategoryAccessory: {"belt", "bag", "hat", "scarf", "jewellery"},
		},
		StyleTags:  []string{"casual", "business", "formal", "party", "street", "sporty"},
		SeasonTags: []string{"warm_weather", "cold_weather", "all_year"},
		Moods:      []string{"happy", "neutral", "trendy", "casual", "festive", "urban"},
		ColorSynonyms: map[string]string{
			"navy blue":  "navy",
			"navy":       "navy",
			"light blue": "blue",
			"sky blue":   "blue",
			"blue":       "blue",
			"black":      "black",
			"white":      "white",
			"off white":  "white",
			"cream":      "beige",
			"beige":      "beige",
			"tan":        "beige",
			"brown":      "brown",
			"gray":       "gray",
			"grey":       "gray",
			"green":      "green",
			"olive":      "green",
			"red":        "red",
			"burgundy":   "red",
			"pink":       "pink",
			"yellow":     "yellow",
			"orange":     "orange",
		},
		CanonicalColors: []string{
			"red", "orange", "yellow", "green", "blue", "indigo", "purple",
			"pink", "brown", "beige", "gray", "black", "white",
		},
		ComplementaryPairs: [][2]string{
			{"red", "green"},
			{"blue", "orange"},
			{"yellow", "purple"},
			{"pink", "green"},
			{"black", "white"},
		},
		AnalogousChains: [][3]string{
			{"red", "orange", "yellow"},
			{"orange", "yellow", "green"},
			{"yellow", "green", "blue"},
			{"green", "blue", "indigo"},
			{"blue", "indigo", "purple"},
			{"indigo", "purple", "pink"},
		},
	}
}

// NormalizeKey maps a free-form string onto a taxonomy key.
func NormalizeKey(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
}

// ValidateCategory normalizes and checks a category value.
func (t *Taxonomy) ValidateCategory(value string) (string, error) {
	key := NormalizeKey(value)
	if _, ok := t.Categories[key]; !ok {
		return "", apperrors.Wrap("invalid_input",
			fmt.Sprintf("unsupported category %q, allowed: %s", value, strings.Join(t.CategoryKeys(), ", ")), nil)
	}
	return key, nil
}

// ValidateSubcategory checks that a subcategory belongs to the given category.
func (t *Taxonomy) ValidateSubcategory(category, value string) (string, error) {
	categoryKey, err := t.ValidateCategory(category)
	if err != nil {
		return "", err
	}
	subKey := NormalizeKey(value)
	for _, allowed := range t.Categories[categoryKey] {
		if allowed == subKey {
			return subKey, nil
		}
	}
	return "", apperrors.Wrap("invalid_input",
		fmt.Sprintf("unsupported sub_category %q for category %q, allowed: %s",
			value, categoryKey, strings.Join(t.Categories[categoryKey], ", ")), nil)
}

// NormalizeColor maps a raw color string to its canonical name. Unknown colors
// pass through lowercased so downstream scoring can still see them.
func (t *Taxonomy) NormalizeColor(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := t.ColorSynonyms[key]; ok {
		return canonical
	}
	return key
}

// NormalizeColors normalizes and deduplicates, preserving first-seen order.
func (t *Taxonomy) NormalizeColors(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		key := t.NormalizeColor(value)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// NormalizeTags keeps only tags in the allowed vocabulary, deduplicated in
// first-seen order.
func (t *Taxonomy) NormalizeTags(values, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, tag := range allowed {
		allowedSet[tag] = struct{}{}
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		key := NormalizeKey(value)
		if _, ok := allowedSet[key]; !ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// IsCanonicalColor reports membership in the canonical color set.
func (t *Taxonomy) IsCanonicalColor(color string) bool {
	for _, canonical := range t.CanonicalColors {
		if canonical == color {
			return true
		}
	}
	return false
}

// IsKnownMood reports membership in the mood vocabulary.
func (t *Taxonomy) IsKnownMood(mood string) bool {
	for _, known := range t.Moods {
		if known == mood {
			return true
		}
	}
	return false
}

// CategoryKeys returns the sorted category keys, mainly for error messages.
func (t *Taxonomy) CategoryKeys() []string {
	keys := make([]string, 0, len(t.Categories))
	for key := range t.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
