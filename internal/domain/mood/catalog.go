package mood

import (
	"strings"

	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
)

// DefaultMood is the fallback profile for unknown moods.
const DefaultMood = "neutral"

// Profile captures the styling preferences attached to a mood keyword.
type Profile struct {
	Name            string   `json:"name"`
	StyleTags       []string `json:"styleTags"`
	Palette         []string `json:"palette"`
	BackgroundColor string   `json:"backgroundColor"`
}

// Catalog resolves mood keywords to style profiles. Profiles are immutable;
// Lookup always hands out a fresh copy with a re-normalized palette.
type Catalog struct {
	tax      *taxonomy.Taxonomy
	profiles map[string]Profile
}

// NewCatalog builds the mood catalog over the injected taxonomy.
func NewCatalog(tax *taxonomy.Taxonomy) *Catalog {
	return &Catalog{
		tax: tax,
		profiles: map[string]Profile{
			"happy": {
				Name:            "happy",
				StyleTags:       []string{"casual", "party"},
				Palette:         []string{"yellow", "coral", "pink"},
				BackgroundColor: "#FFF2CC",
			},
			"neutral": {
				Name:            "neutral",
				StyleTags:       []string{"casual", "business"},
				Palette:         []string{"beige", "gray", "white"},
				BackgroundColor: "#F5F5F5",
			},
			"trendy": {
				Name:            "trendy",
				StyleTags:       []string{"street", "party"},
				Palette:         []string{"black", "white", "blue"},
				BackgroundColor: "#E1E8FF",
			},
			"casual": {
				Name:            "casual",
				StyleTags:       []string{"casual", "street"},
				Palette:         []string{"green", "blue", "white"},
				BackgroundColor: "#E4F2E7",
			},
			"festive": {
				Name:            "festive",
				StyleTags:       []string{"party", "trendy"},
				Palette:         []string{"red", "gold", "black"},
				BackgroundColor: "#FFD6A5",
			},
			"urban": {
				Name:            "urban",
				StyleTags:       []string{"street", "casual"},
				Palette:         []string{"black", "gray", "white"},
				BackgroundColor: "#DDE1E4",
			},
		},
	}
}

// Lookup resolves a mood keyword, defaulting to neutral for anything outside
// the catalog or the taxonomy mood vocabulary.
func (c *Catalog) Lookup(mood string) Profile {
	normalized := strings.ToLower(strings.TrimSpace(mood))
	if _, ok := c.profiles[normalized]; !ok {
		normalized = DefaultMood
	}
	if !c.tax.IsKnownMood(normalized) {
		normalized = DefaultMood
	}

	profile := c.profiles[normalized]
	palette := make([]string, 0, len(profile.Palette))
	for _, color := range profile.Palette {
		palette = append(palette, c.tax.NormalizeColor(color))
	}
	return Profile{
		Name:            profile.Name,
		StyleTags:       append([]string(nil), profile.StyleTags...),
		Palette:         palette,
		BackgroundColor: profile.BackgroundColor,
	}
}
