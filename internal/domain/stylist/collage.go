package stylist

import (
	"math"

	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// Sticker is one positioned item on a collage canvas.
type Sticker struct {
	ItemID   string  `json:"itemId"`
	ImageURL string  `json:"imageUrl,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
}

// Collage is the deterministic presentation layout for one outfit.
type Collage struct {
	BackgroundColor string    `json:"backgroundColor"`
	Stickers        []Sticker `json:"stickers"`
}

// BuildCollage lays the items out on a 3-column grid. The layout depends only
// on item order and the mood profile.
func BuildCollage(items []wardrobe.Item, profile mood.Profile) Collage {
	scale := 0.8
	if len(items) > 3 {
		scale = 0.65
	}

	collage := Collage{BackgroundColor: profile.BackgroundColor}
	for i, item := range items {
		x := 0.15 + float64(i%3)*0.3
		y := 0.2 + float64(i/3)*0.3
		collage.Stickers = append(collage.Stickers, Sticker{
			ItemID:   item.ItemID,
			ImageURL: item.ImageURL,
			X:        round2(math.Min(x, 0.9)),
			Y:        round2(math.Min(y, 0.9)),
			Scale:    scale,
		})
	}
	return collage
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
