package stylist

import (
	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// Critique issue strings attached to ranked outfits.
const (
	IssueOpenFootwearWet      = "open footwear in wet weather"
	IssueMissingBusinessStyle = "missing business styling"
)

// CritiqueOutfit flags residual problems the filters do not remove outright.
func CritiqueOutfit(items []wardrobe.Item, dctx dayplan.DailyContext) []string {
	var issues []string

	if dctx.WeatherRiskLevel == dayplan.LevelHigh {
		for _, item := range items {
			if item.Category == taxonomy.CategoryShoes && item.SubCategory == "sandals" {
				issues = append(issues, IssueOpenFootwearWet)
				break
			}
		}
	}

	if dctx.FormalityRequirement == dayplan.FormalityBusiness {
		styled := false
		for _, item := range items {
			if item.HasStyleTag("business") || item.HasStyleTag("formal") {
				styled = true
				break
			}
		}
		if !styled {
			issues = append(issues, IssueMissingBusinessStyle)
		}
	}
	return issues
}
