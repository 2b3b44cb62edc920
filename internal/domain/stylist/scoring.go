package stylist

import (
	"fmt"

	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// Weights of the five composite sub-scores.
var Weights = map[string]float64{
	"context":   0.25,
	"mood":      0.20,
	"color":     0.20,
	"formality": 0.20,
	"comfort":   0.15,
}

// ScoreOutfit computes the composite score and per-factor explanations for one
// outfit against the daily context and mood profile.
func ScoreOutfit(items []wardrobe.Item, dctx dayplan.DailyContext, profile mood.Profile, metrics color.Metrics) Score {
	hasOuterwear := false
	for _, item := range items {
		if item.Category == taxonomy.CategoryOuterwear {
			hasOuterwear = true
			break
		}
	}

	movement := movementScore(items, dctx)
	warmth := warmthScore(dctx, hasOuterwear)
	contextVal := (movement + warmth) / 2
	moodVal := moodAlignment(items, profile)
	colorVal := metrics.HarmonyScore
	formalityVal := formalityScore(items, dctx)
	comfortVal := warmth

	composite := clamp01(Weights["context"]*contextVal +
		Weights["mood"]*moodVal +
		Weights["color"]*colorVal +
		Weights["formality"]*formalityVal +
		Weights["comfort"]*comfortVal)

	return Score{
		Composite: composite,
		Sub: SubScores{
			Context:   contextVal,
			Mood:      moodVal,
			Color:     colorVal,
			Formality: formalityVal,
			Comfort:   comfortVal,
		},
		Explanation: Explanation{
			Context:   fmt.Sprintf("movement %s warmth %s", dctx.MovementRequirement, dctx.WarmthRequirement),
			Mood:      fmt.Sprintf("mood overlap %.2f with %s", moodVal, profile.Name),
			Color:     "harmony " + metrics.RuleApplied,
			Formality: "required " + dctx.FormalityRequirement,
			Comfort:   fmt.Sprintf("outerwear present: %t", hasOuterwear),
		},
	}
}

// movementScore penalizes heels on high-movement days.
func movementScore(items []wardrobe.Item, dctx dayplan.DailyContext) float64 {
	if dctx.MovementRequirement != dayplan.LevelHigh {
		return 1.0
	}
	heels := 0
	for _, item := range items {
		if item.SubCategory == "heels" {
			heels++
		}
	}
	return clamp01(1.0 - 0.3*float64(heels))
}

// warmthScore rewards outerwear under a high warmth requirement.
func warmthScore(dctx dayplan.DailyContext, hasOuterwear bool) float64 {
	switch dctx.WarmthRequirement {
	case dayplan.LevelHigh:
		if hasOuterwear {
			return 1.0
		}
		return 0.5
	case dayplan.LevelMedium:
		if hasOuterwear {
			return 0.8
		}
		return 0.7
	default:
		return 0.7
	}
}

// moodAlignment is the overlap between the outfit's style tags and the mood
// profile's, relative to the size of the mood tag set.
func moodAlignment(items []wardrobe.Item, profile mood.Profile) float64 {
	outfitTags := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.StyleTags {
			outfitTags[tag] = struct{}{}
		}
	}
	overlap := 0
	for _, tag := range profile.StyleTags {
		if _, ok := outfitTags[tag]; ok {
			overlap++
		}
	}
	denominator := len(profile.StyleTags)
	if denominator < 1 {
		denominator = 1
	}
	return clamp01(float64(overlap) / float64(denominator))
}

// formalityScore grades the outfit's tags against the required formality.
func formalityScore(items []wardrobe.Item, dctx dayplan.DailyContext) float64 {
	tags := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.StyleTags {
			tags[tag] = struct{}{}
		}
	}
	has := func(tag string) bool {
		_, ok := tags[tag]
		return ok
	}

	switch dctx.FormalityRequirement {
	case dayplan.FormalityBusiness:
		switch {
		case has("business") || has("formal"):
			return 1.0
		case has("smart") || has("smart casual"):
			return 0.8
		default:
			return 0.4
		}
	case dayplan.FormalityInformal, dayplan.FormalitySmartCasual:
		if has("casual") || has("street") {
			return 1.0
		}
	}
	return 0.6
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
