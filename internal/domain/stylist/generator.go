package stylist

import (
	"sort"
	"strings"

	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// Mode selects the generation strategy.
type Mode string

const (
	// ModeSingleBest returns the one highest-harmony base combination.
	ModeSingleBest Mode = "single_best"
	// ModeRankedMulti enumerates capped combinations for downstream scoring.
	ModeRankedMulti Mode = "ranked_multi"
)

const (
	maxPerCategory  = 4
	maxCombinations = 12

	// ReasonMissingRequired is reported when a required category is empty.
	ReasonMissingRequired = "missing_required_categories"
)

var requiredCategories = []string{taxonomy.CategoryTop, taxonomy.CategoryBottom, taxonomy.CategoryShoes}

// Diagnostics explains how a generation run went.
type Diagnostics struct {
	Mode               string   `json:"mode"`
	CombinationsScored int      `json:"combinationsScored"`
	BestHarmonyScore   int      `json:"bestHarmonyScore,omitempty"`
	HarmonyRule        string   `json:"harmonyRule,omitempty"`
	BestItemIDs        []string `json:"bestItemIds,omitempty"`
	Reason             string   `json:"reason,omitempty"`
	ConstraintsApplied []string `json:"constraintsApplied,omitempty"`
}

// GenerationResult is the set of candidate outfits plus diagnostics.
type GenerationResult struct {
	Outfits     [][]wardrobe.Item
	Diagnostics Diagnostics
}

// Generator builds candidate outfits from a filtered item pool.
type Generator struct {
	colors *color.Engine
}

// NewGenerator constructs a generator over the given harmony engine.
func NewGenerator(colors *color.Engine) *Generator {
	return &Generator{colors: colors}
}

// ApplyConstraintHints prunes the pool on recognized textual hints. Unknown
// hints are ignored; recognized ones are echoed back for diagnostics.
func ApplyConstraintHints(items []wardrobe.Item, constraints []string) ([]wardrobe.Item, []string) {
	avoidHeels := false
	preferPants := false
	var applied []string
	for _, constraint := range constraints {
		hint := strings.ToLower(strings.TrimSpace(constraint))
		switch {
		case strings.Contains(hint, "avoid heels") && !avoidHeels:
			avoidHeels = true
			applied = append(applied, "avoid heels")
		case strings.Contains(hint, "prefer pants") && !preferPants:
			preferPants = true
			applied = append(applied, "prefer pants")
		}
	}
	if !avoidHeels && !preferPants {
		return items, nil
	}

	kept := make([]wardrobe.Item, 0, len(items))
	for _, item := range items {
		if avoidHeels && item.SubCategory == "heels" {
			continue
		}
		if preferPants && (item.SubCategory == "skirt" || item.SubCategory == "shorts") {
			continue
		}
		kept = append(kept, item)
	}
	return kept, applied
}

// Generate builds outfits from the pool. Required categories are top, bottom
// and shoes; the first outerwear and accessory in id order are attached to
// every base combination.
func (g *Generator) Generate(items []wardrobe.Item, profile mood.Profile, mode Mode) GenerationResult {
	groups := groupByCategory(items)
	for _, category := range requiredCategories {
		if len(groups[category]) == 0 {
			return GenerationResult{Diagnostics: Diagnostics{Mode: string(mode), Reason: ReasonMissingRequired}}
		}
	}

	tops := capGroup(groups[taxonomy.CategoryTop])
	bottoms := capGroup(groups[taxonomy.CategoryBottom])
	shoes := capGroup(groups[taxonomy.CategoryShoes])
	var outerwear, accessory *wardrobe.Item
	if group := groups[taxonomy.CategoryOuterwear]; len(group) > 0 {
		outerwear = &group[0]
	}
	if group := groups[taxonomy.CategoryAccessory]; len(group) > 0 {
		accessory = &group[0]
	}

	if mode == ModeSingleBest {
		return g.singleBest(tops, bottoms, shoes, outerwear, accessory, profile)
	}
	return g.rankedMulti(tops, bottoms, shoes, outerwear, accessory, profile)
}

func (g *Generator) singleBest(tops, bottoms, shoes []wardrobe.Item, outerwear, accessory *wardrobe.Item, profile mood.Profile) GenerationResult {
	var best []wardrobe.Item
	bestScore := -1
	bestRule := color.RuleNone
	scored := 0

	for _, top := range tops {
		for _, bottom := range bottoms {
			for _, shoe := range shoes {
				combo := []wardrobe.Item{top, bottom, shoe}
				score, harmony := g.comboHarmony(combo, profile)
				scored++
				switch {
				case score > bestScore:
					best, bestScore, bestRule = combo, score, harmony.RuleUsed
				case score == bestScore && compareIDLists(sortedItemIDs(combo), sortedItemIDs(best)) < 0:
					best, bestRule = combo, harmony.RuleUsed
				}
			}
		}
	}

	outfit := attachOptionals(best, outerwear, accessory)
	return GenerationResult{
		Outfits: [][]wardrobe.Item{outfit},
		Diagnostics: Diagnostics{
			Mode:               string(ModeSingleBest),
			CombinationsScored: scored,
			BestHarmonyScore:   bestScore,
			HarmonyRule:        bestRule,
			BestItemIDs:        sortedItemIDs(outfit),
		},
	}
}

func (g *Generator) rankedMulti(tops, bottoms, shoes []wardrobe.Item, outerwear, accessory *wardrobe.Item, profile mood.Profile) GenerationResult {
	var outfits [][]wardrobe.Item
	scored := 0
loop:
	for _, top := range tops {
		for _, bottom := range bottoms {
			for _, shoe := range shoes {
				if len(outfits) >= maxCombinations {
					break loop
				}
				combo := attachOptionals([]wardrobe.Item{top, bottom, shoe}, outerwear, accessory)
				outfits = append(outfits, combo)
				scored++
			}
		}
	}
	return GenerationResult{
		Outfits: outfits,
		Diagnostics: Diagnostics{
			Mode:               string(ModeRankedMulti),
			CombinationsScored: scored,
		},
	}
}

// HarmonyApplication is the result of pruning an outfit's optional items
// against the chosen harmonious color set.
type HarmonyApplication struct {
	Items        []wardrobe.Item `json:"items"`
	RuleUsed     string          `json:"ruleUsed"`
	ChosenColors []string        `json:"chosenColors"`
	RemovedIDs   []string        `json:"removedIds,omitempty"`
}

// ApplyColorHarmony keeps required items unconditionally and keeps optional
// items only when at least one of their colors is in the chosen set.
func (g *Generator) ApplyColorHarmony(outfit []wardrobe.Item, profile mood.Profile) HarmonyApplication {
	var requiredColors []string
	for _, item := range outfit {
		if isRequiredCategory(item.Category) {
			requiredColors = append(requiredColors, item.Colors...)
		}
	}
	harmony := g.colors.ChooseHarmonious(requiredColors, profile.Palette)
	chosen := make(map[string]struct{}, len(harmony.ChosenColors))
	for _, chosenColor := range harmony.ChosenColors {
		chosen[chosenColor] = struct{}{}
	}

	app := HarmonyApplication{RuleUsed: harmony.RuleUsed, ChosenColors: harmony.ChosenColors}
	for _, item := range outfit {
		if isRequiredCategory(item.Category) {
			app.Items = append(app.Items, item)
			continue
		}
		keep := false
		for _, itemColor := range item.Colors {
			if _, ok := chosen[itemColor]; ok {
				keep = true
				break
			}
		}
		if keep {
			app.Items = append(app.Items, item)
		} else {
			app.RemovedIDs = append(app.RemovedIDs, item.ItemID)
		}
	}
	return app
}

func (g *Generator) comboHarmony(combo []wardrobe.Item, profile mood.Profile) (int, color.HarmonyResult) {
	var colors []string
	for _, item := range combo {
		colors = append(colors, item.Colors...)
	}
	harmony := g.colors.ChooseHarmonious(colors, profile.Palette)
	score := len(harmony.ChosenColors)
	if g.colors.Monochrome(colors) {
		score += 2
	}
	if len(colors) >= 2 && g.colors.Complementary(colors[0], colors[1]) {
		score++
	}
	if g.colors.AnalogousTriplet(colors) {
		score++
	}
	return score, harmony
}

func groupByCategory(items []wardrobe.Item) map[string][]wardrobe.Item {
	groups := make(map[string][]wardrobe.Item)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	for category := range groups {
		group := groups[category]
		sort.Slice(group, func(i, j int) bool { return group[i].ItemID < group[j].ItemID })
	}
	return groups
}

func capGroup(group []wardrobe.Item) []wardrobe.Item {
	if len(group) > maxPerCategory {
		return group[:maxPerCategory]
	}
	return group
}

func attachOptionals(base []wardrobe.Item, outerwear, accessory *wardrobe.Item) []wardrobe.Item {
	outfit := make([]wardrobe.Item, 0, len(base)+2)
	outfit = append(outfit, base...)
	if outerwear != nil {
		outfit = append(outfit, *outerwear)
	}
	if accessory != nil {
		outfit = append(outfit, *accessory)
	}
	return outfit
}

func isRequiredCategory(category string) bool {
	for _, required := range requiredCategories {
		if category == required {
			return true
		}
	}
	return false
}

func sortedItemIDs(items []wardrobe.Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ItemID)
	}
	sort.Strings(ids)
	return ids
}

func compareIDLists(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
