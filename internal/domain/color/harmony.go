package color

import (
	"sort"

	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
)

// Harmony rule names reported alongside rankings and metrics.
const (
	RuleNone                   = "none"
	RuleMonochrome             = "monochrome"
	RuleComplementary          = "complementary"
	RuleAnalogous              = "analogous"
	RuleComplementaryToPalette = "complementary-to-palette"
)

// HarmonyResult ranks candidate colors against a mood palette.
type HarmonyResult struct {
	ChosenColors []string       `json:"chosenColors"`
	RuleUsed     string         `json:"ruleUsed"`
	Scores       map[string]int `json:"scores"`
}

// Metrics summarizes outfit-level color harmony for the scoring model.
type Metrics struct {
	RuleApplied  string   `json:"ruleApplied"`
	HarmonyScore float64  `json:"harmonyScore"`
	Colors       []string `json:"colors,omitempty"`
}

// Engine evaluates harmony rules over the injected taxonomy tables.
type Engine struct {
	tax *taxonomy.Taxonomy
}

// NewEngine constructs a harmony engine.
func NewEngine(tax *taxonomy.Taxonomy) *Engine {
	return &Engine{tax: tax}
}

func (e *Engine) normalize(colors []string) []string {
	out := make([]string, 0, len(colors))
	for _, color := range colors {
		if color == "" {
			continue
		}
		out = append(out, e.tax.NormalizeColor(color))
	}
	return out
}

// Monochrome reports whether all colors collapse to a single tone.
func (e *Engine) Monochrome(colors []string) bool {
	unique := make(map[string]struct{})
	for _, color := range e.normalize(colors) {
		if color != "" {
			unique[color] = struct{}{}
		}
	}
	return len(unique) <= 1
}

// Complementary reports whether two colors form a complementary pair.
// A color is never complementary to itself.
func (e *Engine) Complementary(c1, c2 string) bool {
	a, b := e.tax.NormalizeColor(c1), e.tax.NormalizeColor(c2)
	if a == b {
		return false
	}
	for _, pair := range e.tax.ComplementaryPairs {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return true
		}
	}
	return false
}

// AnalogousTriplet reports whether the first three colors, in order, match one
// of the analogous chains on the simplified hue wheel.
func (e *Engine) AnalogousTriplet(colors []string) bool {
	normalized := e.normalize(colors)
	if len(normalized) < 3 {
		return false
	}
	for _, chain := range e.tax.AnalogousChains {
		if normalized[0] == chain[0] && normalized[1] == chain[1] && normalized[2] == chain[2] {
			return true
		}
	}
	return false
}

// ChooseHarmonious scores candidate colors against a mood palette and returns
// them ranked. Bonuses are additive; rule attribution follows the last matching
// global rule, with monochrome and complementary overriding earlier attributions
// and analogous only claiming attribution when nothing else matched.
func (e *Engine) ChooseHarmonious(candidateColors, moodPalette []string) HarmonyResult {
	candidates := e.normalize(candidateColors)
	palette := e.normalize(moodPalette)

	scores := make(map[string]int, len(candidates))
	ruleUsed := RuleNone
	for _, color := range candidates {
		score := 0
		for _, member := range palette {
			if member == color {
				score += 2
				break
			}
		}
		if len(palette) > 0 && e.Complementary(color, palette[0]) {
			score++
			if ruleUsed == RuleNone {
				ruleUsed = RuleComplementaryToPalette
			}
		}
		scores[color] = score
	}

	if e.Monochrome(candidates) {
		for _, color := range candidates {
			scores[color] += 2
		}
		ruleUsed = RuleMonochrome
	}
	if len(candidates) >= 2 && e.Complementary(candidates[0], candidates[1]) {
		scores[candidates[0]]++
		scores[candidates[1]]++
		ruleUsed = RuleComplementary
	}
	if len(candidates) >= 3 && e.AnalogousTriplet(candidates[:3]) {
		for _, color := range candidates[:3] {
			scores[color]++
		}
		if ruleUsed == RuleNone {
			ruleUsed = RuleAnalogous
		}
	}

	ranked := make([]string, 0, len(scores))
	for color := range scores {
		ranked = append(ranked, color)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	chosen := make([]string, 0, len(ranked))
	for _, color := range ranked {
		if e.tax.IsCanonicalColor(color) {
			chosen = append(chosen, color)
		}
	}
	return HarmonyResult{ChosenColors: chosen, RuleUsed: ruleUsed, Scores: scores}
}

// CalculateMetrics derives the outfit-level color sub-score from the flattened
// color list of all outfit items.
func (e *Engine) CalculateMetrics(colors []string) Metrics {
	normalized := e.normalize(colors)
	if len(normalized) == 0 {
		return Metrics{RuleApplied: RuleNone, HarmonyScore: 0.0}
	}

	metrics := Metrics{RuleApplied: RuleNone, Colors: normalized}
	switch {
	case e.Monochrome(normalized):
		metrics.RuleApplied = RuleMonochrome
		metrics.HarmonyScore = 1.0
	case len(normalized) >= 2 && e.Complementary(normalized[0], normalized[1]):
		metrics.RuleApplied = RuleComplementary
		metrics.HarmonyScore = 0.85
	case len(normalized) >= 3 && e.AnalogousTriplet(normalized[:3]):
		metrics.RuleApplied = RuleAnalogous
		metrics.HarmonyScore = 0.75
	default:
		distinct := make(map[string]struct{}, len(normalized))
		for _, color := range normalized {
			distinct[color] = struct{}{}
		}
		if len(distinct) <= 3 {
			metrics.HarmonyScore = 0.5
		} else {
			metrics.HarmonyScore = 0.35
		}
	}
	return metrics
}
