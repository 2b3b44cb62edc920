package color

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
)

func newEngine() *Engine {
	return NewEngine(taxonomy.Default())
}

func TestMonochrome(t *testing.T) {
	engine := newEngine()

	require.True(t, engine.Monochrome([]string{"red", "Red"}))
	require.True(t, engine.Monochrome([]string{"navy blue", "navy"}))
	require.True(t, engine.Monochrome(nil))
	require.False(t, engine.Monochrome([]string{"red", "blue"}))
}

func TestComplementary(t *testing.T) {
	engine := newEngine()

	require.True(t, engine.Complementary("blue", "orange"))
	require.True(t, engine.Complementary("orange", "blue"))
	require.True(t, engine.Complementary("black", "white"))
	require.False(t, engine.Complementary("blue", "blue"))
	require.False(t, engine.Complementary("blue", "red"))
}

func TestAnalogousTriplet(t *testing.T) {
	engine := newEngine()

	require.True(t, engine.AnalogousTriplet([]string{"red", "orange", "yellow"}))
	require.True(t, engine.AnalogousTriplet([]string{"green", "blue", "indigo", "white"}))
	// Order matters on the simplified wheel.
	require.False(t, engine.AnalogousTriplet([]string{"yellow", "orange", "red"}))
	require.False(t, engine.AnalogousTriplet([]string{"red", "orange"}))
}

func TestChooseHarmoniousPaletteAffinity(t *testing.T) {
	engine := newEngine()

	result := engine.ChooseHarmonious([]string{"yellow", "black"}, []string{"yellow", "coral", "pink"})
	// yellow is a palette member (+2), black matches nothing.
	require.Equal(t, 2, result.Scores["yellow"])
	require.Equal(t, 0, result.Scores["black"])
	require.Equal(t, "yellow", result.ChosenColors[0])
}

func TestChooseHarmoniousMonochromeAttribution(t *testing.T) {
	engine := newEngine()

	result := engine.ChooseHarmonious([]string{"gray", "grey"}, []string{"beige"})
	require.Equal(t, RuleMonochrome, result.RuleUsed)
	// Both synonyms collapse to one key that collects both +2 bonuses.
	require.Equal(t, 4, result.Scores["gray"])
	require.Equal(t, []string{"gray"}, result.ChosenColors)
}

func TestChooseHarmoniousComplementaryOverridesAnalogous(t *testing.T) {
	engine := newEngine()

	// blue/orange are complementary, and blue scores against the palette head.
	result := engine.ChooseHarmonious([]string{"blue", "orange"}, []string{"orange"})
	require.Equal(t, RuleComplementary, result.RuleUsed)
	require.Equal(t, 2, result.Scores["blue"]) // +1 complementary-to-palette, +1 pair bonus
	require.Equal(t, 3, result.Scores["orange"])
}

func TestChooseHarmoniousTieBreaksLexicographically(t *testing.T) {
	engine := newEngine()

	result := engine.ChooseHarmonious([]string{"white", "beige"}, nil)
	require.Equal(t, result.Scores["white"], result.Scores["beige"])
	require.Equal(t, []string{"beige", "white"}, result.ChosenColors)
}

func TestChooseHarmoniousDropsNonCanonical(t *testing.T) {
	engine := newEngine()

	result := engine.ChooseHarmonious([]string{"coral", "red"}, []string{"coral"})
	require.NotContains(t, result.ChosenColors, "coral")
	require.Contains(t, result.ChosenColors, "red")
	// Non-canonical colors still carry scores for diagnostics.
	require.Equal(t, 2, result.Scores["coral"])
}

func TestCalculateMetrics(t *testing.T) {
	engine := newEngine()

	require.Equal(t, 0.0, engine.CalculateMetrics(nil).HarmonyScore)

	mono := engine.CalculateMetrics([]string{"black", "black"})
	require.Equal(t, RuleMonochrome, mono.RuleApplied)
	require.Equal(t, 1.0, mono.HarmonyScore)

	comp := engine.CalculateMetrics([]string{"blue", "orange"})
	require.Equal(t, RuleComplementary, comp.RuleApplied)
	require.Equal(t, 0.85, comp.HarmonyScore)

	analogous := engine.CalculateMetrics([]string{"red", "orange", "yellow"})
	require.Equal(t, RuleAnalogous, analogous.RuleApplied)
	require.Equal(t, 0.75, analogous.HarmonyScore)

	fewDistinct := engine.CalculateMetrics([]string{"red", "blue", "beige"})
	require.Equal(t, RuleNone, fewDistinct.RuleApplied)
	require.Equal(t, 0.5, fewDistinct.HarmonyScore)

	manyDistinct := engine.CalculateMetrics([]string{"red", "blue", "beige", "pink"})
	require.Equal(t, 0.35, manyDistinct.HarmonyScore)
}
