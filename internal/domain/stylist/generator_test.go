package stylist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

func newTestGenerator(t *testing.T) (*Generator, mood.Profile) {
	t.Helper()
	tax := taxonomy.Default()
	catalog := mood.NewCatalog(tax)
	return NewGenerator(color.NewEngine(tax)), catalog.Lookup("neutral")
}

func TestGenerateMissingRequiredCategory(t *testing.T) {
	gen, profile := newTestGenerator(t)
	items := []wardrobe.Item{
		fixtureItem("t1", taxonomy.CategoryTop, "tee", []string{"white"}, nil, []string{"casual"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"white"}, nil, []string{"casual"}),
	}
	result := gen.Generate(items, profile, ModeRankedMulti)
	require.Empty(t, result.Outfits)
	require.Equal(t, ReasonMissingRequired, result.Diagnostics.Reason)

	result = gen.Generate(items, profile, ModeSingleBest)
	require.Empty(t, result.Outfits)
	require.Equal(t, ReasonMissingRequired, result.Diagnostics.Reason)
}

func TestGenerateSingleBestPrefersHarmony(t *testing.T) {
	gen, profile := newTestGenerator(t)
	// gray/gray/gray is monochrome and matches the neutral palette; the clash
	// combination scores lower.
	items := []wardrobe.Item{
		fixtureItem("t1", taxonomy.CategoryTop, "shirt", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("t2", taxonomy.CategoryTop, "shirt", []string{"red"}, nil, []string{"casual"}),
		fixtureItem("b1", taxonomy.CategoryBottom, "jeans", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"gray"}, nil, []string{"casual"}),
	}
	result := gen.Generate(items, profile, ModeSingleBest)
	require.Len(t, result.Outfits, 1)
	require.Equal(t, []string{"b1", "s1", "t1"}, sortedItemIDs(result.Outfits[0]))
	require.Equal(t, color.RuleMonochrome, result.Diagnostics.HarmonyRule)
	require.Equal(t, 2, result.Diagnostics.CombinationsScored)
}

func TestGenerateSingleBestAttachesOptionals(t *testing.T) {
	gen, profile := newTestGenerator(t)
	items := []wardrobe.Item{
		fixtureItem("t1", taxonomy.CategoryTop, "shirt", []string{"white"}, nil, []string{"casual"}),
		fixtureItem("b1", taxonomy.CategoryBottom, "jeans", []string{"blue"}, nil, []string{"casual"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"white"}, nil, []string{"casual"}),
		fixtureItem("o2", taxonomy.CategoryOuterwear, "coat", []string{"beige"}, nil, []string{"casual"}),
		fixtureItem("o1", taxonomy.CategoryOuterwear, "jacket", []string{"black"}, nil, []string{"casual"}),
		fixtureItem("a1", taxonomy.CategoryAccessory, "belt", []string{"brown"}, nil, []string{"casual"}),
	}
	result := gen.Generate(items, profile, ModeSingleBest)
	require.Len(t, result.Outfits, 1)
	outfit := result.Outfits[0]
	require.Len(t, outfit, 5)
	// first outerwear in id order, then first accessory
	require.Equal(t, "o1", outfit[3].ItemID)
	require.Equal(t, "a1", outfit[4].ItemID)
}

func TestGenerateRankedMultiCaps(t *testing.T) {
	gen, profile := newTestGenerator(t)
	var items []wardrobe.Item
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		items = append(items, fixtureItem(id, taxonomy.CategoryTop, "shirt", []string{"white"}, nil, []string{"casual"}))
	}
	for _, id := range []string{"b1", "b2", "b3"} {
		items = append(items, fixtureItem(id, taxonomy.CategoryBottom, "jeans", []string{"blue"}, nil, []string{"casual"}))
	}
	for _, id := range []string{"s1", "s2"} {
		items = append(items, fixtureItem(id, taxonomy.CategoryShoes, "sneakers", []string{"white"}, nil, []string{"casual"}))
	}
	items = append(items, fixtureItem("o1", taxonomy.CategoryOuterwear, "coat", []string{"black"}, nil, []string{"casual"}))

	result := gen.Generate(items, profile, ModeRankedMulti)
	// 4 (capped tops) x 3 x 2 = 24 possible, capped at 12
	require.Len(t, result.Outfits, maxCombinations)
	for _, outfit := range result.Outfits {
		require.Len(t, outfit, 4)
		require.Equal(t, "o1", outfit[3].ItemID)
		// the fifth top never appears: the category was capped at four
		for _, item := range outfit {
			require.NotEqual(t, "t5", item.ItemID)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	gen, profile := newTestGenerator(t)
	items := []wardrobe.Item{
		fixtureItem("t2", taxonomy.CategoryTop, "shirt", []string{"blue"}, nil, []string{"casual"}),
		fixtureItem("t1", taxonomy.CategoryTop, "shirt", []string{"white"}, nil, []string{"casual"}),
		fixtureItem("b1", taxonomy.CategoryBottom, "jeans", []string{"navy"}, nil, []string{"casual"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "boots", []string{"black"}, nil, []string{"casual"}),
	}
	first := gen.Generate(items, profile, ModeRankedMulti)
	second := gen.Generate(items, profile, ModeRankedMulti)
	require.Equal(t, first.Outfits, second.Outfits)
	// grouping sorts by id: t1 combinations come before t2
	require.Equal(t, "t1", first.Outfits[0][0].ItemID)
}

func TestApplyColorHarmonyPrunesClashingOptionals(t *testing.T) {
	gen, profile := newTestGenerator(t)
	outfit := []wardrobe.Item{
		fixtureItem("t1", taxonomy.CategoryTop, "shirt", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("b1", taxonomy.CategoryBottom, "jeans", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("a1", taxonomy.CategoryAccessory, "scarf", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("a2", taxonomy.CategoryAccessory, "hat", []string{"orange"}, nil, []string{"casual"}),
	}
	applied := gen.ApplyColorHarmony(outfit, profile)
	require.Equal(t, color.RuleMonochrome, applied.RuleUsed)
	require.Equal(t, []string{"a2"}, applied.RemovedIDs)
	require.Len(t, applied.Items, 4)
}

func TestApplyConstraintHints(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("h1", taxonomy.CategoryShoes, "heels", []string{"black"}, nil, nil),
		fixtureItem("sk1", taxonomy.CategoryBottom, "skirt", []string{"red"}, nil, nil),
		fixtureItem("b1", taxonomy.CategoryBottom, "jeans", []string{"blue"}, nil, nil),
	}
	pruned, applied := ApplyConstraintHints(items, []string{"please avoid heels today", "prefer pants"})
	require.Equal(t, []string{"avoid heels", "prefer pants"}, applied)
	require.Len(t, pruned, 1)
	require.Equal(t, "b1", pruned[0].ItemID)

	unchanged, applied := ApplyConstraintHints(items, []string{"something unrelated"})
	require.Nil(t, applied)
	require.Equal(t, items, unchanged)
}
