package stylist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

func fixtureItem(id, category, subCategory string, colors, materials, styleTags []string) wardrobe.Item {
	return wardrobe.Item{
		ItemID:      id,
		UserID:      "user-1",
		Category:    category,
		SubCategory: subCategory,
		Colors:      colors,
		Materials:   materials,
		StyleTags:   styleTags,
	}
}

func TestFilterByWeatherWetShoes(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"white"}, []string{"canvas"}, []string{"casual"}),
		fixtureItem("s2", taxonomy.CategoryShoes, "boots", []string{"black"}, []string{"leather"}, []string{"casual"}),
	}
	result := FilterByWeather(items, dayplan.WeatherProfile{TemperatureRange: "mild", RainSensitivity: dayplan.RainHeavy})
	require.Len(t, result.Kept, 1)
	require.Equal(t, "s2", result.Kept[0].ItemID)
	require.Equal(t, []string{ReasonPrecipitation}, result.Removed["s1"])

	// precipitation probability alone triggers the same rule
	result = FilterByWeather(items, dayplan.WeatherProfile{TemperatureRange: "mild", RainSensitivity: dayplan.RainDry, PrecipitationProbability: 0.6})
	require.Contains(t, result.Removed, "s1")
}

func TestFilterByWeatherColdTops(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("t1", taxonomy.CategoryTop, "tee", []string{"white"}, []string{"thin cotton"}, []string{"casual"}),
		fixtureItem("t2", taxonomy.CategoryTop, "sweater", []string{"gray"}, []string{"wool"}, []string{"casual"}),
	}
	result := FilterByWeather(items, dayplan.WeatherProfile{TemperatureRange: "cold", RainSensitivity: dayplan.RainDry, LayersRequired: "two plus"})
	require.Len(t, result.Kept, 1)
	require.Equal(t, []string{ReasonTooLightCold}, result.Removed["t1"])
	require.Equal(t, true, result.Debug.Details["cold"])
	require.Equal(t, true, result.Debug.Details["outerwear_required"])
}

func TestFilterByFormalityBusiness(t *testing.T) {
	schedule := dayplan.ScheduleProfile{Formality: dayplan.FormalityBusiness, Movement: dayplan.LevelLow}
	items := []wardrobe.Item{
		fixtureItem("b1", taxonomy.CategoryTop, "blazer", []string{"navy"}, nil, []string{"business"}),
		fixtureItem("h1", taxonomy.CategoryTop, "hoodie", []string{"gray"}, nil, []string{"casual", "sporty"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"white"}, nil, nil),
	}

	result := FilterByFormality(items, schedule)
	require.Len(t, result.Kept, 1)
	require.Equal(t, "b1", result.Kept[0].ItemID)
	// the hoodie is both too casual and sporty: both reasons recorded
	require.Equal(t, []string{ReasonTooCasual, ReasonSportyBusiness}, result.Removed["h1"])
	require.Equal(t, []string{ReasonTooCasual}, result.Removed["s1"])
}

func TestFilterByFormalitySportyAllowedOnFitnessDays(t *testing.T) {
	schedule := dayplan.ScheduleProfile{
		Formality: dayplan.FormalityBusiness,
		Movement:  dayplan.LevelHigh,
		DayParts:  []string{"morning:meeting", "evening:fitness"},
	}
	items := []wardrobe.Item{
		fixtureItem("g1", taxonomy.CategoryTop, "polo", []string{"blue"}, nil, []string{"sporty", "business"}),
	}
	result := FilterByFormality(items, schedule)
	require.Len(t, result.Kept, 1)
	require.Equal(t, true, result.Debug.Details["fitness_day"])
}

func TestFilterByFormalityInformal(t *testing.T) {
	schedule := dayplan.ScheduleProfile{Formality: dayplan.FormalityInformal, Movement: dayplan.LevelLow}
	items := []wardrobe.Item{
		fixtureItem("b1", taxonomy.CategoryTop, "blazer", []string{"navy"}, nil, []string{"business"}),
		fixtureItem("t1", taxonomy.CategoryTop, "tee", []string{"white"}, nil, []string{"casual"}),
	}
	result := FilterByFormality(items, schedule)
	require.Len(t, result.Kept, 1)
	require.Equal(t, "t1", result.Kept[0].ItemID)
	require.Equal(t, []string{ReasonTooFormal}, result.Removed["b1"])
}

func TestFilterByMovementHeels(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("h1", taxonomy.CategoryShoes, "heels", []string{"black"}, nil, []string{"party"}),
		fixtureItem("s1", taxonomy.CategoryShoes, "sneakers", []string{"white"}, nil, []string{"casual"}),
	}
	result := FilterByMovement(items, dayplan.ScheduleProfile{Movement: dayplan.LevelHigh})
	require.Len(t, result.Kept, 1)
	require.Equal(t, []string{ReasonHeelsMovement}, result.Removed["h1"])

	result = FilterByMovement(items, dayplan.ScheduleProfile{Movement: dayplan.LevelLow})
	require.Len(t, result.Kept, 2)
}

func TestFilterByMoodTagIntersection(t *testing.T) {
	profile := mood.Profile{Name: "urban", StyleTags: []string{"street", "casual"}}
	items := []wardrobe.Item{
		fixtureItem("m1", taxonomy.CategoryTop, "tee", []string{"black"}, nil, []string{"street"}),
		fixtureItem("m2", taxonomy.CategoryTop, "shirt", []string{"white"}, nil, []string{"formal"}),
	}
	result := FilterByMood(items, profile)
	require.Len(t, result.Kept, 1)
	require.Equal(t, "m1", result.Kept[0].ItemID)
	require.Equal(t, []string{ReasonMoodMismatch}, result.Removed["m2"])
}

func TestFilterByMoodRemovesUntaggedItems(t *testing.T) {
	profile := mood.Profile{Name: "neutral", StyleTags: []string{"casual", "business"}}
	items := []wardrobe.Item{
		fixtureItem("m1", taxonomy.CategoryTop, "shirt", []string{"blue"}, nil, nil),
		fixtureItem("m2", taxonomy.CategoryTop, "tee", []string{"white"}, nil, []string{"casual"}),
	}
	result := FilterByMood(items, profile)
	// an empty tag set can never intersect the mood tags
	require.Len(t, result.Kept, 1)
	require.Equal(t, "m2", result.Kept[0].ItemID)
	require.Equal(t, []string{ReasonMoodMismatch}, result.Removed["m1"])
}

func TestApplyFiltersOrderAndReasonAggregation(t *testing.T) {
	profile := mood.Profile{Name: "neutral", StyleTags: []string{"casual", "business"}}
	schedule := dayplan.ScheduleProfile{Formality: dayplan.FormalityBusiness, Movement: dayplan.LevelHigh}
	weather := dayplan.WeatherProfile{TemperatureRange: "cold", RainSensitivity: dayplan.RainHeavy}

	items := []wardrobe.Item{
		fixtureItem("t1", taxonomy.CategoryTop, "tee", []string{"white"}, []string{"linen"}, []string{"casual"}),
		fixtureItem("h1", taxonomy.CategoryShoes, "heels", []string{"black"}, nil, []string{"business"}),
		fixtureItem("b1", taxonomy.CategoryTop, "blazer", []string{"navy"}, []string{"wool"}, []string{"business"}),
		fixtureItem("p1", taxonomy.CategoryTop, "tee", []string{"red"}, []string{"wool"}, []string{"party"}),
	}

	result := ApplyFilters(items, schedule, weather, profile)

	require.Len(t, result.Steps, 4)
	require.Equal(t, StageWeather, result.Steps[0].Stage)
	require.Equal(t, StageFormality, result.Steps[1].Stage)
	require.Equal(t, StageMovement, result.Steps[2].Stage)
	require.Equal(t, StageMood, result.Steps[3].Stage)

	// the linen tee falls at the weather stage, never reaching formality
	require.Equal(t, []Removal{{Stage: StageWeather, Reason: ReasonTooLightCold}}, result.Reasons["t1"])
	require.Equal(t, []Removal{{Stage: StageMovement, Reason: ReasonHeelsMovement}}, result.Reasons["h1"])
	// the party tee survives until the mood stage but first trips formality
	require.Equal(t, []Removal{{Stage: StageFormality, Reason: ReasonTooCasual}}, result.Reasons["p1"])

	require.Len(t, result.Items, 1)
	require.Equal(t, "b1", result.Items[0].ItemID)
}
