package stylist

import (
	"strings"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// Filter stage names, in pipeline order.
const (
	StageWeather   = "weather"
	StageFormality = "formality"
	StageMovement  = "movement"
	StageMood      = "mood"
)

// Removal reasons emitted by the filter stages.
const (
	ReasonPrecipitation  = "not suitable for precipitation"
	ReasonTooLightCold   = "too light for cold weather"
	ReasonTooCasual      = "too casual for business"
	ReasonTooFormal      = "too formal for informal day"
	ReasonSportyBusiness = "sporty excluded for business focus"
	ReasonHeelsMovement  = "heels avoided for high movement"
	ReasonMoodMismatch   = "style tags do not match mood"
)

// StageResult is the outcome of one filter stage.
type StageResult struct {
	Kept    []wardrobe.Item
	Removed map[string][]string
	Debug   StageDebug
}

// PipelineResult aggregates all stages; Reasons keeps the ordered removal
// history per item id across the whole pipeline.
type PipelineResult struct {
	Items   []wardrobe.Item
	Reasons map[string][]Removal
	Steps   []StageDebug
}

var wetSensitiveMaterials = []string{"suede", "canvas"}
var lightColdMaterials = []string{"linen", "thin cotton", "lightweight cotton"}

// FilterByWeather drops shoes that cannot take rain and tops too light for a
// cold day.
func FilterByWeather(items []wardrobe.Item, weather dayplan.WeatherProfile) StageResult {
	wet := weather.PrecipitationProbability > 0.5 ||
		weather.RainSensitivity == dayplan.RainLight ||
		weather.RainSensitivity == dayplan.RainHeavy
	cold := weather.TemperatureRange == "cold"

	result := StageResult{Removed: map[string][]string{}}
	for _, item := range items {
		switch {
		case wet && item.Category == taxonomy.CategoryShoes && hasAnyMaterial(item, wetSensitiveMaterials):
			result.Removed[item.ItemID] = append(result.Removed[item.ItemID], ReasonPrecipitation)
		case cold && item.Category == taxonomy.CategoryTop && hasAnyMaterial(item, lightColdMaterials):
			result.Removed[item.ItemID] = append(result.Removed[item.ItemID], ReasonTooLightCold)
		default:
			result.Kept = append(result.Kept, item)
		}
	}
	result.Debug = stageDebug(StageWeather, len(items), len(result.Kept), map[string]any{
		"layers_required": weather.LayersRequired,
		"precipitation":   weather.PrecipitationProbability,
		"cold":            cold,
		"wet":             wet,
	})
	if weather.LayersRequired == "two" || weather.LayersRequired == "two plus" {
		result.Debug.Details["outerwear_required"] = true
	}
	return result
}

// FilterByFormality enforces the day's formality requirement. Under a business
// requirement an item can pick up two removal reasons when it is both too
// casual and sporty.
func FilterByFormality(items []wardrobe.Item, schedule dayplan.ScheduleProfile) StageResult {
	fitnessDay := false
	for _, part := range schedule.DayParts {
		if strings.Contains(part, "gym") || strings.Contains(part, "fitness") {
			fitnessDay = true
			break
		}
	}

	result := StageResult{Removed: map[string][]string{}}
	for _, item := range items {
		var reasons []string
		switch schedule.Formality {
		case dayplan.FormalityBusiness:
			if !item.HasStyleTag("business") &&
				(item.HasStyleTag("casual") || item.SubCategory == "hoodie" || item.SubCategory == "tee" || item.SubCategory == "sneakers") {
				reasons = append(reasons, ReasonTooCasual)
			}
			if !fitnessDay && item.HasStyleTag("sporty") {
				reasons = append(reasons, ReasonSportyBusiness)
			}
		case dayplan.FormalityInformal:
			if item.SubCategory == "suit" || item.SubCategory == "blazer" || item.HasStyleTag("business") {
				reasons = append(reasons, ReasonTooFormal)
			}
		}
		if len(reasons) > 0 {
			result.Removed[item.ItemID] = append(result.Removed[item.ItemID], reasons...)
		} else {
			result.Kept = append(result.Kept, item)
		}
	}
	result.Debug = stageDebug(StageFormality, len(items), len(result.Kept), map[string]any{
		"formality":   schedule.Formality,
		"fitness_day": fitnessDay,
	})
	return result
}

// FilterByMovement drops heels on high-movement days.
func FilterByMovement(items []wardrobe.Item, schedule dayplan.ScheduleProfile) StageResult {
	result := StageResult{Removed: map[string][]string{}}
	for _, item := range items {
		if schedule.Movement == dayplan.LevelHigh && item.SubCategory == "heels" {
			result.Removed[item.ItemID] = append(result.Removed[item.ItemID], ReasonHeelsMovement)
		} else {
			result.Kept = append(result.Kept, item)
		}
	}
	result.Debug = stageDebug(StageMovement, len(items), len(result.Kept), map[string]any{
		"movement": schedule.Movement,
	})
	return result
}

// FilterByMood keeps items sharing at least one style tag with the mood
// profile. Untagged items never intersect, so they are removed too.
func FilterByMood(items []wardrobe.Item, profile mood.Profile) StageResult {
	result := StageResult{Removed: map[string][]string{}}
	for _, item := range items {
		if !hasAnyStyleTag(item, profile.StyleTags) {
			result.Removed[item.ItemID] = append(result.Removed[item.ItemID], ReasonMoodMismatch)
		} else {
			result.Kept = append(result.Kept, item)
		}
	}
	result.Debug = stageDebug(StageMood, len(items), len(result.Kept), map[string]any{
		"mood":            profile.Name,
		"mood_style_tags": profile.StyleTags,
		"palette":         profile.Palette,
	})
	return result
}

// ApplyFilters runs the four stages in fixed order and aggregates removal
// reasons as ordered (stage, reason) pairs.
func ApplyFilters(items []wardrobe.Item, schedule dayplan.ScheduleProfile, weather dayplan.WeatherProfile, profile mood.Profile) PipelineResult {
	result := PipelineResult{Reasons: map[string][]Removal{}}
	current := items

	stages := []struct {
		name string
		run  func([]wardrobe.Item) StageResult
	}{
		{StageWeather, func(in []wardrobe.Item) StageResult { return FilterByWeather(in, weather) }},
		{StageFormality, func(in []wardrobe.Item) StageResult { return FilterByFormality(in, schedule) }},
		{StageMovement, func(in []wardrobe.Item) StageResult { return FilterByMovement(in, schedule) }},
		{StageMood, func(in []wardrobe.Item) StageResult { return FilterByMood(in, profile) }},
	}
	for _, stage := range stages {
		stageResult := stage.run(current)
		for _, item := range current {
			for _, reason := range stageResult.Removed[item.ItemID] {
				result.Reasons[item.ItemID] = append(result.Reasons[item.ItemID], Removal{Stage: stage.name, Reason: reason})
			}
		}
		result.Steps = append(result.Steps, stageResult.Debug)
		current = stageResult.Kept
	}
	result.Items = current
	return result
}

func stageDebug(stage string, input, kept int, details map[string]any) StageDebug {
	return StageDebug{
		Stage:        stage,
		InputCount:   input,
		KeptCount:    kept,
		RemovedCount: input - kept,
		Details:      details,
	}
}

func hasAnyMaterial(item wardrobe.Item, materials []string) bool {
	for _, material := range materials {
		if item.HasMaterial(material) {
			return true
		}
	}
	return false
}

func hasAnyStyleTag(item wardrobe.Item, tags []string) bool {
	for _, tag := range tags {
		if item.HasStyleTag(tag) {
			return true
		}
	}
	return false
}
