package dayplan

import (
	"fmt"
	"strings"
)

// DebugSummary explains which synthesis rules fired.
type DebugSummary struct {
	ScheduleSignals []string `json:"scheduleSignals"`
	WeatherSignals  []string `json:"weatherSignals"`
	RulesApplied    []string `json:"rulesApplied"`
}

var warmthByTemperatureRange = map[string]string{
	"cold": LevelHigh,
	"cool": LevelMedium,
	"mild": LevelMedium,
	"warm": LevelLow,
	"hot":  LevelLow,
}

// Synthesize combines schedule and weather profiles into a DailyContext using
// fixed rule tables.
func Synthesize(schedule ScheduleProfile, weather WeatherProfile) (DailyContext, DebugSummary) {
	warmth, ok := warmthByTemperatureRange[weather.TemperatureRange]
	if !ok {
		warmth = LevelMedium
	}
	risk := weatherRisk(weather)

	var constraints []string
	if schedule.Movement == LevelHigh {
		constraints = append(constraints, "prioritize breathable and flexible pieces")
	}
	if risk == LevelHigh {
		constraints = append(constraints, "include waterproof outer layer")
	}

	ctx := DailyContext{
		FormalityRequirement: schedule.Formality,
		MovementRequirement:  schedule.Movement,
		WarmthRequirement:    warmth,
		WeatherRiskLevel:     risk,
		SpecialConstraints:   constraints,
	}
	debug := DebugSummary{
		ScheduleSignals: []string{
			fmt.Sprintf("formality=%s", schedule.Formality),
			fmt.Sprintf("movement=%s", schedule.Movement),
			fmt.Sprintf("day_parts=%s", strings.Join(schedule.DayParts, ",")),
		},
		WeatherSignals: []string{
			fmt.Sprintf("temp_range=%s", weather.TemperatureRange),
			fmt.Sprintf("rain=%s", weather.RainSensitivity),
			fmt.Sprintf("condition=%s", weather.Condition),
		},
		RulesApplied: []string{
			"warmth requirement derived from temperature range thresholds",
			"weather risk derived from rain sensitivity and condition",
			"special constraints added for high movement and high weather risk",
		},
	}
	return ctx, debug
}

func weatherRisk(weather WeatherProfile) string {
	condition := strings.ToLower(weather.Condition)
	if weather.RainSensitivity == RainHeavy || condition == "rain" || condition == "storm" {
		return LevelHigh
	}
	if weather.RainSensitivity == RainLight || condition == "cloudy" {
		return LevelMedium
	}
	return LevelLow
}

// WeatherFromForecast maps a raw forecast onto the weather profile bands.
func WeatherFromForecast(forecast Forecast) WeatherProfile {
	profile := WeatherProfile{
		PrecipitationProbability: forecast.PrecipitationProbability,
		Condition:                strings.ToLower(forecast.Condition),
	}
	switch {
	case forecast.TempMaxC < 10:
		profile.TemperatureRange = "cold"
	case forecast.TempMaxC < 16:
		profile.TemperatureRange = "cool"
	case forecast.TempMaxC < 24:
		profile.TemperatureRange = "mild"
	case forecast.TempMaxC < 30:
		profile.TemperatureRange = "warm"
	default:
		profile.TemperatureRange = "hot"
	}

	switch {
	case forecast.PrecipitationProbability > 0.6 || profile.Condition == "rain" || profile.Condition == "storm":
		profile.RainSensitivity = RainHeavy
	case forecast.PrecipitationProbability > 0.3 || profile.Condition == "drizzle":
		profile.RainSensitivity = RainLight
	default:
		profile.RainSensitivity = RainDry
	}

	switch profile.TemperatureRange {
	case "cold":
		profile.LayersRequired = "two plus"
	case "cool":
		profile.LayersRequired = "two"
	default:
		profile.LayersRequired = "one"
	}
	return profile
}

var formalKeywords = []string{"interview", "client", "board", "presentation", "keynote"}
var businessKeywords = []string{"meeting", "sync", "review", "standup", "planning", "office"}
var smartCasualKeywords = []string{"dinner", "party", "date", "drinks"}
var fitnessKeywords = []string{"gym", "run", "yoga", "climb", "training", "fitness"}

// ScheduleFromEvents classifies calendar events into a schedule profile.
func ScheduleFromEvents(events []Event) ScheduleProfile {
	profile := DefaultSchedule()
	if len(events) == 0 {
		return profile
	}

	locations := make(map[string]struct{})
	fitness := false
	for _, event := range events {
		title := strings.ToLower(event.Title)
		switch {
		case containsAny(title, formalKeywords):
			profile.Formality = FormalityFormal
		case containsAny(title, businessKeywords) && profile.Formality != FormalityFormal:
			profile.Formality = FormalityBusiness
		case containsAny(title, smartCasualKeywords) && profile.Formality == FormalityInformal:
			profile.Formality = FormalitySmartCasual
		}
		if containsAny(title, fitnessKeywords) {
			fitness = true
			profile.DayParts = append(profile.DayParts, dayPart(event)+":fitness")
		} else {
			profile.DayParts = append(profile.DayParts, dayPart(event)+":"+firstWord(title))
		}
		if event.Location != "" {
			locations[strings.ToLower(event.Location)] = struct{}{}
		}
	}

	switch {
	case fitness || len(locations) >= 3 || len(events) >= 4:
		profile.Movement = LevelHigh
	case len(locations) == 2 || len(events) >= 2:
		profile.Movement = LevelMedium
	}
	return profile
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func dayPart(event Event) string {
	if event.IsAllDay {
		return "all_day"
	}
	switch hour := event.Start.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

func firstWord(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "busy"
	}
	return fields[0]
}
