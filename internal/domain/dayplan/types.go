package dayplan

import "time"

// Formality requirement levels.
const (
	FormalityInformal    = "informal"
	FormalityBusiness    = "business"
	FormalityFormal      = "formal"
	FormalitySmartCasual = "smart casual"
)

// Shared low/medium/high bands for movement, warmth and weather risk.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Rain sensitivity bands derived from a forecast.
const (
	RainDry   = "dry"
	RainLight = "light rain"
	RainHeavy = "heavy rain"
)

// ScheduleProfile summarizes one day's calendar into styling signals.
type ScheduleProfile struct {
	Formality string   `json:"formality"`
	Movement  string   `json:"movement"`
	DayParts  []string `json:"dayParts,omitempty"`
}

// WeatherProfile summarizes a forecast into styling signals.
type WeatherProfile struct {
	TemperatureRange         string  `json:"temperatureRange"`
	RainSensitivity          string  `json:"rainSensitivity"`
	LayersRequired           string  `json:"layersRequired"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	Condition                string  `json:"condition,omitempty"`
}

// DailyContext is the synthesized requirement record the engine scores against.
type DailyContext struct {
	FormalityRequirement string   `json:"formalityRequirement"`
	MovementRequirement  string   `json:"movementRequirement"`
	WarmthRequirement    string   `json:"warmthRequirement"`
	WeatherRiskLevel     string   `json:"weatherRiskLevel"`
	SpecialConstraints   []string `json:"specialConstraints,omitempty"`
}

// Event is a minimal calendar event safe for logs.
type Event struct {
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	IsAllDay bool      `json:"isAllDay,omitempty"`
}

// Forecast is the raw weather payload produced by a provider.
type Forecast struct {
	TempMinC                 float64 `json:"tempMinC"`
	TempMaxC                 float64 `json:"tempMaxC"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	WindSpeedKmh             float64 `json:"windSpeedKmh"`
	Condition                string  `json:"condition"`
}

// DefaultSchedule is assumed when no calendar signals are available.
func DefaultSchedule() ScheduleProfile {
	return ScheduleProfile{Formality: FormalityInformal, Movement: LevelLow}
}

// DefaultWeather is assumed when no forecast is available.
func DefaultWeather() WeatherProfile {
	return WeatherProfile{TemperatureRange: "mild", RainSensitivity: RainDry, LayersRequired: "one"}
}

// DefaultContext mirrors the defaults a recommendation request falls back to.
func DefaultContext(schedule ScheduleProfile) DailyContext {
	return DailyContext{
		FormalityRequirement: schedule.Formality,
		MovementRequirement:  schedule.Movement,
		WarmthRequirement:    LevelMedium,
		WeatherRiskLevel:     LevelLow,
	}
}
