package dayplan

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

// EventsProvider fetches calendar events for one day.
type EventsProvider interface {
	Events(ctx context.Context, userID string, day time.Time) ([]Event, error)
}

// ForecastProvider fetches the weather forecast for one day.
type ForecastProvider interface {
	Forecast(ctx context.Context, location string, day time.Time) (Forecast, error)
}

// Plan bundles the synthesized context with the profiles it came from.
type Plan struct {
	Schedule ScheduleProfile `json:"schedule"`
	Weather  WeatherProfile  `json:"weather"`
	Context  DailyContext    `json:"context"`
	Debug    DebugSummary    `json:"debug"`
}

// Service synthesizes daily contexts from external calendar/weather providers.
type Service interface {
	Plan(ctx context.Context, userID, location string, day time.Time) (Plan, error)
}

type service struct {
	events   EventsProvider
	forecast ForecastProvider
	logger   *slog.Logger
}

// NewService wires up the context synthesis domain.
func NewService(events EventsProvider, forecast ForecastProvider, logger *slog.Logger) Service {
	return &service{events: events, forecast: forecast, logger: logger.With("component", "dayplan.service")}
}

// Plan degrades to default profiles when a provider fails: a missing calendar
// or forecast must not block an outfit recommendation.
func (s *service) Plan(ctx context.Context, userID, location string, day time.Time) (Plan, error) {
	if userID == "" {
		return Plan{}, apperrors.Wrap("invalid_input", "user_id cannot be empty", nil)
	}

	schedule := DefaultSchedule()
	if s.events != nil {
		events, err := s.events.Events(ctx, userID, day)
		if err != nil {
			s.logger.Warn("calendar provider failed, using default schedule", "user_id", userID, "error", err)
		} else {
			schedule = ScheduleFromEvents(events)
		}
	}

	weather := DefaultWeather()
	if s.forecast != nil {
		forecast, err := s.forecast.Forecast(ctx, location, day)
		if err != nil {
			s.logger.Warn("forecast provider failed, using default weather", "location", location, "error", err)
		} else {
			weather = WeatherFromForecast(forecast)
		}
	}

	dailyCtx, debug := Synthesize(schedule, weather)
	s.logger.Info("daily context synthesized",
		"user_id", userID,
		"formality", dailyCtx.FormalityRequirement,
		"movement", dailyCtx.MovementRequirement,
		"warmth", dailyCtx.WarmthRequirement,
		"risk", dailyCtx.WeatherRiskLevel,
	)
	return Plan{Schedule: schedule, Weather: weather, Context: dailyCtx, Debug: debug}, nil
}
