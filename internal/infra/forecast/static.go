package forecast

import (
	"context"
	"time"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
)

// StaticProvider always returns the same forecast. Used when no weather
// endpoint is configured.
type StaticProvider struct {
	forecast dayplan.Forecast
}

// NewStaticProvider constructs the provider.
func NewStaticProvider(forecast dayplan.Forecast) *StaticProvider {
	return &StaticProvider{forecast: forecast}
}

func (p *StaticProvider) Forecast(context.Context, string, time.Time) (dayplan.Forecast, error) {
	return p.forecast, nil
}

var _ dayplan.ForecastProvider = (*StaticProvider)(nil)
