package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/pkg/util"
)

// Client fetches daily forecasts from a JSON weather endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Forecast retrieves the forecast for one location and day.
func (c *Client) Forecast(ctx context.Context, location string, day time.Time) (dayplan.Forecast, error) {
	endpoint := fmt.Sprintf("%s/forecast?location=%s&date=%s",
		c.baseURL, url.QueryEscape(location), util.DayKey(day))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return dayplan.Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dayplan.Forecast{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return dayplan.Forecast{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dayplan.Forecast{}, fmt.Errorf("read forecast response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return dayplan.Forecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	return dayplan.Forecast{
		TempMinC:                 raw.TempMinC,
		TempMaxC:                 raw.TempMaxC,
		PrecipitationProbability: raw.PrecipitationProbability,
		WindSpeedKmh:             raw.WindSpeedKmh,
		Condition:                strings.ToLower(strings.TrimSpace(raw.Condition)),
	}, nil
}

type apiResponse struct {
	TempMinC                 float64 `json:"temp_min_c"`
	TempMaxC                 float64 `json:"temp_max_c"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
	WindSpeedKmh             float64 `json:"wind_speed_kmh"`
	Condition                string  `json:"condition"`
}

var _ dayplan.ForecastProvider = (*Client)(nil)
