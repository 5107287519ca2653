// ABOUTME: Weather pack provides the get_alerts and get_forecast tools
// ABOUTME: Both orchestrate NWS lookups and fall back to descriptive text

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stormgate/stormgate/internal/format"
	"github.com/stormgate/stormgate/internal/nws"
)

// WeatherPack creates the weather pack backed by the given NWS client.
func WeatherPack(client *nws.Client) *Pack {
	h := &weatherHandlers{client: client}
	return &Pack{
		ID: "builtin:weather",
		Tools: []*Tool{
			{
				Definition: Definition{
					Name:        "get_alerts",
					Description: "Get active weather alerts for a US state",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"state":{"type":"string","minLength":2,"maxLength":2,"description":"Two-letter US state code"}},"required":["state"]}`),
				},
				Validate: validateAlertsInput,
				Handler:  h.GetAlerts,
			},
			{
				Definition: Definition{
					Name:        "get_forecast",
					Description: "Get the weather forecast for a coordinate",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"latitude":{"type":"number","minimum":-90,"maximum":90},"longitude":{"type":"number","minimum":-180,"maximum":180}},"required":["latitude","longitude"]}`),
				},
				Validate: validateForecastInput,
				Handler:  h.GetForecast,
			},
		},
	}
}

type weatherHandlers struct {
	client *nws.Client
}

type alertsInput struct {
	State string `json:"state"`
}

func validateAlertsInput(input json.RawMessage) error {
	var in alertsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if len(in.State) != 2 {
		return fmt.Errorf("state must be a two-letter US state code")
	}
	return nil
}

func (h *weatherHandlers) GetAlerts(ctx context.Context, input json.RawMessage) (Result, error) {
	var in alertsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, fmt.Errorf("invalid input: %w", err)
	}

	code := strings.ToUpper(in.State)

	resp, ok := h.client.ActiveAlerts(ctx, code)
	if !ok {
		return Text("Failed to retrieve alerts data"), nil
	}

	if len(resp.Features) == 0 {
		return Text("No active alerts for " + code), nil
	}

	blocks := make([]string, 0, len(resp.Features))
	for _, f := range resp.Features {
		blocks = append(blocks, format.Alert(f.Properties))
	}

	return Text("Active alerts for " + code + ":\n\n" + strings.Join(blocks, "\n")), nil
}

type forecastInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func validateForecastInput(input json.RawMessage) error {
	var in forecastInput
	if err := json.Unmarshal(input, &in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// GetForecast performs the two dependent lookups: grid point resolution,
// then the forecast fetch at the locator the first call returned. The
// second call never runs when the first fails.
func (h *weatherHandlers) GetForecast(ctx context.Context, input json.RawMessage) (Result, error) {
	var in forecastInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, fmt.Errorf("invalid input: %w", err)
	}

	points, ok := h.client.Points(ctx, in.Latitude, in.Longitude)
	if !ok {
		return Text(fmt.Sprintf(
			"Failed to retrieve grid point data for coordinates: %v, %v. This location may not be supported by the NWS API (only US locations are supported).",
			in.Latitude, in.Longitude)), nil
	}

	forecastURL := points.Properties.Forecast
	if forecastURL == "" {
		return Text("Failed to get forecast URL from grid point data"), nil
	}

	forecast, ok := h.client.Forecast(ctx, forecastURL)
	if !ok {
		return Text("Failed to retrieve forecast data"), nil
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		return Text("No forecast periods available"), nil
	}

	blocks := make([]string, 0, len(periods))
	for _, p := range periods {
		blocks = append(blocks, format.Period(p))
	}

	header := fmt.Sprintf("Forecast for %v, %v:", in.Latitude, in.Longitude)
	return Text(header + "\n\n" + strings.Join(blocks, "\n")), nil
}
