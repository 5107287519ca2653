// ABOUTME: Minimal client for the National Weather Service API
// ABOUTME: Normalizes every failure into a single "unavailable" outcome

package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds each provider call. The upstream API has no SLA;
// an unbounded request would hang the calling tool.
const DefaultTimeout = 15 * time.Second

const acceptGeoJSON = "application/geo+json"

// ClientConfig holds configuration for the NWS client.
type ClientConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Client fetches JSON documents from the NWS API. Every call is a single
// attempt; callers see only success or "unavailable" and shape their own
// fallback text. Failure reasons are logged for operators, never returned.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

// New creates a Client. Zero-valued config fields get defaults.
func New(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "weather-app/1.0"
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// ActiveAlerts fetches active alerts for a two-letter area code.
// The code is used as given; callers normalize case.
func (c *Client) ActiveAlerts(ctx context.Context, area string) (*AlertsResponse, bool) {
	var out AlertsResponse
	if !c.get(ctx, c.baseURL+"/alerts/active/area/"+area, &out) {
		return nil, false
	}
	return &out, true
}

// Points resolves a coordinate pair to its grid point metadata. Coordinates
// are rounded to 4 decimal places in the request URL, which is the precision
// the points endpoint accepts.
func (c *Client) Points(ctx context.Context, lat, lon float64) (*PointsResponse, bool) {
	var out PointsResponse
	url := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
	if !c.get(ctx, url, &out) {
		return nil, false
	}
	return &out, true
}

// Forecast fetches the forecast document at the locator returned by Points.
func (c *Client) Forecast(ctx context.Context, url string) (*ForecastResponse, bool) {
	var out ForecastResponse
	if !c.get(ctx, url, &out) {
		return nil, false
	}
	return &out, true
}

// get performs one GET with the fixed identification and accept headers and
// decodes the body into out. Network errors, non-2xx statuses, and malformed
// bodies all collapse to false.
func (c *Client) get(ctx context.Context, url string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("building NWS request failed", "url", url, "error", err)
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("NWS request failed", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("NWS returned non-success status", "url", url, "status", resp.StatusCode)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("decoding NWS response failed", "url", url, "error", err)
		return false
	}
	return true
}
