// ABOUTME: Typed views of the NWS geo-JSON documents the gateway consumes
// ABOUTME: Every provider field is optional; formatting substitutes placeholders

package nws

// AlertsResponse is the alerts-by-area document.
type AlertsResponse struct {
	Features []AlertFeature `json:"features"`
}

// AlertFeature wraps one alert record.
type AlertFeature struct {
	Properties AlertProperties `json:"properties"`
}

// AlertProperties holds the alert fields the gateway renders. The provider
// may omit any of them; empty strings stand in for absent values.
type AlertProperties struct {
	Event    string `json:"event"`
	AreaDesc string `json:"areaDesc"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
	Headline string `json:"headline"`
}

// PointsResponse is the grid point lookup document. It maps a coordinate
// pair to the forecast resource locator consumed by Forecast.
type PointsResponse struct {
	Properties PointProperties `json:"properties"`
}

// PointProperties carries the forecast URL for a grid point.
type PointProperties struct {
	Forecast string `json:"forecast"`
}

// ForecastResponse is the forecast document for a grid point.
type ForecastResponse struct {
	Properties ForecastProperties `json:"properties"`
}

// ForecastProperties holds the ordered forecast periods.
type ForecastProperties struct {
	Periods []Period `json:"periods"`
}

// Period is one forecast period. Temperature is a pointer so a missing
// value is distinguishable from zero degrees.
type Period struct {
	Name            string   `json:"name"`
	Temperature     *float64 `json:"temperature"`
	TemperatureUnit string   `json:"temperatureUnit"`
	WindSpeed       string   `json:"windSpeed"`
	WindDirection   string   `json:"windDirection"`
	ShortForecast   string   `json:"shortForecast"`
}
