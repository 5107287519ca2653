// ABOUTME: Renders provider records and probe results as uniform text blocks
// ABOUTME: A single placeholder rule covers every missing field

package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stormgate/stormgate/internal/nws"
	"github.com/stormgate/stormgate/internal/probe"
)

// Placeholder stands in for any absent provider field.
const Placeholder = "Unknown"

// NoHeadline stands in for a missing alert headline.
const NoHeadline = "No headline"

// separator terminates every alert and forecast block.
const separator = "---"

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Alert renders one alert record as a text block ending in the separator.
func Alert(p nws.AlertProperties) string {
	headline := p.Headline
	if headline == "" {
		headline = NoHeadline
	}
	return strings.Join([]string{
		"Event: " + orPlaceholder(p.Event),
		"Area: " + orPlaceholder(p.AreaDesc),
		"Severity: " + orPlaceholder(p.Severity),
		"Status: " + orPlaceholder(p.Status),
		"Headline: " + headline,
		separator,
	}, "\n")
}

// Period renders one forecast period as a text block ending in the
// separator. The temperature unit defaults to "F" when absent.
func Period(p nws.Period) string {
	unit := p.TemperatureUnit
	if unit == "" {
		unit = "F"
	}
	temp := Placeholder
	if p.Temperature != nil {
		temp = strconv.FormatFloat(*p.Temperature, 'f', -1, 64)
	}
	return strings.Join([]string{
		orPlaceholder(p.Name) + ":",
		fmt.Sprintf("Temperature: %s°%s", temp, unit),
		fmt.Sprintf("Wind: %s %s", orPlaceholder(p.WindSpeed), orPlaceholder(p.WindDirection)),
		orPlaceholder(p.ShortForecast),
		separator,
	}, "\n")
}

// Liveness renders a probe result. DOWN results omit the header-derived
// fields entirely; the elapsed time is always present.
func Liveness(r probe.Result) string {
	lines := []string{
		"Status check for " + r.URL + ":",
		"Status: " + r.Status,
	}
	if r.Reachable {
		lines = append(lines,
			fmt.Sprintf("HTTP Status: %d %s", r.StatusCode, r.StatusText),
			fmt.Sprintf("Response Time: %d ms", r.ResponseTime.Milliseconds()),
			"Server: "+orPlaceholder(r.Server),
			"Content-Type: "+orPlaceholder(r.ContentType),
		)
	} else {
		lines = append(lines,
			"Error: "+r.Err,
			fmt.Sprintf("Response Time: %d ms", r.ResponseTime.Milliseconds()),
		)
	}
	return strings.Join(lines, "\n")
}
