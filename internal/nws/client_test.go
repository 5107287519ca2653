// ABOUTME: Tests for the NWS client's header contract and failure normalization
// ABOUTME: Uses httptest servers standing in for the provider

package nws

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsFixedHeaders(t *testing.T) {
	var gotUserAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL, UserAgent: "weather-app/1.0", Logger: slog.Default()})
	_, ok := c.ActiveAlerts(context.Background(), "CA")

	require.True(t, ok)
	assert.Equal(t, "weather-app/1.0", gotUserAgent)
	assert.Equal(t, "application/geo+json", gotAccept)
}

func TestClient_PointsRoundsCoordinates(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"properties":{"forecast":"https://example.com/forecast"}}`))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	resp, ok := c.Points(context.Background(), 37.123456, -122.987654)

	require.True(t, ok)
	assert.Equal(t, "/points/37.1235,-122.9877", gotPath)
	assert.Equal(t, "https://example.com/forecast", resp.Properties.Forecast)
}

func TestClient_NonSuccessStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	_, ok := c.ActiveAlerts(context.Background(), "ZZ")
	assert.False(t, ok)
}

func TestClient_MalformedBodyIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>surprise</html>"))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	_, ok := c.Forecast(context.Background(), srv.URL+"/forecast")
	assert.False(t, ok)
}

func TestClient_NetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(ClientConfig{BaseURL: srv.URL})
	_, ok := c.ActiveAlerts(context.Background(), "CA")
	assert.False(t, ok)
}

func TestClient_DecodesAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/active/area/CA", r.URL.Path)
		w.Write([]byte(`{"features":[{"properties":{"event":"Flood Watch","areaDesc":"Marin County","severity":"Moderate","status":"Actual","headline":"Flooding expected"}}]}`))
	}))
	defer srv.Close()

	c := New(ClientConfig{BaseURL: srv.URL})
	resp, ok := c.ActiveAlerts(context.Background(), "CA")

	require.True(t, ok)
	require.Len(t, resp.Features, 1)
	assert.Equal(t, "Flood Watch", resp.Features[0].Properties.Event)
	assert.Equal(t, "Marin County", resp.Features[0].Properties.AreaDesc)
}
