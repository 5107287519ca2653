// ABOUTME: End-to-end tests for the assembled gateway
// ABOUTME: Exercises the full router from HTTP request to tool result

package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormgate/stormgate/internal/config"
)

const e2eToken = "e2e-token"

func testGateway(t *testing.T, upstreamURL string) *Gateway {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.Token = e2eToken
	if upstreamURL != "" {
		cfg.Upstream.BaseURL = upstreamURL
	}

	gw, err := New(cfg, slog.Default())
	require.NoError(t, err)
	return gw
}

func doJSON(t *testing.T, h http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	gw := testGateway(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	gw.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnauthorizedThroughRouter(t *testing.T) {
	gw := testGateway(t, "")

	rec := doJSON(t, gw.Handler(), "", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
	assert.Equal(t, "Missing Authorization header", resp.Error.Message)
}

func TestToolsListThroughRouter(t *testing.T) {
	gw := testGateway(t, "")

	rec := doJSON(t, gw.Handler(), e2eToken, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	names := make([]string, len(resp.Result.Tools))
	for i, tool := range resp.Result.Tools {
		names[i] = tool.Name
	}
	assert.Equal(t, []string{"get_alerts", "get_forecast", "check_website"}, names)
}

func TestGetAlertsThroughRouter(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alerts/active/area/CA" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(`{"features":[{"properties":{
			"event":"Flood Warning","areaDesc":"Sacramento County",
			"severity":"Severe","status":"Actual",
			"headline":"Flood Warning issued for Sacramento County"}}]}`))
	}))
	defer upstream.Close()

	gw := testGateway(t, upstream.URL)

	rec := doJSON(t, gw.Handler(), e2eToken,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_alerts","arguments":{"state":"ca"}}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.Len(t, resp.Result.Content, 1)

	text := resp.Result.Content[0].Text
	assert.True(t, strings.HasPrefix(text, "Active alerts for CA:"))
	assert.Contains(t, text, "Flood Warning")
	assert.Contains(t, text, "Sacramento County")
}

func TestCheckWebsiteThroughRouter(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer site.Close()

	gw := testGateway(t, "")

	body := `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"check_website","arguments":{"url":"` + site.URL + `"}}}`
	rec := doJSON(t, gw.Handler(), e2eToken, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Result.Content, 1)
	assert.Contains(t, resp.Result.Content[0].Text, "Status: UP")
}

func TestUnknownAuthModeRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.Mode = "none"

	_, err := New(cfg, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth mode")
}
