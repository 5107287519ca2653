// ABOUTME: Website liveness probe using lightweight HEAD requests
// ABOUTME: A failed probe is the result, never an error

package probe

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout caps a single probe.
const DefaultTimeout = 10 * time.Second

// Status classifications.
const (
	StatusUp       = "UP"
	StatusDegraded = "DEGRADED"
	StatusDown     = "DOWN"
)

// Result captures one liveness check. ResponseTime is recorded even when
// the probe fails. Header-derived fields are only populated when the target
// responded.
type Result struct {
	URL          string
	Reachable    bool
	Status       string
	StatusCode   int
	StatusText   string
	ResponseTime time.Duration
	Server       string
	ContentType  string
	Err          string
}

// Prober issues existence probes against URLs. Unlike the weather client it
// forces no headers: only the HTTP method and the timeout are controlled.
type Prober struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Prober with the given per-probe timeout.
func New(timeout time.Duration, logger *slog.Logger) *Prober {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Check issues a HEAD request against the URL and classifies the outcome:
// UP for a 2xx response, DEGRADED for any other response, DOWN when no
// response arrived at all (timeout, connection refused, DNS failure).
func (p *Prober) Check(ctx context.Context, url string) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res := Result{URL: url, Status: StatusDown}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		res.ResponseTime = time.Since(start)
		res.Err = err.Error()
		return res
	}

	resp, err := p.client.Do(req)
	res.ResponseTime = time.Since(start)
	if err != nil {
		res.Err = err.Error()
		p.logger.Debug("probe failed", "url", url, "error", err)
		return res
	}
	defer resp.Body.Close()

	res.Reachable = true
	res.StatusCode = resp.StatusCode
	res.StatusText = http.StatusText(resp.StatusCode)
	res.Server = resp.Header.Get("Server")
	res.ContentType = resp.Header.Get("Content-Type")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		res.Status = StatusUp
	} else {
		res.Status = StatusDegraded
	}
	return res
}
