// ABOUTME: Website pack provides the check_website liveness tool
// ABOUTME: A failed probe is a meaningful result, not an upstream failure

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/stormgate/stormgate/internal/format"
	"github.com/stormgate/stormgate/internal/probe"
)

// WebsitePack creates the website pack backed by the given prober.
func WebsitePack(p *probe.Prober) *Pack {
	h := &websiteHandlers{prober: p}
	return &Pack{
		ID: "builtin:website",
		Tools: []*Tool{
			{
				Definition: Definition{
					Name:        "check_website",
					Description: "Check whether a website is up and how fast it responds",
					InputSchema: json.RawMessage(`{"type":"object","properties":{"url":{"type":"string","format":"uri","description":"Absolute URL to probe"}},"required":["url"]}`),
				},
				Validate: validateWebsiteInput,
				Handler:  h.CheckWebsite,
			},
		},
	}
}

type websiteHandlers struct {
	prober *probe.Prober
}

type websiteInput struct {
	URL string `json:"url"`
}

func validateWebsiteInput(input json.RawMessage) error {
	var in websiteInput
	if err := json.Unmarshal(input, &in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	u, err := url.Parse(in.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("url must be a valid absolute URL")
	}
	return nil
}

func (h *websiteHandlers) CheckWebsite(ctx context.Context, input json.RawMessage) (Result, error) {
	var in websiteInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, fmt.Errorf("invalid input: %w", err)
	}

	res := h.prober.Check(ctx, in.URL)
	return Text(format.Liveness(res)), nil
}
