package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ProviderClient calls the external rate-provider API for the latest rates
// quoted against the platform's home currency. Every call counts against
// the monthly quota, so callers go through the refresh scheduler.
type ProviderClient struct {
	http     *http.Client
	baseURL  string
	homeCode string
}

type apiResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

func (c *ProviderClient) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + c.homeCode

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for base %q: %w", c.homeCode, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for base %q: %w", c.homeCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for base %q: %s", resp.StatusCode, c.homeCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for base %q: %w", c.homeCode, err)
	}

	if body.Result != "success" {
		return nil, fmt.Errorf("api returned non-success result for base %q: %s", c.homeCode, body.Result)
	}

	// The API quotes foreign units per one home unit; the platform stores
	// the inverse (home currency per one foreign unit).
	rates := make(map[string]decimal.Decimal, len(body.ConversionRates))
	for code, v := range body.ConversionRates {
		if code == c.homeCode || !v.IsPositive() {
			continue
		}
		rates[code] = one.Div(v)
	}
	return rates, nil
}

var one = decimal.NewFromInt(1)

func NewProviderClient(httpClient *http.Client, baseURL string, homeCode string) *ProviderClient {
	return &ProviderClient{http: httpClient, baseURL: baseURL, homeCode: homeCode}
}
