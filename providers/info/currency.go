package info

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Convert turns amount units of the from currency into the to
// currency using an open.er-api.com compatible rates endpoint.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (string, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return "", fmt.Errorf("currency: empty currency code")
	}

	u := c.CurrencyBaseURL + "/v6/latest/" + url.PathEscape(from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("currency http %d", resp.StatusCode)
	}
	var out ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("currency: invalid body: %w", err)
	}
	if out.Result != "success" {
		return "", fmt.Errorf("currency: provider result %q", out.Result)
	}
	rate, ok := out.Rates[to]
	if !ok {
		return "", fmt.Errorf("currency: unknown code %q", to)
	}
	return fmt.Sprintf("%.2f %s = %.2f %s", amount, from, amount*rate, to), nil
}
