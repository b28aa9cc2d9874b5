package info

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type wikiSummaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary looks a term up against a Wikipedia REST summary endpoint
// and returns title plus extract.
func (c *Client) Summary(ctx context.Context, term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", fmt.Errorf("wiki: empty term")
	}

	u := c.WikiBaseURL + "/api/rest_v1/page/summary/" + url.PathEscape(strings.ReplaceAll(term, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("wiki: no page for %q", term)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("wiki http %d", resp.StatusCode)
	}
	var out wikiSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("wiki: invalid body: %w", err)
	}
	if strings.TrimSpace(out.Extract) == "" {
		return "", fmt.Errorf("wiki: empty extract for %q", term)
	}
	return out.Title + ": " + out.Extract, nil
}
