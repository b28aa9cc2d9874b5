package info

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const maxHeadlines = 5

type newsFeedResponse struct {
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Headlines fetches the configured news feed and returns up to five
// titles, one per line. The feed URL carries any required API key.
func (c *Client) Headlines(ctx context.Context) (string, error) {
	if strings.TrimSpace(c.NewsFeedURL) == "" {
		return "", fmt.Errorf("news: feed url not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.NewsFeedURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("news http %d", resp.StatusCode)
	}
	var out newsFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("news: invalid feed body: %w", err)
	}

	titles := make([]string, 0, maxHeadlines)
	for _, a := range out.Articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		titles = append(titles, "- "+title)
		if len(titles) == maxHeadlines {
			break
		}
	}
	if len(titles) == 0 {
		return "", fmt.Errorf("news: feed returned no articles")
	}
	return strings.Join(titles, "\n"), nil
}
