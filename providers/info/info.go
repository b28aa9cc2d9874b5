// Package info wraps the third-party information services the command
// handlers call out to: weather, headlines, encyclopedia summaries and
// currency conversion. Each call is synchronous and bounded by the
// shared HTTP client timeout; callers translate errors into localized
// "unavailable" replies, raw provider errors never reach users.
package info

import (
	"net/http"
	"strings"
	"time"
)

type Client struct {
	WeatherBaseURL  string
	NewsFeedURL     string
	WikiBaseURL     string
	CurrencyBaseURL string
	HTTP            *http.Client
}

type Options struct {
	WeatherBaseURL  string
	NewsFeedURL     string
	WikiBaseURL     string
	CurrencyBaseURL string
	Timeout         time.Duration
}

func New(opts Options) *Client {
	if opts.WeatherBaseURL == "" {
		opts.WeatherBaseURL = "https://wttr.in"
	}
	if opts.WikiBaseURL == "" {
		opts.WikiBaseURL = "https://es.wikipedia.org"
	}
	if opts.CurrencyBaseURL == "" {
		opts.CurrencyBaseURL = "https://open.er-api.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		WeatherBaseURL:  strings.TrimRight(opts.WeatherBaseURL, "/"),
		NewsFeedURL:     opts.NewsFeedURL,
		WikiBaseURL:     strings.TrimRight(opts.WikiBaseURL, "/"),
		CurrencyBaseURL: strings.TrimRight(opts.CurrencyBaseURL, "/"),
		HTTP:            &http.Client{Timeout: opts.Timeout},
	}
}
