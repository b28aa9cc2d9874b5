package info

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(srv *httptest.Server) *Client {
	return New(Options{
		WeatherBaseURL:  srv.URL,
		NewsFeedURL:     srv.URL + "/feed",
		WikiBaseURL:     srv.URL,
		CurrencyBaseURL: srv.URL,
		Timeout:         5 * time.Second,
	})
}

func TestWeatherReturnsLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Madrid" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("Madrid: ☀️ +28°C\n"))
	}))
	defer srv.Close()

	got, err := testClient(srv).Weather(context.Background(), "Madrid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "Madrid:") {
		t.Fatalf("unexpected weather line: %q", got)
	}
}

func TestWeatherEmptyCityIsError(t *testing.T) {
	c := New(Options{})
	if _, err := c.Weather(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty city")
	}
}

func TestHeadlinesCapsAtFive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"articles": [
			{"title": "uno"}, {"title": "dos"}, {"title": "tres"},
			{"title": "cuatro"}, {"title": "cinco"}, {"title": "seis"}
		]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv).Headlines(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 headlines, got %d: %q", len(lines), got)
	}
	if lines[0] != "- uno" {
		t.Fatalf("unexpected first headline: %q", lines[0])
	}
}

func TestHeadlinesUnconfiguredFeedIsError(t *testing.T) {
	c := New(Options{})
	if _, err := c.Headlines(context.Background()); err == nil {
		t.Fatal("expected error without feed url")
	}
}

func TestSummaryFormatsTitleAndExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/rest_v1/page/summary/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"title": "Kitsune", "extract": "Espíritu zorro del folclore japonés."}`))
	}))
	defer srv.Close()

	got, err := testClient(srv).Summary(context.Background(), "kitsune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Kitsune: Espíritu zorro del folclore japonés." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummaryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testClient(srv).Summary(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for missing page")
	}
}

func TestConvertUsesRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/latest/USD" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"result": "success", "rates": {"EUR": 0.5}}`))
	}))
	defer srv.Close()

	got, err := testClient(srv).Convert(context.Background(), 10, "usd", "eur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10.00 USD = 5.00 EUR" {
		t.Fatalf("unexpected conversion: %q", got)
	}
}

func TestConvertUnknownTargetIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "rates": {"EUR": 0.5}}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv).Convert(context.Background(), 1, "USD", "XXX"); err == nil {
		t.Fatal("expected error for unknown currency")
	}
}
