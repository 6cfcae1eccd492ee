package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finlens/internal/news"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(5*time.Second, news.NewNormalizer("Asia/Shanghai"))
}

func TestFetchFlash(t *testing.T) {
	payload := `{"items":[
		{"title":"Chip subsidy announced","content":"details","publish_time":"2024-01-02 10:00:00","link":"https://example.com/1"},
		{"title":"Rate decision","content":"held steady","publish_time":"2024-01-02 09:30:00","link":"https://example.com/2"}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	f := newTestFetcher()
	items, err := f.Fetch(context.Background(), Source{Type: "flash", Name: "test", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Chip subsidy announced" {
		t.Errorf("unexpected title: %q", items[0].Title)
	}
	if items[0].PublishTime != "2024-01-02 10:00:00" {
		t.Errorf("unexpected publish time: %q", items[0].PublishTime)
	}
	if items[1].Link != "https://example.com/2" {
		t.Errorf("unexpected link: %q", items[1].Link)
	}
}

func TestFetchFlashMissingFieldsGetSentinel(t *testing.T) {
	payload := `{"items":[{"title":"","content":"","publish_time":"","link":""}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	f := newTestFetcher()
	items, err := f.Fetch(context.Background(), Source{Type: "flash", Name: "test", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if items[0].Title != news.UnknownField || items[0].Body != news.UnknownField || items[0].PublishTime != news.UnknownField {
		t.Errorf("expected sentinel for missing fields, got %+v", items[0])
	}
	if items[0].Link != "" {
		t.Errorf("link has no sentinel, got %q", items[0].Link)
	}
}

func TestFetchFlashHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newTestFetcher()
	_, err := f.Fetch(context.Background(), Source{Type: "flash", Name: "test", URL: server.URL})
	if err == nil {
		t.Error("expected error for HTTP 502")
	}
}

func TestFetchFlashBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	f := newTestFetcher()
	_, err := f.Fetch(context.Background(), Source{Type: "flash", Name: "test", URL: server.URL})
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestFetchRSS(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Markets</title>
    <item>
      <title>Article 1</title>
      <link>http://example.com/article1</link>
      <description>First article</description>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Article 2</title>
      <link>http://example.com/article2</link>
      <description>Second article</description>
    </item>
  </channel>
</rss>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer server.Close()

	f := newTestFetcher()
	items, err := f.Fetch(context.Background(), Source{Type: "rss", Name: "Markets", URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// 12:00 GMT is 20:00 in Shanghai.
	if items[0].PublishTime != "2024-01-01 20:00:00" {
		t.Errorf("expected zone-shifted canonical time, got %q", items[0].PublishTime)
	}
	if items[1].PublishTime != news.UnknownField {
		t.Errorf("expected sentinel for missing pubDate, got %q", items[1].PublishTime)
	}
}

func TestFetchAllPartialFailure(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"title":"ok","content":"c","publish_time":"2024-01-02 10:00:00","link":"l"}]}`))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	f := newTestFetcher()
	batch, err := f.FetchAll(context.Background(), []Source{
		{Type: "flash", Name: "good", URL: good.URL},
		{Type: "flash", Name: "bad", URL: bad.URL},
	})
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}
	if len(batch) != 1 {
		t.Errorf("expected 1 item from the surviving source, got %d", len(batch))
	}
}

func TestFetchAllTotalFailure(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	f := newTestFetcher()
	_, err := f.FetchAll(context.Background(), []Source{
		{Type: "flash", Name: "bad1", URL: bad.URL},
		{Type: "flash", Name: "bad2", URL: bad.URL},
	})
	if err == nil {
		t.Error("all sources failing must surface an error, not an empty success")
	}
}
