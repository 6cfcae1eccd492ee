// Package fetch retrieves flash-news batches from external sources and
// converts them to news.Item values. It does not store anything - the
// caller decides what happens to a batch.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"finlens/internal/news"
)

// maxBatch caps the items taken from a single source per fetch. Sources
// historically return between 50 and 200 items; anything beyond that is
// noise for a flash-news view.
const maxBatch = 200

// maxConcurrentFetches limits parallel source fetches within one refresh.
const maxConcurrentFetches = 4

// Source is a feed source configuration.
type Source struct {
	Type string `json:"type"` // "flash" (JSON endpoint) or "rss"
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Fetcher retrieves items from configured sources. Safe for reuse across
// refresh cycles; one rate limiter covers all sources so a short refresh
// interval cannot hammer the upstreams.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	normalizer *news.Normalizer
}

// NewFetcher creates a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration, normalizer *news.Normalizer) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		normalizer: normalizer,
	}
}

// Fetch retrieves one source's latest batch, newest first.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]news.Item, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	switch src.Type {
	case "rss":
		return f.fetchRSS(ctx, src)
	default:
		return f.fetchFlash(ctx, src)
	}
}

// FetchAll fetches every source in parallel and returns the combined batch.
// Per-source failures are collected, not fatal: the batch from the sources
// that succeeded is still returned, and err is non-nil only when every
// source failed (a total failure must not look like an empty success).
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) ([]news.Item, error) {
	var (
		mu       sync.Mutex
		combined []news.Item
		firstErr error
		failures int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, src := range sources {
		g.Go(func() error {
			items, err := f.Fetch(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", src.Name, err)
				}
				return nil // report per-source, never fail the group
			}
			combined = append(combined, items...)
			return nil
		})
	}
	_ = g.Wait()

	if failures == len(sources) && len(sources) > 0 {
		return nil, firstErr
	}
	return combined, nil
}

// flashResponse is the JSON shape of a flash-news endpoint.
type flashResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		PublishTime string `json:"publish_time"`
		Link        string `json:"link"`
	} `json:"items"`
}

// fetchFlash retrieves a JSON flash-news batch. Missing fields come back as
// the "unknown" sentinel rather than empty strings so downstream display
// and dedup stay well-defined.
func (f *Fetcher) fetchFlash(ctx context.Context, src Source) ([]news.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "finlens/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", src.Name, resp.StatusCode)
	}

	var body flashResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}

	items := make([]news.Item, 0, len(body.Items))
	for _, raw := range body.Items {
		if len(items) >= maxBatch {
			break
		}
		items = append(items, news.Item{
			Title:       orUnknown(raw.Title),
			Body:        orUnknown(raw.Content),
			PublishTime: f.normalizer.Normalize(orUnknown(raw.PublishTime)),
			Link:        raw.Link,
		})
	}
	return items, nil
}

// orUnknown substitutes the sentinel for a missing field.
func orUnknown(s string) string {
	if s == "" {
		return news.UnknownField
	}
	return s
}
