package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"finlens/internal/news"
)

// fetchRSS retrieves an RSS/Atom feed and maps its entries to news items.
// Publish times are re-formatted into the canonical display layout so RSS
// entries sort consistently with flash items.
func (f *Fetcher) fetchRSS(ctx context.Context, src Source) ([]news.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "finlens/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", src.Name, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}

	items := make([]news.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if len(items) >= maxBatch {
			break
		}

		publish := news.UnknownField
		if entry.PublishedParsed != nil {
			publish = f.normalizer.Format(*entry.PublishedParsed)
		} else if entry.Published != "" {
			publish = f.normalizer.Normalize(entry.Published)
		}

		body := entry.Description
		if body == "" {
			body = entry.Content
		}

		items = append(items, news.Item{
			Title:       orUnknown(entry.Title),
			Body:        orUnknown(body),
			PublishTime: publish,
			Link:        entry.Link,
		})
	}
	return items, nil
}
