package store

import (
	"time"

	"finlens/internal/news"
)

// FromItems converts cache items into persistable rows.
func FromItems(items []news.Item, now time.Time) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			Title:       it.Title,
			Body:        it.Body,
			Link:        it.Link,
			PublishTime: it.PublishTime,
			CreatedAt:   now,
		})
	}
	return rows
}

// ToItems converts persisted rows back into cache items.
func ToItems(rows []Row) []news.Item {
	items := make([]news.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, news.Item{
			Title:       r.Title,
			Body:        r.Body,
			Link:        r.Link,
			PublishTime: r.PublishTime,
		})
	}
	return items
}
