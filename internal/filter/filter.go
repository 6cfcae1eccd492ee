// Package filter provides pure filter functions for news items.
// All functions are simple: []Item in, []Item out. No side effects.
package filter

import (
	"strings"

	"finlens/internal/news"
)

// ByKeyword returns the items whose title or body contains keyword as a
// case-insensitive substring, preserving input order. A keyword that is
// empty after trimming returns the input unchanged, so an idle search box
// costs nothing.
//
// Matching is plain substring: no tokenization, no ranking. Order stays by
// publish time descending, never by match quality.
func ByKeyword(items []news.Item, keyword string) []news.Item {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return items
	}

	needle := strings.ToLower(keyword)
	result := make([]news.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Body), needle) {
			result = append(result, item)
		}
	}
	return result
}

// ByDay keeps items whose canonical publish time starts with day
// (e.g. "2024-01-02").
func ByDay(items []news.Item, day string) []news.Item {
	if day == "" {
		return items
	}
	result := make([]news.Item, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(item.PublishTime, day) {
			result = append(result, item)
		}
	}
	return result
}
