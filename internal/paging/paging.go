// Package paging slices an ordered view of news items into fixed-size pages.
package paging

import "finlens/internal/news"

// DefaultPageSize is the items-per-page used when the config does not
// override it.
const DefaultPageSize = 50

// Page is one slice of a view plus enough context to render pagination
// controls. Number is always within [1, Total], whatever the caller asked
// for.
type Page struct {
	Items  []news.Item
	Number int
	Total  int
}

// Paginate returns the requested page of view. The requested number is
// clamped into [1, Total] so a stale request (the view shrank after a search
// or refresh) still yields a valid page. An empty view yields a single empty
// page.
func Paginate(view []news.Item, pageSize, requested int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := (len(view) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > total {
		number = total
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > len(view) {
		start = len(view)
	}
	if end > len(view) {
		end = len(view)
	}

	return Page{Items: view[start:end], Number: number, Total: total}
}

// Columns splits a page's items into two ordered halves for side-by-side
// presentation. The first column gets indices [0, pageSize/2), the second
// the remainder. Presentation only: the page contract is untouched.
func Columns(p Page, pageSize int) (left, right []news.Item) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	half := pageSize / 2
	if half > len(p.Items) {
		half = len(p.Items)
	}
	return p.Items[:half], p.Items[half:]
}

// Next returns the page number after current, staying put at the last page.
// Never wraps, never errors.
func Next(current, total int) int {
	if current < total {
		return current + 1
	}
	return current
}

// Prev returns the page number before current, staying put at the first
// page.
func Prev(current int) int {
	if current > 1 {
		return current - 1
	}
	return current
}
