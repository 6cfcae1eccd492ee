// Package session holds all mutable state for one dashboard session: the
// news cache, the refresh clock, the search/page state, and the current
// selection. Every component call goes through an explicit *Session; there
// are no package-level variables.
package session

import (
	"time"

	"finlens/internal/filter"
	"finlens/internal/news"
	"finlens/internal/paging"
)

// Session is created once per process and mutated only from the UI event
// loop, so it needs no locking.
type Session struct {
	cache    []news.Item
	maxTotal int
	pageSize int
	interval time.Duration

	lastRefresh        time.Time
	lastRefreshDisplay string

	keyword string
	page    int

	selected     news.Item
	selectedKey  string
	hasSelection bool
}

// New creates an empty session.
func New(maxTotal, pageSize int, interval time.Duration) *Session {
	if maxTotal <= 0 {
		maxTotal = news.DefaultMaxTotal
	}
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &Session{
		maxTotal: maxTotal,
		pageSize: pageSize,
		interval: interval,
		page:     1,
	}
}

// Seed loads previously persisted items into an empty-at-startup cache.
// Runs through Merge so the seed obeys the same invariants as a fetch.
func (s *Session) Seed(items []news.Item) {
	s.cache = news.Merge(s.cache, items, s.maxTotal)
}

// ShouldRefresh reports whether a new fetch is due. True when more than the
// configured interval has elapsed since the last successful refresh, and
// always true before the first one.
func (s *Session) ShouldRefresh(now time.Time) bool {
	if s.lastRefresh.IsZero() {
		return true
	}
	return now.Sub(s.lastRefresh) > s.interval
}

// ApplyFetch folds a successful fetch into the cache and advances the
// refresh clock. An empty batch is treated like a failed fetch: nothing is
// merged and the clock does not move, so stale data is preferred over empty
// data. Returns whether any state changed.
func (s *Session) ApplyFetch(batch []news.Item, now time.Time, display string) bool {
	if len(batch) == 0 {
		return false
	}
	s.cache = news.Merge(s.cache, batch, s.maxTotal)
	s.lastRefresh = now
	s.lastRefreshDisplay = display
	return true
}

// Items returns the full cache, newest first.
func (s *Session) Items() []news.Item {
	return s.cache
}

// View returns the cache narrowed by the active keyword. This is what gets
// paginated; the search always runs over the entire retained history, not
// just the visible page.
func (s *Session) View() []news.Item {
	return filter.ByKeyword(s.cache, s.keyword)
}

// SetKeyword updates the active search keyword. A changed value resets the
// current page to 1; re-submitting the same value leaves the page alone.
func (s *Session) SetKeyword(keyword string) {
	if keyword == s.keyword {
		return
	}
	s.keyword = keyword
	s.page = 1
}

// Keyword returns the active search keyword.
func (s *Session) Keyword() string {
	return s.keyword
}

// Page returns the current page of the view. The remembered page number is
// re-clamped on every call because the view can shrink between renders.
func (s *Session) Page() paging.Page {
	p := paging.Paginate(s.View(), s.pageSize, s.page)
	s.page = p.Number
	return p
}

// PageSize returns the configured items-per-page.
func (s *Session) PageSize() int {
	return s.pageSize
}

// NextPage advances to the next page, staying put on the last one.
func (s *Session) NextPage() {
	p := paging.Paginate(s.View(), s.pageSize, s.page)
	s.page = paging.Next(p.Number, p.Total)
}

// PrevPage moves to the previous page, staying put on the first one.
func (s *Session) PrevPage() {
	p := paging.Paginate(s.View(), s.pageSize, s.page)
	s.page = paging.Prev(p.Number)
}

// Select remembers the picked item. Selection survives refreshes and
// searches; only a restart clears it.
func (s *Session) Select(item news.Item) {
	s.selected = item
	s.selectedKey = item.Key()
	s.hasSelection = true
}

// Selection returns the retained copy of the selected item. The copy stays
// readable even after the item is evicted from the cache.
func (s *Session) Selection() (news.Item, bool) {
	return s.selected, s.hasSelection
}

// SelectionLive reports whether the selected item is still present in the
// cache. The detail panel keeps showing the retained copy either way but
// flags an evicted one as no longer in the live list.
func (s *Session) SelectionLive() bool {
	if !s.hasSelection {
		return false
	}
	for _, it := range s.cache {
		if it.Key() == s.selectedKey {
			return true
		}
	}
	return false
}

// LastRefreshDisplay returns the display string recorded at the last
// successful refresh, or "" before the first one.
func (s *Session) LastRefreshDisplay() string {
	return s.lastRefreshDisplay
}

// TimeUntilRefresh returns how long until the next automatic refresh is
// due. Zero or negative means one is due now.
func (s *Session) TimeUntilRefresh(now time.Time) time.Duration {
	if s.lastRefresh.IsZero() {
		return 0
	}
	return s.interval - now.Sub(s.lastRefresh)
}
