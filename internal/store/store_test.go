package store

import (
	"testing"
	"time"

	"finlens/internal/news"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func row(title, link, publish string) Row {
	return Row{
		Title:       title,
		Body:        "body of " + title,
		Link:        link,
		PublishTime: publish,
		CreatedAt:   time.Now(),
	}
}

func TestSaveRowsSkipsDuplicateLinks(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SaveRows([]Row{
		row("one", "https://example.com/1", "2024-01-02 10:00:00"),
		row("two", "https://example.com/2", "2024-01-02 09:00:00"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first != 2 {
		t.Errorf("expected 2 new rows, got %d", first)
	}

	second, err := s.SaveRows([]Row{
		row("one again", "https://example.com/1", "2024-01-02 10:00:00"),
		row("three", "https://example.com/3", "2024-01-02 08:00:00"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if second != 1 {
		t.Errorf("expected 1 new row on second save, got %d", second)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows total, got %d", n)
	}
}

func TestSaveRowsLinklessItemsAllSurvive(t *testing.T) {
	s := newTestStore(t)

	n, err := s.SaveRows([]Row{
		row("a", "", "2024-01-02 10:00:00"),
		row("b", "", "2024-01-02 09:00:00"),
		row("c", "", "2024-01-02 08:00:00"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 3 {
		t.Errorf("linkless items must not collide on the link constraint, got %d new rows", n)
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows back, got %d", len(got))
	}
	if got[0].Link != "" {
		t.Errorf("NULL link should scan as empty string, got %q", got[0].Link)
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	s := newTestStore(t)

	var rows []Row
	for i := 0; i < 10; i++ {
		rows = append(rows, row(
			"item",
			"https://example.com/"+string(rune('a'+i)),
			"2024-01-02 10:0"+string(rune('0'+i))+":00",
		))
	}
	if _, err := s.SaveRows(rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Prune(4); err != nil {
		t.Fatalf("prune: %v", err)
	}

	got, err := s.Recent(100)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 rows after prune, got %d", len(got))
	}
	if got[0].PublishTime != "2024-01-02 10:09:00" {
		t.Errorf("newest row missing after prune, got %q", got[0].PublishTime)
	}
	if got[3].PublishTime != "2024-01-02 10:06:00" {
		t.Errorf("expected 4th-newest row, got %q", got[3].PublishTime)
	}
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveRows([]Row{
		{Title: "Chip maker expands", Body: "fab capacity", Link: "l1", PublishTime: "2024-01-02 10:00:00", CreatedAt: time.Now()},
		{Title: "Rates held", Body: "central bank on chips shortage", Link: "l2", PublishTime: "2024-01-02 09:00:00", CreatedAt: time.Now()},
		{Title: "Oil falls", Body: "supply glut", Link: "l3", PublishTime: "2024-01-02 08:00:00", CreatedAt: time.Now()},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Search("chip", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches across title and body, got %d", len(got))
	}
	if got[0].Title != "Chip maker expands" {
		t.Errorf("expected newest match first, got %q", got[0].Title)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveRows([]Row{
		row("old", "l1", "2024-01-01 10:00:00"),
		row("new", "l2", "2024-01-03 10:00:00"),
		row("mid", "l3", "2024-01-02 10:00:00"),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
	if got[0].Title != "new" || got[1].Title != "mid" {
		t.Errorf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	items := []news.Item{
		{Title: "t1", Body: "b1", PublishTime: "2024-01-02 10:00:00", Link: "l1"},
		{Title: "t2", Body: "b2", PublishTime: "2024-01-02 09:00:00", Link: ""},
	}

	rows := FromItems(items, now)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].CreatedAt.Equal(now) {
		t.Errorf("CreatedAt not stamped: %v", rows[0].CreatedAt)
	}

	back := ToItems(rows)
	if len(back) != 2 {
		t.Fatalf("expected 2 items, got %d", len(back))
	}
	if back[0] != items[0] || back[1] != items[1] {
		t.Errorf("round trip changed items: %+v", back)
	}
}
