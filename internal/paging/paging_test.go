package paging

import (
	"fmt"
	"testing"

	"finlens/internal/news"
)

func makeView(n int) []news.Item {
	view := make([]news.Item, n)
	for i := range view {
		view[i] = news.Item{Title: fmt.Sprintf("item-%03d", i)}
	}
	return view
}

func TestPaginateClampsStaleRequest(t *testing.T) {
	view := makeView(120)

	p := Paginate(view, 50, 10)

	if p.Total != 3 {
		t.Errorf("expected 3 total pages, got %d", p.Total)
	}
	if p.Number != 3 {
		t.Errorf("expected clamp to page 3, got %d", p.Number)
	}
	if len(p.Items) != 20 {
		t.Errorf("expected last 20 items, got %d", len(p.Items))
	}
	if p.Items[0].Title != "item-100" || p.Items[19].Title != "item-119" {
		t.Errorf("wrong slice: %q .. %q", p.Items[0].Title, p.Items[19].Title)
	}
}

func TestPaginateClampBounds(t *testing.T) {
	view := makeView(7)

	tests := []struct {
		requested  int
		wantNumber int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{99, 3},
	}

	for _, tt := range tests {
		p := Paginate(view, 3, tt.requested)
		if p.Number != tt.wantNumber {
			t.Errorf("requested %d: expected page %d, got %d", tt.requested, tt.wantNumber, p.Number)
		}
		if p.Number < 1 || p.Number > p.Total {
			t.Errorf("requested %d: page %d outside [1,%d]", tt.requested, p.Number, p.Total)
		}
	}
}

func TestPaginateEmptyView(t *testing.T) {
	p := Paginate(nil, 50, 5)

	if p.Total != 1 {
		t.Errorf("expected 1 total page for empty view, got %d", p.Total)
	}
	if p.Number != 1 {
		t.Errorf("expected page 1 for empty view, got %d", p.Number)
	}
	if len(p.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(p.Items))
	}
}

func TestPaginateShortLastPage(t *testing.T) {
	p := Paginate(makeView(55), 50, 2)
	if len(p.Items) != 5 {
		t.Errorf("expected 5 items on last page, got %d", len(p.Items))
	}
}

func TestColumnsSplit(t *testing.T) {
	p := Paginate(makeView(50), 50, 1)

	left, right := Columns(p, 50)
	if len(left) != 25 || len(right) != 25 {
		t.Fatalf("expected 25/25 split, got %d/%d", len(left), len(right))
	}
	if left[0].Title != "item-000" || right[0].Title != "item-025" {
		t.Errorf("split broke ordering: %q, %q", left[0].Title, right[0].Title)
	}
}

func TestColumnsShortPage(t *testing.T) {
	p := Paginate(makeView(10), 50, 1)

	left, right := Columns(p, 50)
	if len(left) != 10 || len(right) != 0 {
		t.Errorf("expected everything in the first column, got %d/%d", len(left), len(right))
	}
}

func TestNextPrevNeverWrap(t *testing.T) {
	if got := Next(3, 3); got != 3 {
		t.Errorf("Next at last page: expected 3, got %d", got)
	}
	if got := Next(1, 3); got != 2 {
		t.Errorf("Next: expected 2, got %d", got)
	}
	if got := Prev(1); got != 1 {
		t.Errorf("Prev at first page: expected 1, got %d", got)
	}
	if got := Prev(3); got != 2 {
		t.Errorf("Prev: expected 2, got %d", got)
	}
}
