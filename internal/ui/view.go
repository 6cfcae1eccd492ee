package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"finlens/internal/news"
	"finlens/internal/paging"
)

// wideThreshold is the terminal width above which the list page is split
// into two side-by-side columns.
const wideThreshold = 150

// listWidth returns the width of the left (list) pane.
func (a App) listWidth() int {
	// 3:7 split like the original dashboard layout.
	w := a.width * 3 / 10
	if a.width >= wideThreshold {
		w = a.width * 5 / 10
	}
	if w < 30 {
		w = 30
	}
	return w
}

// detailWidth returns the width of the right (detail) pane.
func (a App) detailWidth() int {
	w := a.width - a.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

// contentHeight returns the height available to the panes.
func (a App) contentHeight() int {
	h := a.height - 2 // status bar + error bar reserve
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.mode == modeManual {
		return a.renderManual()
	}

	left := a.renderList()
	right := a.renderDetail()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	errorBar := ""
	if a.err != nil {
		errorBar = ErrorBar.Width(a.width).Render("Error: " + a.err.Error() + " (press any key to dismiss)") + "\n"
	}

	return body + "\n" + errorBar + a.renderStatusBar()
}

// renderList renders the search box, pagination caption, and the current
// page of items.
func (a App) renderList() string {
	width := a.listWidth()
	page := a.session.Page()
	view := a.session.View()

	var b strings.Builder
	b.WriteString(PaneTitle.Render("Latest flash news"))
	b.WriteString("\n")
	b.WriteString(a.search.View())
	b.WriteString("\n")

	if kw := strings.TrimSpace(a.session.Keyword()); kw != "" {
		b.WriteString(Caption.Render(fmt.Sprintf("%d matching items", len(view))))
		b.WriteString("\n")
	}

	if len(page.Items) == 0 {
		b.WriteString(Caption.Render("No items yet. Press R to refresh, or m for manual analysis."))
	} else if a.width >= wideThreshold {
		b.WriteString(a.renderTwoColumns(page, width))
	} else {
		b.WriteString(a.renderRows(page.Items, 0, width-2))
	}

	b.WriteString("\n")
	b.WriteString(Caption.Render(fmt.Sprintf("page %d/%d  •  %d items", page.Number, page.Total, len(view))))

	return ListPane.Width(width).Height(a.contentHeight()).Render(b.String())
}

// renderTwoColumns lays the page out as two equal ordered halves.
func (a App) renderTwoColumns(page paging.Page, width int) string {
	left, right := paging.Columns(page, a.session.PageSize())
	colWidth := width/2 - 2
	leftCol := a.renderRows(left, 0, colWidth)
	rightCol := a.renderRows(right, len(left), colWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
}

// renderRows renders item rows; offset is the page-relative index of the
// first row, used to place the cursor highlight.
func (a App) renderRows(items []news.Item, offset, width int) string {
	var b strings.Builder
	for i, item := range items {
		line := truncateLine(item.Title, width-22) + " " + TimeStamp.Render(item.PublishTime)
		if offset+i == a.cursor {
			b.WriteString(SelectedRow.MaxWidth(width).Render(line))
		} else {
			b.WriteString(NormalRow.MaxWidth(width).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail renders the selected item plus its analysis.
func (a App) renderDetail() string {
	width := a.detailWidth()

	item, ok := a.session.Selection()
	if !ok {
		empty := Caption.Render("Select an item (enter) to read it here. Press a to analyze.")
		return DetailPane.Width(width).Height(a.contentHeight()).Render(empty)
	}

	var b strings.Builder
	b.WriteString(PaneTitle.Render(item.Title))
	b.WriteString("\n")
	b.WriteString(Caption.Render("Published: " + item.PublishTime))
	b.WriteString("\n")
	if !a.session.SelectionLive() {
		b.WriteString(StaleNotice.Render("This item is no longer in the live list; showing the retained copy."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	a.detail.Width = width - 2
	b.WriteString(a.detail.View())

	return DetailPane.Width(width).Height(a.contentHeight()).Render(b.String())
}

// refreshDetail rebuilds the detail viewport content from the current
// selection and analysis state.
func (a *App) refreshDetail() {
	item, ok := a.session.Selection()
	if !ok {
		a.detail.SetContent("")
		return
	}

	width := a.detailWidth() - 2
	var b strings.Builder
	b.WriteString(DetailBody.Width(width).Render(item.Body))
	b.WriteString("\n")
	if item.Link != "" {
		b.WriteString(Caption.Render(item.Link))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case a.analyzing:
		b.WriteString(Caption.Render(a.spin.View() + " Analyzing... (5-15s)"))
	case a.analysis != "":
		b.WriteString(SuccessText.Render("— Analysis —"))
		b.WriteString("\n")
		b.WriteString(DetailBody.Width(width).Render(a.analysis))
	default:
		b.WriteString(Caption.Render("Press a to extract concepts and likely-affected equities."))
	}

	a.detail.Height = a.contentHeight() - 6
	a.detail.SetContent(b.String())
}

// renderStatusBar renders the bottom bar: refresh state plus key hints.
func (a App) renderStatusBar() string {
	var parts []string

	if a.fetching {
		parts = append(parts, a.spin.View()+" refreshing")
	} else if last := a.session.LastRefreshDisplay(); last != "" {
		parts = append(parts, "last refresh "+last)
	}

	if remaining := a.session.TimeUntilRefresh(nowFunc()); remaining > 0 && !a.fetching {
		parts = append(parts, fmt.Sprintf("next in %d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60))
	}

	hints := StatusKey.Render("j/k") + " move  " +
		StatusKey.Render("h/l") + " page  " +
		StatusKey.Render("/") + " search  " +
		StatusKey.Render("enter") + " open  " +
		StatusKey.Render("a") + " analyze  " +
		StatusKey.Render("m") + " manual  " +
		StatusKey.Render("R") + " refresh  " +
		StatusKey.Render("q") + " quit"
	parts = append(parts, hints)

	return StatusBar.Width(a.width).Render(strings.Join(parts, "  •  "))
}

// truncateLine shortens a string to max runes with an ellipsis.
func truncateLine(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
