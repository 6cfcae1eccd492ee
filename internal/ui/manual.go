package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleManualKey processes keys in the manual free-text analysis view.
// Tab cycles the two inputs, ctrl+s submits, esc returns to browsing.
func (a App) handleManualKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBrowse
		a.manualTitle.Blur()
		a.manualBody.Blur()
		return a, nil

	case "tab", "shift+tab":
		if a.manualTitle.Focused() {
			a.manualTitle.Blur()
			cmd := a.manualBody.Focus()
			return a, cmd
		}
		a.manualBody.Blur()
		a.manualTitle.Focus()
		return a, nil

	case "ctrl+s":
		if a.analyzing || strings.TrimSpace(a.manualBody.Value()) == "" {
			return a, nil
		}
		if !a.analyst.Available() {
			a.manualOut = "Analysis unavailable: no completion provider configured (set ZHIPU_API_KEY)."
			return a, nil
		}
		a.analyzing = true
		a.manualOut = ""
		return a, a.analyzeTextCmd(a.manualTitle.Value(), a.manualBody.Value())
	}

	var cmd tea.Cmd
	if a.manualTitle.Focused() {
		a.manualTitle, cmd = a.manualTitle.Update(msg)
	} else {
		a.manualBody, cmd = a.manualBody.Update(msg)
	}
	return a, cmd
}

// renderManual renders the manual analysis form. The pasted text goes
// through the exact same template as a selected item; nothing is cached or
// remembered between submissions.
func (a App) renderManual() string {
	var b strings.Builder
	b.WriteString(PaneTitle.Render("Manual analysis"))
	b.WriteString("\n")
	b.WriteString(Caption.Render("Paste any news text. tab switches fields, ctrl+s analyzes, esc goes back."))
	b.WriteString("\n\n")
	b.WriteString(a.manualTitle.View())
	b.WriteString("\n\n")
	b.WriteString(a.manualBody.View())
	b.WriteString("\n\n")

	switch {
	case a.analyzing:
		b.WriteString(Caption.Render(a.spin.View() + " Analyzing..."))
	case a.manualOut != "":
		b.WriteString(DetailBody.Width(a.width - 4).Render(a.manualOut))
	}

	b.WriteString("\n")
	return b.String() + a.renderStatusBar()
}
