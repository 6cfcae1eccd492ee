package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorError     = lipgloss.Color("196") // Red
	colorSuccess   = lipgloss.Color("78")  // Green
)

// SelectedRow style for the currently highlighted list row.
var SelectedRow = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalRow style for unselected rows.
var NormalRow = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// TimeStamp style for publish times in the list.
var TimeStamp = lipgloss.NewStyle().
	Foreground(colorSecondary)

// PaneTitle style for the list/detail pane headers.
var PaneTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// Caption style for secondary captions (refresh time, match count).
var Caption = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// DetailBody style for the item body text.
var DetailBody = lipgloss.NewStyle().
	Padding(0, 1)

// StaleNotice style for the evicted-selection warning.
var StaleNotice = lipgloss.NewStyle().
	Foreground(lipgloss.Color("214")).
	Padding(0, 1)

// ErrorBar style for the non-fatal error line.
var ErrorBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorError).
	Padding(0, 1)

// SuccessText style for completed-action notices.
var SuccessText = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusKey style for key hints in the status bar.
var StatusKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// ListPane frames the left column.
var ListPane = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(colorSecondary)

// DetailPane frames the right column.
var DetailPane = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(colorSecondary)
