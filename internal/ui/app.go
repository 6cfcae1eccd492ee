package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"finlens/internal/brain"
	"finlens/internal/config"
	"finlens/internal/fetch"
	"finlens/internal/logging"
	"finlens/internal/news"
	"finlens/internal/session"
	"finlens/internal/store"
)

// fetchTimeout bounds one fetch cycle.
const fetchTimeout = 10 * time.Second

// analysisTimeout bounds one completion call.
const analysisTimeout = 30 * time.Second

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// mode is the input focus of the app.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeManual
)

// App is the root Bubble Tea model. All session state lives in the
// explicit *session.Session; App holds only presentation state.
type App struct {
	session *session.Session
	cfg     *config.Config
	fetcher *fetch.Fetcher
	analyst *brain.Analyst
	history *store.Store
	clock   *news.Normalizer

	search      textinput.Model
	manualTitle textinput.Model
	manualBody  textarea.Model
	detail      viewport.Model
	spin        spinner.Model

	mode      mode
	cursor    int
	fetching  bool
	analyzing bool
	analysis  string
	manualOut string
	err       error
	width     int
	height    int
	ready     bool
}

// NewApp wires the root model. The history store may be nil to run without
// persistence.
func NewApp(sess *session.Session, cfg *config.Config, fetcher *fetch.Fetcher, analyst *brain.Analyst, history *store.Store, clock *news.Normalizer) App {
	search := textinput.New()
	search.Placeholder = "search title or body..."
	search.Prompt = "/ "
	search.PromptStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	search.CharLimit = 64

	manualTitle := textinput.New()
	manualTitle.Placeholder = "title (optional)"
	manualTitle.CharLimit = 128

	manualBody := textarea.New()
	manualBody.Placeholder = "paste the full news text here"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	return App{
		session:     sess,
		cfg:         cfg,
		fetcher:     fetcher,
		analyst:     analyst,
		history:     history,
		clock:       clock,
		search:      search,
		manualTitle: manualTitle,
		manualBody:  manualBody,
		spin:        sp,
	}
}

// Init starts the interaction clock. The first tick notices that no refresh
// has happened yet and triggers the initial fetch.
func (a App) Init() tea.Cmd {
	return tea.Batch(tick(), a.spin.Tick)
}

// tick schedules the next interaction cycle.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchCmd runs one fetch pass against all configured sources.
func (a App) fetchCmd(manual bool) tea.Cmd {
	fetcher, sources := a.fetcher, a.cfg.Sources
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		batch, err := fetcher.FetchAll(ctx, sources)
		return FetchDone{Batch: batch, Manual: manual, Err: err}
	}
}

// persistCmd appends a successful batch to the capped history store.
func (a App) persistCmd(batch []news.Item) tea.Cmd {
	history, maxTotal := a.history, a.cfg.MaxTotal
	if history == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := history.SaveRows(store.FromItems(batch, time.Now()))
		if err == nil {
			err = history.Prune(maxTotal)
		}
		return Persisted{NewRows: n, Err: err}
	}
}

// analyzeCmd sends the selected item to the completion provider.
func (a App) analyzeCmd(item news.Item) tea.Cmd {
	analyst := a.analyst
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()
		content, err := analyst.Analyze(ctx, item)
		return AnalysisDone{Content: content, Err: err}
	}
}

// analyzeTextCmd sends manual free text through the identical template.
func (a App) analyzeTextCmd(title, body string) tea.Cmd {
	analyst := a.analyst
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()
		content, err := analyst.AnalyzeText(ctx, title, body)
		return AnalysisDone{Content: content, Err: err}
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.detail = viewport.New(a.detailWidth(), a.contentHeight())
		a.refreshDetail()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case TickMsg:
		if !a.fetching && a.session.ShouldRefresh(time.Time(msg)) {
			a.fetching = true
			return a, tea.Batch(tick(), a.fetchCmd(false))
		}
		return a, tick()

	case FetchDone:
		return a.handleFetchDone(msg)

	case Persisted:
		if msg.Err != nil {
			logging.Warn("history save failed", "error", msg.Err)
		} else if msg.NewRows > 0 {
			logging.Debug("history updated", "new_rows", msg.NewRows)
		}
		return a, nil

	case AnalysisDone:
		a.analyzing = false
		if a.mode == modeManual {
			if msg.Err != nil {
				a.manualOut = "Analysis failed: " + msg.Err.Error()
			} else {
				a.manualOut = msg.Content
			}
			return a, nil
		}
		if msg.Err != nil {
			a.analysis = "Analysis failed: " + msg.Err.Error()
		} else {
			a.analysis = msg.Content
		}
		a.refreshDetail()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// handleFetchDone folds a finished fetch into the session. A failed or
// empty fetch leaves the cache and the refresh clock untouched.
func (a App) handleFetchDone(msg FetchDone) (tea.Model, tea.Cmd) {
	a.fetching = false

	if msg.Err != nil {
		a.err = msg.Err
		logging.Warn("fetch failed", "error", msg.Err)
		return a, nil
	}

	now := time.Now()
	if !a.session.ApplyFetch(msg.Batch, now, a.clock.Now()) {
		logging.Debug("fetch returned no items", "manual", msg.Manual)
		return a, nil
	}

	a.err = nil
	a.clampCursor()
	a.refreshDetail()
	logging.Info("refresh applied", "batch", len(msg.Batch), "cache", len(a.session.Items()))
	return a, a.persistCmd(msg.Batch)
}

// handleKey routes keyboard input by input mode.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeManual:
		return a.handleManualKey(msg)
	default:
		return a.handleBrowseKey(msg)
	}
}

// handleBrowseKey processes keys in the main list view.
func (a App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.err != nil {
		a.err = nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.mode = modeSearch
		a.search.Focus()
		return a, textinput.Blink

	case "m":
		a.mode = modeManual
		a.manualOut = ""
		a.manualTitle.Focus()
		a.manualBody.Blur()
		return a, textinput.Blink

	case "j", "down":
		page := a.session.Page()
		if a.cursor < len(page.Items)-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		page := a.session.Page()
		if len(page.Items) > 0 {
			a.cursor = len(page.Items) - 1
		}
		return a, nil

	case "h", "left":
		a.session.PrevPage()
		a.cursor = 0
		return a, nil

	case "l", "right":
		a.session.NextPage()
		a.cursor = 0
		return a, nil

	case "enter":
		page := a.session.Page()
		if a.cursor < len(page.Items) {
			a.session.Select(page.Items[a.cursor])
			a.analysis = ""
			a.refreshDetail()
		}
		return a, nil

	case "a":
		item, ok := a.session.Selection()
		if !ok || a.analyzing {
			return a, nil
		}
		if !a.analyst.Available() {
			a.analysis = "Analysis unavailable: no completion provider configured (set ZHIPU_API_KEY)."
			a.refreshDetail()
			return a, nil
		}
		a.analyzing = true
		a.refreshDetail()
		return a, a.analyzeCmd(item)

	case "R":
		if a.fetching {
			return a, nil
		}
		a.fetching = true
		return a, a.fetchCmd(true)

	case "pgdown", "ctrl+d":
		a.detail.HalfPageDown()
		return a, nil

	case "pgup", "ctrl+u":
		a.detail.HalfPageUp()
		return a, nil
	}

	return a, nil
}

// handleSearchKey processes keys while the search box has focus. The
// keyword applies live; the session resets the page only when the value
// actually changes.
func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.mode = modeBrowse
		a.search.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.session.SetKeyword(a.search.Value())
	a.clampCursor()
	return a, cmd
}

// clampCursor keeps the cursor inside the current page after the view
// changed shape.
func (a *App) clampCursor() {
	page := a.session.Page()
	if a.cursor >= len(page.Items) {
		a.cursor = len(page.Items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}
