package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/crumb/internal/logging"
	"github.com/five82/crumb/internal/mealdb"
	"github.com/five82/crumb/internal/prefs"
	"github.com/five82/crumb/internal/state"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    mealdb.RecipeSource
	Category  string
	ThemeName string
	PrefsPath string
	LogPath   string
	Logger    logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    mealdb.RecipeSource
	category  string
	prefsPath string
	logPath   string
	log       logrus.FieldLogger

	// UI state
	theme    Theme
	keys     keyMap
	screen   Screen
	width    int
	height   int
	ready    bool
	spinner  spinner.Model
	showHelp bool

	// List screen
	list      *screenRequest[[]mealdb.RecipeSummary]
	selected  int
	offset    int
	filter    textinput.Model
	filtering bool

	// Detail screen
	detail         *screenRequest[detailResult]
	detailID       string
	detailName     string
	detailViewport viewport.Model

	// Log overlay
	showLogs    bool
	logViewport viewport.Model
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	category := strings.TrimSpace(opts.Category)
	if category == "" {
		category = "Dessert"
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "recipe name"
	filter.CharLimit = 64

	m := Model{
		ctx:       ctx,
		source:    opts.Source,
		category:  category,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		log:       logger,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		screen:    ScreenList,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		list:      &screenRequest[[]mealdb.RecipeSummary]{},
		detail:    &screenRequest[detailResult]{},
		filter:    filter,
	}
	m.applyThemeToWidgets()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.loadList(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(m.bodyWidth(), m.bodyHeight())
			m.logViewport = viewport.New(m.bodyWidth(), m.bodyHeight())
		}
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.clampSelection()
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listLoadedMsg:
		return m.handleListLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case logsLoadedMsg:
		m.logErr = msg.err
		m.logViewport.SetContent(m.renderLogContent(msg.lines))
		m.logViewport.GotoBottom()
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("save preferences failed")
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showLogs {
		return m.renderLogs()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.list.stop()
		m.detail.stop()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyThemeToWidgets()
		m.updateDetailViewport()
		return m, savePrefsCmd(m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		cmd := m.refreshLogs()
		return m, cmd
	}

	switch m.screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// loadList starts (or restarts) the list screen's request.
func (m *Model) loadList() tea.Cmd {
	if m.source == nil {
		return nil
	}
	ctx, ticket := m.list.begin(m.ctx)
	m.log.WithFields(logrus.Fields{
		"request_id": ticket.ID,
		"category":   m.category,
	}).Debug("list request started")
	return tea.Batch(
		fetchListCmd(ctx, m.source, m.category, ticket),
		m.spinner.Tick,
	)
}

// openDetail switches to the detail screen and starts its request.
func (m *Model) openDetail(summary mealdb.RecipeSummary) tea.Cmd {
	m.screen = ScreenDetail
	m.detailID = summary.ID
	m.detailName = summary.Name
	m.detailViewport.GotoTop()
	return m.loadDetail()
}

func (m *Model) loadDetail() tea.Cmd {
	if m.source == nil || m.detailID == "" {
		return nil
	}
	ctx, ticket := m.detail.begin(m.ctx)
	m.log.WithFields(logrus.Fields{
		"request_id": ticket.ID,
		"id":         m.detailID,
	}).Debug("detail request started")
	return tea.Batch(
		fetchDetailCmd(ctx, m.source, m.detailID, ticket),
		m.spinner.Tick,
	)
}

// closeDetail returns to the list and discards the detail request. A
// response still in flight is cancelled and its result ignored.
func (m *Model) closeDetail() {
	m.detail.stop()
	m.screen = ScreenList
	m.detailID = ""
	m.detailName = ""
	m.detailViewport.SetContent("")
}

func (m Model) handleListLoaded(msg listLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.list.resolve(msg.ticket, msg.recipes, msg.err) {
		m.log.WithField("request_id", msg.ticket.ID).Debug("discarded stale list result")
		return m, nil
	}
	snap := m.list.snapshot()
	fields := logrus.Fields{
		"request_id": msg.ticket.ID,
		"category":   m.category,
		"elapsed":    snap.Elapsed().String(),
	}
	if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
		m.log.WithFields(fields).WithError(msg.err).Warn("list request failed")
	} else {
		m.log.WithFields(fields).WithField("count", len(msg.recipes)).Info("list loaded")
	}
	m.clampSelection()
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.detail.resolve(msg.ticket, msg.result, msg.err) {
		m.log.WithField("request_id", msg.ticket.ID).Debug("discarded stale detail result")
		return m, nil
	}
	snap := m.detail.snapshot()
	fields := logrus.Fields{
		"request_id": msg.ticket.ID,
		"id":         m.detailID,
		"elapsed":    snap.Elapsed().String(),
	}
	switch {
	case msg.err != nil:
		m.log.WithFields(fields).WithError(msg.err).Warn("detail request failed")
	case !msg.result.Found:
		m.log.WithFields(fields).Info("recipe unavailable")
	default:
		m.log.WithFields(fields).WithField("ingredients", len(msg.result.Detail.Ingredients)).Info("detail loaded")
	}
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	return m, nil
}

func (m *Model) refreshLogs() tea.Cmd {
	path := strings.TrimSpace(m.logPath)
	if path == "" || path == logging.Stderr {
		m.logErr = nil
		m.logViewport.SetContent(m.theme.Styles().MutedText.Render("Logging to stderr; no log file to show."))
		return nil
	}
	return readLogsCmd(path)
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		cmd := m.refreshLogs()
		return m, cmd
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) anyLoading() bool {
	return m.list.snapshot().Status == state.Loading || m.detail.snapshot().Status == state.Loading
}

func (m Model) bodyWidth() int {
	return maxInt(m.width, 1)
}

func (m Model) bodyHeight() int {
	return maxInt(m.height-headerLines-footerLines, 1)
}

func (m *Model) resizeViewports() {
	m.detailViewport.Width = m.bodyWidth()
	m.detailViewport.Height = m.bodyHeight()
	m.logViewport.Width = m.bodyWidth()
	m.logViewport.Height = m.bodyHeight()
}

func (m *Model) applyThemeToWidgets() {
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.filter.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.filter.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
}

func savePrefsCmd(path, theme string) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, prefs.Prefs{Theme: theme})}
	}
}

// renderMain renders the header, the active screen and the status line.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	var body string
	switch m.screen {
	case ScreenDetail:
		body = m.renderDetail()
	default:
		body = m.renderList()
	}
	b.WriteString(lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// Run starts the Bubble Tea program and blocks until it exits or ctx ends.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
